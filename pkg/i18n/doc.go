// Package i18n implements the translation layer of the hub: per-locale
// dictionaries merged from feature files, dot-path lookup with context and
// plural branches, {{placeholder}} interpolation, locale and region aware
// formatting, and a Provider that holds the active state.
//
// # Dictionaries
//
// A [Dictionary] is a tree of [Value]s keyed by top-level namespace. A value
// is a plain string, a map of plural category to string, a map of context
// name to string, or a nested tree:
//
//	dict := i18n.MustDictionary(map[string]any{
//		"download": map[string]any{
//			"retry": "Retry {{name}}",
//			"count": map[string]any{"one": "{{count}} file", "other": "{{count}} files"},
//		},
//		"status": map[string]any{
//			"label": map[string]any{"running": "Running", "stopped": "Stopped"},
//		},
//	})
//
// Feature dictionaries are combined with [Merge] or a [Catalog]. The merge is
// shallow: a later source replaces a whole namespace.
//
//	features, err := i18n.LoadDir(os.DirFS("translations"))
//	catalog := i18n.NewCatalog(features...)
//	en, _ := catalog.Dictionary("en")
//
// # Lookup
//
// Misses never fail. They return the default text when one was given and
// the key otherwise:
//
//	i18n.Translate(dict, "download.retry", i18n.WithParams(i18n.Params{"name": "PHD2"}))
//	// "Retry PHD2"
//	i18n.TranslatePlural(dict, "download.count", 1, "en")
//	// "1 file"
//	i18n.TranslateContext(dict, "status.label", "running")
//	// "Running"
//	i18n.Translate(dict, "missing.key", i18n.WithDefault("n/a"))
//	// "n/a"
//
// # Formatting
//
// [Formatter] composes a locale and a region into one tag ("en" + "GB" is
// en-GB) and formats numbers and currency through golang.org/x/text:
//
//	f := i18n.NewFormatter("en", "US")
//	f.FormatCurrency(1234.5, "")  // "$1,234.50"
//	f.FormatDate(time.Now())      // "01/02/2006" layout
//
// # Provider
//
// [Provider] binds a dictionary to a locale and region. The region can be
// switched and the dictionary refreshed from the hub's translation endpoint:
//
//	p, err := i18n.NewProvider("en", en,
//		i18n.WithFetcher(i18n.NewHTTPFetcher("http://localhost:8080")),
//		i18n.WithDevReload(cfg.Env != "production"),
//	)
//	if err := p.Start(ctx); err != nil { ... }
//	defer p.Stop()
//
//	p.T("download.retry", i18n.WithParams(i18n.Params{"name": "PHD2"}))
//
// A failed refresh is logged and keeps the previous dictionary.
// Providers can travel in a context with [WithProvider] and [FromContext].
package i18n
