package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ElementAstro/hello-element-astro-launcher-sub001/pkg/i18n"
	"github.com/ElementAstro/hello-element-astro-launcher-sub001/pkg/logger"
)

// LocaleCookie holds the language chosen in the launcher UI.
const LocaleCookie = "lang"

// Dictionaries supplies the merged dictionary of a locale.
// internal/translations.Service implements it.
type Dictionaries interface {
	Dictionary(ctx context.Context, locale string) (i18n.Dictionary, error)
}

// Locale resolves the request language from the lang query parameter, the
// lang cookie, then Accept-Language, and stores a read-only i18n.Provider
// for it in the request context. A supported region query parameter
// selects the formatting region. Dictionary errors are logged and the
// provider is built with an empty dictionary so translations fall back
// to their defaults.
func Locale(dicts Dictionaries, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := resolveLocale(r)

			dict, err := dicts.Dictionary(r.Context(), lang)
			if err != nil {
				log.WarnContext(r.Context(), "request dictionary unavailable",
					slog.String("locale", lang),
					slog.String("error", err.Error()),
				)
				dict = i18n.Dictionary{}
			}

			opts := []i18n.ProviderOption{i18n.WithLogger(log)}
			if region := r.URL.Query().Get("region"); i18n.ValidRegion(lang, region) {
				opts = append(opts, i18n.WithRegion(region))
			}

			p, err := i18n.NewProvider(lang, dict, opts...)
			if err != nil {
				// Unreachable for supported locales.
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Content-Language", lang)
			next.ServeHTTP(w, r.WithContext(i18n.WithProvider(r.Context(), p)))
		})
	}
}

func resolveLocale(r *http.Request) string {
	if lang := r.URL.Query().Get("lang"); i18n.Supported(lang) {
		return lang
	}
	if c, err := r.Cookie(LocaleCookie); err == nil && i18n.Supported(c.Value) {
		return c.Value
	}
	return i18n.MatchLocale(r.Header.Get("Accept-Language"))
}

// LocaleExtractor adds the resolved locale to every log record.
func LocaleExtractor() logger.Extractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if p, ok := i18n.FromContext(ctx); ok {
			return slog.String("locale", p.Locale()), true
		}
		return slog.Attr{}, false
	}
}
