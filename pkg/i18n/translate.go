package i18n

// Option adjusts a single translation call.
type Option func(*options)

type options struct {
	params      Params
	defaultText string
	context     string
	hasDefault  bool
}

// WithDefault sets the text returned when the key cannot be resolved.
// The default is interpolated like a regular translation.
func WithDefault(text string) Option {
	return func(o *options) {
		o.defaultText = text
		o.hasDefault = true
	}
}

// WithParams adds placeholder values. Multiple calls are merged; later
// values win.
func WithParams(p Params) Option {
	return func(o *options) {
		o.params = mergeParams(o.params, p)
	}
}

// WithContext selects a context branch, see TranslateContext.
func WithContext(name string) Option {
	return func(o *options) {
		o.context = name
	}
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// Translate resolves key in dict and interpolates the result.
//
// When the key is missing, or resolves to a map that cannot be reduced to a
// single string, the default (if any) is returned, else the key itself.
// A plural value read without a count yields its "other" form.
func Translate(dict Dictionary, key string, opts ...Option) string {
	o := newOptions(opts)
	node, ok := dict.Get(key)
	if ok && o.context != "" {
		node = withContext(node, o.context)
	}
	if ok {
		if s, found := textOf(node); found {
			return Interpolate(s, o.params)
		}
	}
	return o.miss(key)
}

// TranslateContext resolves key and, when the resolved node carries a
// branch named contextName, uses that branch. Otherwise the node itself is
// used unchanged.
func TranslateContext(dict Dictionary, key, contextName string, opts ...Option) string {
	return Translate(dict, key, append(opts[:len(opts):len(opts)], WithContext(contextName))...)
}

// TranslatePlural resolves key and picks the plural form of count for
// locale. The exact category is tried first, then "other". A plain string
// is returned as is. The count is available to the template as {{count}};
// caller params with the same name take precedence.
func TranslatePlural(dict Dictionary, key string, count int, locale string, opts ...Option) string {
	o := newOptions(opts)
	o.params = mergeParams(Params{"count": count}, o.params)

	node, ok := dict.Get(key)
	if !ok {
		return o.miss(key)
	}
	if o.context != "" {
		node = withContext(node, o.context)
	}

	switch node.Kind() {
	case KindLeaf:
		s, _ := node.Text()
		return Interpolate(s, o.params)
	case KindPlural, KindContext:
		if s, found := node.Form(PluralCategory(locale, count)); found {
			return Interpolate(s, o.params)
		}
		if s, found := node.Form(PluralOther); found {
			return Interpolate(s, o.params)
		}
	case KindNested:
		if s, found := pluralChild(node, PluralCategory(locale, count)); found {
			return Interpolate(s, o.params)
		}
		if s, found := pluralChild(node, PluralOther); found {
			return Interpolate(s, o.params)
		}
	}
	return o.miss(key)
}

func (o *options) miss(key string) string {
	if o.hasDefault {
		return Interpolate(o.defaultText, o.params)
	}
	return key
}

// withContext returns the branch of node named name, or node unchanged.
func withContext(node Value, name string) Value {
	if child, ok := node.Child(name); ok {
		return child
	}
	return node
}

func textOf(node Value) (string, bool) {
	switch node.Kind() {
	case KindLeaf:
		return node.Text()
	case KindPlural:
		return node.Form(PluralOther)
	}
	return "", false
}

func pluralChild(node Value, form string) (string, bool) {
	child, ok := node.Child(form)
	if !ok {
		return "", false
	}
	return child.Text()
}
