// Package sanitizer cleans markup out of translation text submitted at
// runtime. Text without tags is returned untouched so placeholders and
// punctuation survive; text with tags keeps basic formatting only.
package sanitizer

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/ElementAstro/hello-element-astro-launcher-sub001/pkg/i18n"
)

var (
	policy   *bluemonday.Policy
	initOnce sync.Once
)

func initPolicy() {
	initOnce.Do(func() {
		policy = bluemonday.NewPolicy()
		policy.AllowStandardURLs()
		policy.AllowElements(
			"p", "br",
			"strong", "b", "em", "i",
			"ul", "ol", "li",
			"code", "pre",
		)
		policy.AllowAttrs("href").OnElements("a")
		policy.RequireNoFollowOnLinks(true)
	})
}

// HTML strips scripts, event handlers and unsafe URLs from s.
func HTML(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}
	initPolicy()
	return policy.Sanitize(s)
}

// Value returns a copy of v with every string passed through HTML.
func Value(v i18n.Value) i18n.Value {
	switch v.Kind() {
	case i18n.KindLeaf:
		s, _ := v.Text()
		return i18n.Leaf(HTML(s))
	case i18n.KindPlural, i18n.KindContext:
		forms := make(map[string]string, len(v.Keys()))
		for _, k := range v.Keys() {
			s, _ := v.Form(k)
			forms[k] = HTML(s)
		}
		if v.Kind() == i18n.KindPlural {
			return i18n.Plural(forms)
		}
		return i18n.Context(forms)
	case i18n.KindNested:
		children := make(map[string]i18n.Value, len(v.Keys()))
		for _, k := range v.Keys() {
			child, _ := v.Child(k)
			children[k] = Value(child)
		}
		return i18n.Nested(children)
	}
	return v
}

// Dictionary applies Value to every namespace of d.
func Dictionary(d i18n.Dictionary) i18n.Dictionary {
	out := make(i18n.Dictionary, len(d))
	for ns, v := range d {
		out[ns] = Value(v)
	}
	return out
}
