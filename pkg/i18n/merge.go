package i18n

import (
	"slices"
)

// Merge layers dictionaries from left to right. The merge is shallow: when
// two sources define the same top-level namespace, the later one replaces
// the whole subtree and nothing is merged key by key.
func Merge(sources ...Dictionary) Dictionary {
	size := 0
	for _, src := range sources {
		size += len(src)
	}
	out := make(Dictionary, size)
	for _, src := range sources {
		for ns, v := range src {
			out[ns] = v
		}
	}
	return out
}

// Feature is one component's dictionaries, keyed by locale.
type Feature struct {
	Dictionaries map[string]Dictionary
	Name         string
}

// Catalog holds the merged dictionary of every locale. It is built once and
// is read-only afterwards.
type Catalog struct {
	dictionaries map[string]Dictionary
	features     []string
}

// NewCatalog merges features in the order given. Put shared strings first so
// that feature dictionaries can override them. A feature that has no entry
// for a locale is skipped for that locale; parity between locales is not
// enforced.
func NewCatalog(features ...Feature) *Catalog {
	c := &Catalog{
		dictionaries: make(map[string]Dictionary),
		features:     make([]string, 0, len(features)),
	}

	layers := make(map[string][]Dictionary)
	for _, f := range features {
		c.features = append(c.features, f.Name)
		for locale, dict := range f.Dictionaries {
			layers[locale] = append(layers[locale], dict)
		}
	}
	for locale, dicts := range layers {
		c.dictionaries[locale] = Merge(dicts...)
	}

	return c
}

// Dictionary returns the merged dictionary for locale.
func (c *Catalog) Dictionary(locale string) (Dictionary, bool) {
	if c == nil {
		return nil, false
	}
	d, ok := c.dictionaries[locale]
	return d, ok
}

// Locales returns the locales that have at least one dictionary.
func (c *Catalog) Locales() []string {
	if c == nil {
		return nil
	}
	out := make([]string, 0, len(c.dictionaries))
	for locale := range c.dictionaries {
		out = append(out, locale)
	}
	slices.Sort(out)
	return out
}

// Features returns feature names in merge order.
func (c *Catalog) Features() []string {
	if c == nil {
		return nil
	}
	return slices.Clone(c.features)
}

// Missing lists leaf paths present in the base locale but absent from locale.
func (c *Catalog) Missing(base, locale string) []string {
	ref, ok := c.Dictionary(base)
	if !ok {
		return nil
	}
	target, _ := c.Dictionary(locale)

	var missing []string
	for _, path := range ref.Paths() {
		if !target.Has(path) {
			missing = append(missing, path)
		}
	}
	return missing
}
