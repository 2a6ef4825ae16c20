package i18n

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/goccy/go-json"
)

// Dictionary is the translation tree of one locale, keyed by top-level
// namespace ("common", "download", "proxy", ...).
//
// A Dictionary is a snapshot: code that publishes one never mutates it
// afterwards, so it can be shared between goroutines without locking.
type Dictionary map[string]Value

// NewDictionary builds a Dictionary from a decoded tree such as the output
// of json.Unmarshal into map[string]any.
func NewDictionary(tree map[string]any) (Dictionary, error) {
	dict := make(Dictionary, len(tree))
	for ns, raw := range tree {
		v, err := ValueOf(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ns, err)
		}
		dict[ns] = v
	}
	return dict, nil
}

// MustDictionary is NewDictionary that panics on error.
// Intended for package-level fixtures.
func MustDictionary(tree map[string]any) Dictionary {
	dict, err := NewDictionary(tree)
	if err != nil {
		panic(err)
	}
	return dict
}

// Get walks a dot-separated path. It returns false when any segment is
// missing or the tree bottoms out before the path ends.
func (d Dictionary) Get(path string) (Value, bool) {
	if len(d) == 0 || path == "" {
		return Value{}, false
	}
	head, rest, more := strings.Cut(path, ".")
	node, ok := d[head]
	if !ok {
		return Value{}, false
	}
	for more {
		var seg string
		seg, rest, more = strings.Cut(rest, ".")
		if node, ok = node.Child(seg); !ok {
			return Value{}, false
		}
	}
	return node, true
}

// Lookup returns the string stored at path when it is a leaf.
func (d Dictionary) Lookup(path string) (string, bool) {
	v, ok := d.Get(path)
	if !ok {
		return "", false
	}
	return v.Text()
}

// Has reports whether path resolves to any value.
func (d Dictionary) Has(path string) bool {
	_, ok := d.Get(path)
	return ok
}

// Namespaces returns the sorted top-level keys.
func (d Dictionary) Namespaces() []string {
	return slices.Sorted(maps.Keys(d))
}

// Clone returns a shallow copy; values are immutable so this is enough to
// give the caller an independent map.
func (d Dictionary) Clone() Dictionary {
	return maps.Clone(d)
}

// Paths lists every leaf path in sorted order. Plural and context values
// count as a single path because they are read through their base key.
func (d Dictionary) Paths() []string {
	var out []string
	for ns, v := range d {
		out = collectPaths(out, ns, v)
	}
	slices.Sort(out)
	return out
}

func collectPaths(out []string, prefix string, v Value) []string {
	if v.Kind() != KindNested {
		return append(out, prefix)
	}
	for _, k := range v.Keys() {
		child, _ := v.Child(k)
		out = collectPaths(out, prefix+"."+k, child)
	}
	return out
}

// Tree converts the dictionary back to map[string]any.
func (d Dictionary) Tree() map[string]any {
	out := make(map[string]any, len(d))
	for ns, v := range d {
		out[ns] = v.Interface()
	}
	return out
}

// MarshalJSON encodes the dictionary as a plain JSON object tree.
func (d Dictionary) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Tree())
}

// UnmarshalJSON decodes a JSON object tree, classifying every node.
func (d *Dictionary) UnmarshalJSON(data []byte) error {
	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err != nil {
		return err
	}
	if tree == nil {
		return fmt.Errorf("%w: dictionary must be a JSON object", ErrInvalidValue)
	}
	dict, err := NewDictionary(tree)
	if err != nil {
		return err
	}
	*d = dict
	return nil
}
