package i18n

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
)

// Kind identifies the shape of a dictionary Value.
type Kind uint8

const (
	// KindInvalid is the zero Value; it is never stored in a dictionary.
	KindInvalid Kind = iota
	// KindLeaf is a plain string.
	KindLeaf
	// KindPlural maps plural categories ("one", "other", ...) to strings.
	KindPlural
	// KindContext maps context names to strings.
	KindContext
	// KindNested maps names to further values.
	KindNested
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindPlural:
		return "plural"
	case KindContext:
		return "context"
	case KindNested:
		return "nested"
	default:
		return "invalid"
	}
}

// Value is one node of a translation dictionary.
// Values are immutable once built; constructors copy their input.
type Value struct {
	forms    map[string]string
	children map[string]Value
	text     string
	kind     Kind
}

// Leaf returns a plain string value.
func Leaf(s string) Value {
	return Value{kind: KindLeaf, text: s}
}

// Plural returns a value holding one string per plural category.
func Plural(forms map[string]string) Value {
	return Value{kind: KindPlural, forms: maps.Clone(forms)}
}

// Context returns a value holding one string per context name.
func Context(forms map[string]string) Value {
	return Value{kind: KindContext, forms: maps.Clone(forms)}
}

// Nested returns a value holding named child values.
func Nested(children map[string]Value) Value {
	return Value{kind: KindNested, children: maps.Clone(children)}
}

// Kind reports the shape of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsValid reports whether v was built by one of the constructors.
func (v Value) IsValid() bool {
	return v.kind != KindInvalid
}

// Text returns the string of a leaf value.
func (v Value) Text() (string, bool) {
	if v.kind != KindLeaf {
		return "", false
	}
	return v.text, true
}

// Form returns the string stored under name in a plural or context value.
func (v Value) Form(name string) (string, bool) {
	if v.kind != KindPlural && v.kind != KindContext {
		return "", false
	}
	s, ok := v.forms[name]
	return s, ok
}

// Child returns the value stored under name. Plural and context forms are
// exposed as leaves so dot paths can walk into them.
func (v Value) Child(name string) (Value, bool) {
	switch v.kind {
	case KindNested:
		child, ok := v.children[name]
		return child, ok
	case KindPlural, KindContext:
		if s, ok := v.forms[name]; ok {
			return Leaf(s), true
		}
	}
	return Value{}, false
}

// Keys returns the sorted names of the forms or children of v.
func (v Value) Keys() []string {
	switch v.kind {
	case KindNested:
		return slices.Sorted(maps.Keys(v.children))
	case KindPlural, KindContext:
		return slices.Sorted(maps.Keys(v.forms))
	}
	return nil
}

// Interface converts v back into a loosely-typed tree suitable for encoders.
func (v Value) Interface() any {
	switch v.kind {
	case KindLeaf:
		return v.text
	case KindPlural, KindContext:
		out := make(map[string]any, len(v.forms))
		for k, s := range v.forms {
			out[k] = s
		}
		return out
	case KindNested:
		out := make(map[string]any, len(v.children))
		for k, child := range v.children {
			out[k] = child.Interface()
		}
		return out
	}
	return nil
}

// ValueOf classifies a decoded tree node.
//
// Strings become leaves and numbers or booleans become stringified leaves.
// A map holding only strings is a Plural value when every key is a plural
// category and a Context value otherwise. Any other map is Nested.
// Non-string map keys, as YAML produces for `404: Not found`, are
// stringified. Nulls, arrays and unknown types are rejected with ErrInvalidValue.
func ValueOf(raw any) (Value, error) {
	switch t := raw.(type) {
	case string:
		return Leaf(t), nil
	case bool:
		return Leaf(strconv.FormatBool(t)), nil
	case int:
		return Leaf(strconv.Itoa(t)), nil
	case int64:
		return Leaf(strconv.FormatInt(t, 10)), nil
	case uint64:
		return Leaf(strconv.FormatUint(t, 10)), nil
	case float64:
		return Leaf(strconv.FormatFloat(t, 'f', -1, 64)), nil
	case map[string]string:
		return formsValue(t), nil
	case map[string]any:
		return mapValue(t)
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, v := range t {
			m[fmt.Sprint(k)] = v
		}
		return mapValue(m)
	case Value:
		if !t.IsValid() {
			return Value{}, ErrInvalidValue
		}
		return t, nil
	}
	return Value{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidValue, raw)
}

func mapValue(m map[string]any) (Value, error) {
	forms := make(map[string]string, len(m))
	for k, raw := range m {
		s, ok := raw.(string)
		if !ok {
			forms = nil
			break
		}
		forms[k] = s
	}
	if forms != nil && len(forms) > 0 {
		return formsValue(forms), nil
	}

	children := make(map[string]Value, len(m))
	for k, raw := range m {
		child, err := ValueOf(raw)
		if err != nil {
			return Value{}, fmt.Errorf("%s: %w", k, err)
		}
		children[k] = child
	}
	return Value{kind: KindNested, children: children}, nil
}

func formsValue(forms map[string]string) Value {
	for k := range forms {
		if !IsPluralCategory(k) {
			return Context(forms)
		}
	}
	return Plural(forms)
}
