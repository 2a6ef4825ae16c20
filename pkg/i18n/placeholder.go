package i18n

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Params holds values substituted into {{placeholders}}. Values may be
// nested maps; a dotted placeholder such as {{device.name}} walks them.
type Params map[string]any

// placeholderRe accepts any token without braces, so names in any script
// and malformed tokens like {{ a b }} are consumed rather than left behind.
var placeholderRe = regexp.MustCompile(`\{\{\s*([^{}]*?)\s*\}\}`)

// Interpolate replaces every {{token}} in template with the value found
// under token in params.
//
// Tokens that resolve to nothing, or to nil, become the empty string; the raw
// token never survives. Strings are inserted verbatim, numbers and booleans
// in their shortest decimal form, and maps, slices and structs as compact JSON.
//
// Example:
//
//	Interpolate("{{a}} and {{b.c}}", Params{"a": "X", "b": Params{"c": "Y"}})
//	// "X and Y"
func Interpolate(template string, params Params) string {
	if !strings.Contains(template, "{{") {
		return template
	}
	return placeholderRe.ReplaceAllStringFunc(template, func(match string) string {
		token := placeholderRe.FindStringSubmatch(match)[1]
		v, ok := resolveParam(params, token)
		if !ok {
			return ""
		}
		return stringify(v)
	})
}

// resolveParam walks params along a dotted path.
func resolveParam(params Params, path string) (any, bool) {
	var cur any = map[string]any(params)
	for seg := range strings.SplitSeq(path, ".") {
		switch m := cur.(type) {
		case map[string]any:
			v, ok := m[seg]
			if !ok {
				return nil, false
			}
			cur = v
		case Params:
			v, ok := m[seg]
			if !ok {
				return nil, false
			}
			cur = v
		case map[string]string:
			v, ok := m[seg]
			if !ok {
				return nil, false
			}
			cur = v
		default:
			return nil, false
		}
	}
	return cur, true
}

func stringify(v any) string {
	// A typed nil can still satisfy fmt.Stringer through a value receiver.
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return ""
	}
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case fmt.Stringer:
		return t.String()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return ""
		}
		return stringify(rv.Elem().Interface())
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		data, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(data)
	}
	return fmt.Sprint(v)
}

// mergeParams copies the maps left to right into a new Params; later keys win.
func mergeParams(sets ...Params) Params {
	out := make(Params)
	for _, p := range sets {
		for k, v := range p {
			out[k] = v
		}
	}
	return out
}
