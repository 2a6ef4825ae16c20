package i18n

import (
	"cmp"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// CommonFeature is merged before every other feature found by LoadDir.
const CommonFeature = "common"

type unmarshalFunc func(data []byte, v any) error

var decoders = map[string]unmarshalFunc{
	".json": json.Unmarshal,
	".yaml": yaml.Unmarshal,
	".yml":  yaml.Unmarshal,
	".toml": toml.Unmarshal,
}

// LoadDir reads per-feature dictionaries from fsys.
// File convention: {locale}/{feature}.{json|yaml|yml|toml}
//
// Example structure:
//
//	en/common.json
//	en/download.yaml
//	zh-CN/common.json
//	zh-CN/proxy.toml
//
// Each file holds top-level namespaces. The features are returned in merge
// order: "common" first, then by name. Files with other extensions are
// ignored.
func LoadDir(fsys fs.FS) ([]Feature, error) {
	byName := make(map[string]*Feature)

	err := fs.WalkDir(fsys, ".", func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(path.Ext(filePath))
		decode, ok := decoders[ext]
		if !ok {
			return nil
		}

		dir := path.Dir(filePath)
		if dir == "." || dir == "" {
			return fmt.Errorf("%w: file %q must be inside a locale directory", ErrInvalidFile, filePath)
		}
		locale := path.Base(dir)
		name := strings.TrimSuffix(path.Base(filePath), path.Ext(filePath))

		data, err := fs.ReadFile(fsys, filePath)
		if err != nil {
			return fmt.Errorf("reading %q: %w", filePath, err)
		}

		var tree map[string]any
		if err := decode(data, &tree); err != nil {
			return fmt.Errorf("%w: %q: %w", ErrInvalidFile, filePath, err)
		}
		dict, err := NewDictionary(tree)
		if err != nil {
			return fmt.Errorf("%w: %q: %w", ErrInvalidFile, filePath, err)
		}

		f, ok := byName[name]
		if !ok {
			f = &Feature{Name: name, Dictionaries: make(map[string]Dictionary)}
			byName[name] = f
		}
		// Two files for the same feature and locale (en/proxy.json and
		// en/proxy.yaml) are merged in walk order.
		f.Dictionaries[locale] = Merge(f.Dictionaries[locale], dict)
		return nil
	})
	if err != nil {
		return nil, err
	}

	features := make([]Feature, 0, len(byName))
	for _, f := range byName {
		features = append(features, *f)
	}
	slices.SortFunc(features, func(a, b Feature) int {
		switch {
		case a.Name == b.Name:
			return 0
		case a.Name == CommonFeature:
			return -1
		case b.Name == CommonFeature:
			return 1
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return features, nil
}

// templateRefRe matches go-i18n template references such as {{.Name}}.
var templateRefRe = regexp.MustCompile(`\{\{\s*\.([\w.]+)\s*\}\}`)

// LoadMessageFiles reads go-i18n message files (active.{locale}.toml, .json,
// .yaml) found at the root of fsys and converts them into a single feature
// named name.
//
// Dotted message IDs become nested paths, messages with plural forms become
// Plural values and {{.Name}} references become {{Name}} placeholders.
func LoadMessageFiles(fsys fs.FS, name string) (Feature, error) {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
	bundle.RegisterUnmarshalFunc("yml", yaml.Unmarshal)

	feature := Feature{Name: name, Dictionaries: make(map[string]Dictionary)}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return feature, fmt.Errorf("reading message dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(path.Ext(entry.Name()))
		if _, ok := decoders[ext]; !ok {
			continue
		}

		mf, err := bundle.LoadMessageFileFS(fsys, entry.Name())
		if err != nil {
			return feature, fmt.Errorf("%w: %q: %w", ErrInvalidFile, entry.Name(), err)
		}
		dict, err := messagesToDictionary(mf.Messages)
		if err != nil {
			return feature, fmt.Errorf("%w: %q: %w", ErrInvalidFile, entry.Name(), err)
		}

		locale := mf.Tag.String()
		feature.Dictionaries[locale] = Merge(feature.Dictionaries[locale], dict)
	}
	return feature, nil
}

func messagesToDictionary(messages []*goi18n.Message) (Dictionary, error) {
	tree := make(map[string]any)
	for _, m := range messages {
		if err := insertPath(tree, m.ID, messageValue(m)); err != nil {
			return nil, err
		}
	}
	return NewDictionary(tree)
}

func messageValue(m *goi18n.Message) Value {
	forms := map[string]string{
		PluralZero: m.Zero,
		PluralOne:  m.One,
		PluralTwo:  m.Two,
		PluralFew:  m.Few,
		PluralMany: m.Many,
	}
	for k, v := range forms {
		if v == "" {
			delete(forms, k)
		} else {
			forms[k] = convertTemplate(v)
		}
	}
	if len(forms) == 0 {
		return Leaf(convertTemplate(m.Other))
	}
	if m.Other != "" {
		forms[PluralOther] = convertTemplate(m.Other)
	}
	return Plural(forms)
}

func convertTemplate(s string) string {
	return templateRefRe.ReplaceAllString(s, "{{$1}}")
}

// insertPath stores v under a dotted id, creating intermediate maps.
func insertPath(tree map[string]any, id string, v Value) error {
	segments := strings.Split(id, ".")
	node := tree
	for i, seg := range segments[:len(segments)-1] {
		next, ok := node[seg]
		if !ok {
			child := make(map[string]any)
			node[seg] = child
			node = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("message %q: %q is already a message", id, strings.Join(segments[:i+1], "."))
		}
		node = child
	}
	last := segments[len(segments)-1]
	if _, exists := node[last]; exists {
		return fmt.Errorf("message %q: path already has children", id)
	}
	node[last] = v
	return nil
}
