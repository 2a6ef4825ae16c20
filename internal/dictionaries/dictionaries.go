// Package dictionaries embeds the hub's own translation files.
//
// locales/{locale}/{feature}.{json,yaml,toml} hold the UI strings of each
// feature; messages/active.{locale}.toml holds API error messages in the
// go-i18n format.
package dictionaries

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/ElementAstro/hello-element-astro-launcher-sub001/pkg/i18n"
)

// MessagesFeature names the feature built from the go-i18n message files.
const MessagesFeature = "messages"

//go:embed locales messages
var files embed.FS

// Locales returns the embedded feature dictionaries.
func Locales() fs.FS {
	return sub("locales")
}

// Messages returns the embedded go-i18n message files.
func Messages() fs.FS {
	return sub("messages")
}

func sub(dir string) fs.FS {
	s, err := fs.Sub(files, dir)
	if err != nil {
		panic(err)
	}
	return s
}

// Load builds the catalog. A non-empty translationsDir or messagesDir
// replaces the embedded files with a directory on disk, which lets
// translators work without rebuilding the hub.
func Load(translationsDir, messagesDir string) (*i18n.Catalog, error) {
	locales, messages := Locales(), Messages()
	if translationsDir != "" {
		locales = os.DirFS(translationsDir)
	}
	if messagesDir != "" {
		messages = os.DirFS(messagesDir)
	}

	features, err := i18n.LoadDir(locales)
	if err != nil {
		return nil, fmt.Errorf("dictionaries: %w", err)
	}
	msgs, err := i18n.LoadMessageFiles(messages, MessagesFeature)
	if err != nil {
		return nil, fmt.Errorf("dictionaries: %w", err)
	}
	return i18n.NewCatalog(append(features, msgs)...), nil
}
