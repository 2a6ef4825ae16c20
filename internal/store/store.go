// Package store persists translation overrides: whole dictionary
// namespaces that replace the embedded ones for a locale.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/ElementAstro/hello-element-astro-launcher-sub001/pkg/i18n"
)

var (
	ErrNotFound        = errors.New("store: override not found")
	ErrInvalidOverride = errors.New("store: invalid override")
)

type Store interface {
	// Overrides returns the namespaces overridden for locale; an empty
	// dictionary when there are none.
	Overrides(ctx context.Context, locale string) (i18n.Dictionary, error)
	PutOverride(ctx context.Context, locale, namespace string, v i18n.Value) error
	// PutOverrides stores every namespace of d atomically.
	PutOverrides(ctx context.Context, locale string, d i18n.Dictionary) error
	// DeleteOverride returns ErrNotFound when nothing was stored.
	DeleteOverride(ctx context.Context, locale, namespace string) error
}

func validate(locale, namespace string, v i18n.Value) error {
	switch {
	case locale == "":
		return fmt.Errorf("%w: empty locale", ErrInvalidOverride)
	case namespace == "":
		return fmt.Errorf("%w: empty namespace", ErrInvalidOverride)
	case !v.IsValid():
		return fmt.Errorf("%w: %s: empty value", ErrInvalidOverride, namespace)
	}
	return nil
}

func validateAll(locale string, d i18n.Dictionary) error {
	if len(d) == 0 {
		return fmt.Errorf("%w: no namespaces", ErrInvalidOverride)
	}
	for ns, v := range d {
		if err := validate(locale, ns, v); err != nil {
			return err
		}
	}
	return nil
}
