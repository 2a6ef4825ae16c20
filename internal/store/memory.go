package store

import (
	"context"
	"sync"

	"github.com/ElementAstro/hello-element-astro-launcher-sub001/pkg/i18n"
)

// Memory keeps overrides in process. It is used when DATABASE_URL is unset
// and in tests.
type Memory struct {
	data map[string]i18n.Dictionary
	mu   sync.RWMutex
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]i18n.Dictionary)}
}

func (m *Memory) Overrides(_ context.Context, locale string) (i18n.Dictionary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	d, ok := m.data[locale]
	if !ok {
		return i18n.Dictionary{}, nil
	}
	return d.Clone(), nil
}

func (m *Memory) PutOverride(_ context.Context, locale, namespace string, v i18n.Value) error {
	if err := validate(locale, namespace, v); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.dict(locale)[namespace] = v
	return nil
}

func (m *Memory) PutOverrides(_ context.Context, locale string, d i18n.Dictionary) error {
	if err := validateAll(locale, d); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	dst := m.dict(locale)
	for ns, v := range d {
		dst[ns] = v
	}
	return nil
}

func (m *Memory) DeleteOverride(_ context.Context, locale, namespace string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.data[locale]
	if !ok {
		return ErrNotFound
	}
	if _, ok := d[namespace]; !ok {
		return ErrNotFound
	}
	delete(d, namespace)
	if len(d) == 0 {
		delete(m.data, locale)
	}
	return nil
}

// dict must be called with mu held.
func (m *Memory) dict(locale string) i18n.Dictionary {
	d, ok := m.data[locale]
	if !ok {
		d = i18n.Dictionary{}
		m.data[locale] = d
	}
	return d
}

var _ Store = (*Memory)(nil)
