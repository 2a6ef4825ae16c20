// Package translations serves the hub's per-locale dictionaries: the
// embedded catalog with stored overrides layered on top, cached as
// encoded JSON.
package translations

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/ElementAstro/hello-element-astro-launcher-sub001/internal/store"
	"github.com/ElementAstro/hello-element-astro-launcher-sub001/pkg/cache"
	"github.com/ElementAstro/hello-element-astro-launcher-sub001/pkg/i18n"
	"github.com/ElementAstro/hello-element-astro-launcher-sub001/pkg/sanitizer"
)

const DefaultTTL = 10 * time.Minute

type Option func(*Service)

// WithCache shares payloads through c, typically a cache.Redis[[]byte]
// with the Raw marshaler. The caller owns c.
func WithCache(c cache.Cache[[]byte]) Option {
	return func(s *Service) {
		if c != nil {
			s.cache = c
			s.ownCache = false
		}
	}
}

func WithTTL(d time.Duration) Option {
	return func(s *Service) {
		if d != 0 {
			s.ttl = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// Service is safe for concurrent use.
type Service struct {
	catalog  *i18n.Catalog
	store    store.Store
	cache    cache.Cache[[]byte]
	log      *slog.Logger
	ttl      time.Duration
	ownCache bool

	mu sync.Mutex
	// gens counts override writes per locale.
	gens map[string]uint64
	// decoded keeps the last decoded payload per locale.
	decoded map[string]decodedPayload
}

type decodedPayload struct {
	data []byte
	dict i18n.Dictionary
}

// New builds a service over catalog and st. Without WithCache an
// in-memory cache is created and released by Close.
func New(catalog *i18n.Catalog, st store.Store, opts ...Option) *Service {
	s := &Service{
		catalog:  catalog,
		store:    st,
		log:      slog.New(slog.DiscardHandler),
		ttl:      DefaultTTL,
		ownCache: true,
		gens:     make(map[string]uint64),
		decoded:  make(map[string]decodedPayload),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.ownCache {
		s.cache = cache.NewMemory[[]byte](cache.WithTTL(s.ttl), cache.WithMaxEntries(len(i18n.Locales())*4))
	}
	return s
}

// Locale describes one supported locale for the locales endpoint.
type Locale struct {
	Locale  string   `json:"locale"`
	Regions []string `json:"regions"`
	Default bool     `json:"default,omitempty"`
}

func (s *Service) Locales() []Locale {
	out := make([]Locale, 0, len(i18n.Regions))
	for _, l := range i18n.Locales() {
		out = append(out, Locale{
			Locale:  l,
			Regions: i18n.RegionsFor(l),
			Default: l == i18n.DefaultLocale,
		})
	}
	return out
}

// Payload returns the merged dictionary of locale encoded as JSON.
// Concurrent misses for one locale share a single store read.
func (s *Service) Payload(ctx context.Context, locale string) ([]byte, error) {
	if !i18n.Supported(locale) {
		return nil, fmt.Errorf("%w: %q", i18n.ErrUnknownLocale, locale)
	}

	gen := s.generation(locale)
	data, err := cache.GetOrSet(ctx, s.cache, locale, func(ctx context.Context) ([]byte, time.Duration, error) {
		d, err := s.build(ctx, locale)
		if err != nil {
			return nil, 0, err
		}
		data, err := json.Marshal(d)
		if err != nil {
			return nil, 0, fmt.Errorf("translations: encode %s: %w", locale, err)
		}
		return data, s.ttl, nil
	})
	if err != nil {
		return nil, err
	}

	// An override write landed while the payload was loading, so the
	// cached copy may predate it.
	if s.generation(locale) != gen {
		s.invalidate(ctx, locale)
	}
	return data, nil
}

// Dictionary returns the decoded payload of locale. The result is shared
// between callers and must not be modified.
func (s *Service) Dictionary(ctx context.Context, locale string) (i18n.Dictionary, error) {
	data, err := s.Payload(ctx, locale)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	prev, ok := s.decoded[locale]
	s.mu.Unlock()
	if ok && bytes.Equal(prev.data, data) {
		return prev.dict, nil
	}

	var d i18n.Dictionary
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("translations: decode %s: %w", locale, err)
	}

	s.mu.Lock()
	s.decoded[locale] = decodedPayload{data: data, dict: d}
	s.mu.Unlock()
	return d, nil
}

func (s *Service) build(ctx context.Context, locale string) (i18n.Dictionary, error) {
	base, _ := s.catalog.Dictionary(locale)
	overrides, err := s.store.Overrides(ctx, locale)
	if err != nil {
		return nil, fmt.Errorf("translations: overrides %s: %w", locale, err)
	}
	if len(overrides) > 0 {
		s.log.DebugContext(ctx, "applying overrides",
			slog.String("locale", locale),
			slog.Any("namespaces", overrides.Namespaces()),
		)
	}
	return i18n.Merge(base, overrides), nil
}

// Missing lists leaf paths of the default locale that locale lacks, with
// overrides applied on both sides.
func (s *Service) Missing(ctx context.Context, locale string) ([]string, error) {
	ref, err := s.Dictionary(ctx, i18n.DefaultLocale)
	if err != nil {
		return nil, err
	}
	target, err := s.Dictionary(ctx, locale)
	if err != nil {
		return nil, err
	}

	missing := []string{}
	for _, path := range ref.Paths() {
		if !target.Has(path) {
			missing = append(missing, path)
		}
	}
	return missing, nil
}

// PutOverride stores v for namespace after stripping unsafe markup.
func (s *Service) PutOverride(ctx context.Context, locale, namespace string, v i18n.Value) error {
	if !i18n.Supported(locale) {
		return fmt.Errorf("%w: %q", i18n.ErrUnknownLocale, locale)
	}
	if err := s.store.PutOverride(ctx, locale, namespace, sanitizer.Value(v)); err != nil {
		return err
	}
	s.written(ctx, locale)
	return nil
}

func (s *Service) PutOverrides(ctx context.Context, locale string, d i18n.Dictionary) error {
	if !i18n.Supported(locale) {
		return fmt.Errorf("%w: %q", i18n.ErrUnknownLocale, locale)
	}
	if err := s.store.PutOverrides(ctx, locale, sanitizer.Dictionary(d)); err != nil {
		return err
	}
	s.written(ctx, locale)
	return nil
}

func (s *Service) DeleteOverride(ctx context.Context, locale, namespace string) error {
	if !i18n.Supported(locale) {
		return fmt.Errorf("%w: %q", i18n.ErrUnknownLocale, locale)
	}
	if err := s.store.DeleteOverride(ctx, locale, namespace); err != nil {
		return err
	}
	s.written(ctx, locale)
	return nil
}

func (s *Service) generation(locale string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gens[locale]
}

// written records an override write for locale and drops its payload.
// The generation moves before the cache entry is deleted so a load racing
// the write either sees the new generation or has its entry deleted here.
func (s *Service) written(ctx context.Context, locale string) {
	s.mu.Lock()
	s.gens[locale]++
	s.mu.Unlock()
	s.invalidate(ctx, locale)
}

// invalidate drops the cached payload and detaches later reads from a load
// already in flight. A failure leaves a stale entry until its TTL, so it
// is logged rather than returned.
func (s *Service) invalidate(ctx context.Context, locale string) {
	cache.Forget(s.cache, locale)
	if err := s.cache.Delete(ctx, locale); err != nil && !errors.Is(err, cache.ErrNotFound) {
		s.log.WarnContext(ctx, "translation cache invalidation failed",
			slog.String("locale", locale),
			slog.String("error", err.Error()),
		)
	}
}

// Close releases the cache created by New. A cache passed with WithCache
// is left to its owner.
func (s *Service) Close() error {
	if s.ownCache {
		return s.cache.Close()
	}
	return nil
}
