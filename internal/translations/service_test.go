package translations_test

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ElementAstro/hello-element-astro-launcher-sub001/internal/store"
	"github.com/ElementAstro/hello-element-astro-launcher-sub001/internal/translations"
	"github.com/ElementAstro/hello-element-astro-launcher-sub001/pkg/cache"
	"github.com/ElementAstro/hello-element-astro-launcher-sub001/pkg/i18n"
)

func testCatalog() *i18n.Catalog {
	common := i18n.Feature{Name: "common", Dictionaries: map[string]i18n.Dictionary{
		"en": {"common": i18n.Nested(map[string]i18n.Value{
			"save":  i18n.Leaf("Save"),
			"retry": i18n.Leaf("Retry"),
		})},
		"zh-CN": {"common": i18n.Nested(map[string]i18n.Value{
			"save": i18n.Leaf("保存"),
		})},
	}}
	download := i18n.Feature{Name: "download", Dictionaries: map[string]i18n.Dictionary{
		"en": {"download": i18n.Nested(map[string]i18n.Value{"title": i18n.Leaf("Downloads")})},
	}}
	return i18n.NewCatalog(common, download)
}

// countingStore records how often overrides are read.
type countingStore struct {
	store.Store
	reads atomic.Int32
	fail  error
}

func (c *countingStore) Overrides(ctx context.Context, locale string) (i18n.Dictionary, error) {
	c.reads.Add(1)
	if c.fail != nil {
		return nil, c.fail
	}
	return c.Store.Overrides(ctx, locale)
}

func TestService_Dictionary(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("catalog only", func(t *testing.T) {
		t.Parallel()
		svc := translations.New(testCatalog(), store.NewMemory())
		defer svc.Close()

		d, err := svc.Dictionary(ctx, "en")
		require.NoError(t, err)
		assert.Equal(t, "Save", i18n.Translate(d, "common.save"))
		assert.Equal(t, "Downloads", i18n.Translate(d, "download.title"))

		zh, err := svc.Dictionary(ctx, "zh-CN")
		require.NoError(t, err)
		assert.Equal(t, "保存", i18n.Translate(zh, "common.save"))
		assert.Equal(t, "download.title", i18n.Translate(zh, "download.title"))
	})

	t.Run("unsupported locale", func(t *testing.T) {
		t.Parallel()
		svc := translations.New(testCatalog(), store.NewMemory())
		defer svc.Close()

		_, err := svc.Payload(ctx, "fr")
		require.ErrorIs(t, err, i18n.ErrUnknownLocale)
	})

	t.Run("payloads are cached", func(t *testing.T) {
		t.Parallel()
		st := &countingStore{Store: store.NewMemory()}
		svc := translations.New(testCatalog(), st)
		defer svc.Close()

		for range 3 {
			_, err := svc.Payload(ctx, "en")
			require.NoError(t, err)
		}
		require.Equal(t, int32(1), st.reads.Load())
	})

	t.Run("store error is returned and not cached", func(t *testing.T) {
		t.Parallel()
		st := &countingStore{Store: store.NewMemory(), fail: errors.New("db down")}
		svc := translations.New(testCatalog(), st)
		defer svc.Close()

		_, err := svc.Payload(ctx, "en")
		require.ErrorContains(t, err, "db down")

		st.fail = nil
		_, err = svc.Payload(ctx, "en")
		require.NoError(t, err)
		require.Equal(t, int32(2), st.reads.Load())
	})

	t.Run("shared cache", func(t *testing.T) {
		t.Parallel()
		c := cache.NewMemory[[]byte]()
		defer c.Close()

		svc := translations.New(testCatalog(), store.NewMemory(), translations.WithCache(c))
		_, err := svc.Payload(ctx, "en")
		require.NoError(t, err)
		require.NoError(t, svc.Close())

		data, err := c.Get(ctx, "en")
		require.NoError(t, err, "caller-owned cache stays open")
		require.Contains(t, string(data), "Downloads")
	})
}

// gatedStore holds the first Overrides read, after the stored overrides
// have been read, until release is closed.
type gatedStore struct {
	store.Store
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedStore) Overrides(ctx context.Context, locale string) (i18n.Dictionary, error) {
	d, err := g.Store.Overrides(ctx, locale)
	first := false
	g.once.Do(func() { first = true })
	if first {
		close(g.entered)
		<-g.release
	}
	return d, err
}

func TestService_WriteDuringLoad(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := &gatedStore{Store: store.NewMemory(), entered: make(chan struct{}), release: make(chan struct{})}
	svc := translations.New(testCatalog(), st)
	defer svc.Close()

	slow := make(chan []byte, 1)
	go func() {
		data, err := svc.Payload(ctx, "en")
		assert.NoError(t, err)
		slow <- data
	}()
	<-st.entered

	require.NoError(t, svc.PutOverride(ctx, "en", "download", i18n.Nested(map[string]i18n.Value{
		"title": i18n.Leaf("Transfers"),
	})))

	// Reads after the write do not wait for the load that started before it.
	fresh, err := svc.Payload(ctx, "en")
	require.NoError(t, err)
	assert.Contains(t, string(fresh), "Transfers")

	close(st.release)
	assert.Contains(t, string(<-slow), "Downloads", "load began before the write")

	data, err := svc.Payload(ctx, "en")
	require.NoError(t, err)
	assert.Contains(t, string(data), "Transfers")
	assert.NotContains(t, string(data), "Downloads")

	d, err := svc.Dictionary(ctx, "en")
	require.NoError(t, err)
	assert.Equal(t, "Transfers", i18n.Translate(d, "download.title"))
}

func TestService_DictionaryReuse(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := translations.New(testCatalog(), store.NewMemory())
	defer svc.Close()

	first, err := svc.Dictionary(ctx, "en")
	require.NoError(t, err)
	second, err := svc.Dictionary(ctx, "en")
	require.NoError(t, err)
	assert.Equal(t, reflect.ValueOf(first).Pointer(), reflect.ValueOf(second).Pointer(), "unchanged payload is decoded once")

	require.NoError(t, svc.PutOverride(ctx, "en", "download", i18n.Nested(map[string]i18n.Value{
		"title": i18n.Leaf("Transfers"),
	})))
	third, err := svc.Dictionary(ctx, "en")
	require.NoError(t, err)
	assert.NotEqual(t, reflect.ValueOf(first).Pointer(), reflect.ValueOf(third).Pointer())
	assert.Equal(t, "Transfers", i18n.Translate(third, "download.title"))
	assert.Equal(t, "Downloads", i18n.Translate(first, "download.title"))
}

func TestService_Overrides(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := translations.New(testCatalog(), store.NewMemory())
	defer svc.Close()

	// Warm the cache so the writes below must invalidate it.
	_, err := svc.Payload(ctx, "en")
	require.NoError(t, err)

	require.NoError(t, svc.PutOverride(ctx, "en", "common", i18n.Nested(map[string]i18n.Value{
		"save": i18n.Leaf("Store"),
	})))

	d, err := svc.Dictionary(ctx, "en")
	require.NoError(t, err)
	assert.Equal(t, "Store", i18n.Translate(d, "common.save"))
	assert.False(t, d.Has("common.retry"), "override replaces the whole namespace")
	assert.Equal(t, "Downloads", i18n.Translate(d, "download.title"))

	require.NoError(t, svc.PutOverrides(ctx, "en", i18n.Dictionary{
		"download": i18n.Nested(map[string]i18n.Value{"title": i18n.Leaf("Transfers")}),
		"agents":   i18n.Nested(map[string]i18n.Value{"title": i18n.Leaf("Agents")}),
	}))
	d, err = svc.Dictionary(ctx, "en")
	require.NoError(t, err)
	assert.Equal(t, "Transfers", i18n.Translate(d, "download.title"))
	assert.Equal(t, "Agents", i18n.Translate(d, "agents.title"))

	require.NoError(t, svc.PutOverride(ctx, "en", "agents", i18n.Nested(map[string]i18n.Value{
		"title": i18n.Leaf(`<b>Agents</b><script>alert(1)</script>`),
	})))
	d, err = svc.Dictionary(ctx, "en")
	require.NoError(t, err)
	assert.Equal(t, "<b>Agents</b>", i18n.Translate(d, "agents.title"), "markup is sanitized on write")

	require.NoError(t, svc.DeleteOverride(ctx, "en", "common"))
	d, err = svc.Dictionary(ctx, "en")
	require.NoError(t, err)
	assert.Equal(t, "Save", i18n.Translate(d, "common.save"))

	require.ErrorIs(t, svc.DeleteOverride(ctx, "en", "common"), store.ErrNotFound)
	require.ErrorIs(t, svc.PutOverride(ctx, "fr", "common", i18n.Leaf("x")), i18n.ErrUnknownLocale)
}

func TestService_Missing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := translations.New(testCatalog(), store.NewMemory())
	defer svc.Close()

	missing, err := svc.Missing(ctx, "zh-CN")
	require.NoError(t, err)
	require.Equal(t, []string{"common.retry", "download.title"}, missing)

	missing, err = svc.Missing(ctx, "en")
	require.NoError(t, err)
	require.Empty(t, missing)
}

func TestService_Locales(t *testing.T) {
	t.Parallel()

	svc := translations.New(testCatalog(), store.NewMemory())
	defer svc.Close()

	locales := svc.Locales()
	require.Len(t, locales, 2)
	assert.Equal(t, translations.Locale{Locale: "en", Regions: []string{"US", "GB", "AU", "CA"}, Default: true}, locales[0])
	assert.Equal(t, "zh-CN", locales[1].Locale)
}
