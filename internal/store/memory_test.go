package store_test

import (
	"context"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ElementAstro/hello-element-astro-launcher-sub001/internal/store"
	"github.com/ElementAstro/hello-element-astro-launcher-sub001/pkg/i18n"
)

var downloadOverride = i18n.Nested(map[string]i18n.Value{
	"title":  i18n.Leaf("Software Downloads"),
	"status": i18n.Context(map[string]string{"running": "Downloading", "paused": "Paused"}),
})

// testStore runs the Store contract against any implementation.
func testStore(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("empty locale has no overrides", func(t *testing.T) {
		d, err := s.Overrides(ctx, "en")
		require.NoError(t, err)
		require.Empty(t, d)
	})

	t.Run("put and read", func(t *testing.T) {
		require.NoError(t, s.PutOverride(ctx, "en", "download", downloadOverride))

		d, err := s.Overrides(ctx, "en")
		require.NoError(t, err)
		require.Equal(t, "Software Downloads", i18n.Translate(d, "download.title"))
		require.Equal(t, "Paused", i18n.TranslateContext(d, "download.status", "paused"))

		other, err := s.Overrides(ctx, "zh-CN")
		require.NoError(t, err)
		require.Empty(t, other)
	})

	t.Run("put replaces namespace", func(t *testing.T) {
		require.NoError(t, s.PutOverride(ctx, "en", "download", i18n.Nested(map[string]i18n.Value{
			"title": i18n.Leaf("Downloads"),
		})))

		d, err := s.Overrides(ctx, "en")
		require.NoError(t, err)
		require.Equal(t, "Downloads", i18n.Translate(d, "download.title"))
		require.False(t, d.Has("download.status"))
	})

	t.Run("batch put", func(t *testing.T) {
		require.NoError(t, s.PutOverrides(ctx, "zh-CN", i18n.Dictionary{
			"proxy":       i18n.Nested(map[string]i18n.Value{"title": i18n.Leaf("代理设置")}),
			"environment": i18n.Nested(map[string]i18n.Value{"title": i18n.Leaf("环境")}),
		}))

		d, err := s.Overrides(ctx, "zh-CN")
		require.NoError(t, err)
		require.Equal(t, []string{"environment", "proxy"}, d.Namespaces())
	})

	t.Run("invalid input", func(t *testing.T) {
		require.ErrorIs(t, s.PutOverride(ctx, "", "download", downloadOverride), store.ErrInvalidOverride)
		require.ErrorIs(t, s.PutOverride(ctx, "en", "", downloadOverride), store.ErrInvalidOverride)
		require.ErrorIs(t, s.PutOverride(ctx, "en", "download", i18n.Value{}), store.ErrInvalidOverride)
		require.ErrorIs(t, s.PutOverrides(ctx, "en", i18n.Dictionary{}), store.ErrInvalidOverride)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.DeleteOverride(ctx, "en", "download"))
		require.ErrorIs(t, s.DeleteOverride(ctx, "en", "download"), store.ErrNotFound)
		require.ErrorIs(t, s.DeleteOverride(ctx, "fr", "download"), store.ErrNotFound)

		d, err := s.Overrides(ctx, "en")
		require.NoError(t, err)
		require.Empty(t, d)
	})
}

func TestMemory(t *testing.T) {
	t.Parallel()
	testStore(t, store.NewMemory())
}

func TestMemory_ReturnsCopy(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := store.NewMemory()
	require.NoError(t, s.PutOverride(ctx, "en", "download", downloadOverride))

	d, err := s.Overrides(ctx, "en")
	require.NoError(t, err)
	delete(d, "download")

	again, err := s.Overrides(ctx, "en")
	require.NoError(t, err)
	require.True(t, again.Has("download.title"))
}

func TestMigrations(t *testing.T) {
	t.Parallel()

	files, err := fs.Glob(store.Migrations(), "*.sql")
	require.NoError(t, err)
	require.Contains(t, files, "00001_translation_overrides.sql")
}
