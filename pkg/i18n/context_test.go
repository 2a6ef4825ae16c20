package i18n_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ElementAstro/hello-element-astro-launcher-sub001/pkg/i18n"
)

func TestProviderContext(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		p := i18n.MustProvider("en", testDictionary())
		ctx := i18n.WithProvider(context.Background(), p)

		got, ok := i18n.FromContext(ctx)
		require.True(t, ok)
		require.Same(t, p, got)
		require.Equal(t, "Save", i18n.T(ctx, "common.save"))
	})

	t.Run("missing provider", func(t *testing.T) {
		t.Parallel()
		_, ok := i18n.FromContext(context.Background())
		require.False(t, ok)
		require.Equal(t, "common.save", i18n.T(context.Background(), "common.save"))
		require.Equal(t, "Save", i18n.T(context.Background(), "common.save", i18n.WithDefault("Save")))
	})

	t.Run("nil provider", func(t *testing.T) {
		t.Parallel()
		ctx := i18n.WithProvider(context.Background(), nil)
		_, ok := i18n.FromContext(ctx)
		require.False(t, ok)
	})
}
