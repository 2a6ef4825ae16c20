package redis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ElementAstro/hello-element-astro-launcher-sub001/pkg/redis"
)

func TestOpen_Validation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("empty url", func(t *testing.T) {
		t.Parallel()
		client, err := redis.Open(ctx, "")
		require.ErrorIs(t, err, redis.ErrEmptyURL)
		require.Nil(t, client)
	})

	for _, url := range []string{"http://localhost:6379", "localhost:6379", "postgres://localhost"} {
		t.Run("scheme "+url, func(t *testing.T) {
			t.Parallel()
			_, err := redis.Open(ctx, url)
			require.ErrorIs(t, err, redis.ErrInvalidURL)
		})
	}

	t.Run("malformed url", func(t *testing.T) {
		t.Parallel()
		_, err := redis.Open(ctx, "redis://localhost:6379/not-a-db")
		require.ErrorIs(t, err, redis.ErrInvalidURL)
	})

	t.Run("unreachable server", func(t *testing.T) {
		t.Parallel()
		_, err := redis.Open(ctx, "redis://127.0.0.1:1/0",
			redis.WithRetry(1, time.Millisecond),
			redis.WithTimeout(100*time.Millisecond),
		)
		require.ErrorIs(t, err, redis.ErrConnectionFailed)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := redis.Open(cctx, "redis://127.0.0.1:1/0", redis.WithRetry(3, time.Second))
		require.ErrorIs(t, err, redis.ErrConnectionFailed)
	})
}

func TestHealthcheck(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, redis.Healthcheck(nil)(context.Background()), redis.ErrHealthcheckFailed)
}

type closer struct{ err error }

func (c closer) Close() error { return c.err }

func TestShutdown(t *testing.T) {
	t.Parallel()

	require.NoError(t, redis.Shutdown(closer{})(context.Background()))
	boom := errors.New("boom")
	require.ErrorIs(t, redis.Shutdown(closer{err: boom})(context.Background()), boom)
}
