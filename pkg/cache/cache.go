package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"
)

// Cache is a key-value store with per-entry expiry.
//
// A zero TTL passed to Set means the backend default, a negative TTL means
// the entry never expires.
type Cache[V any] interface {
	// Get returns ErrNotFound for missing or expired keys.
	Get(ctx context.Context, key string) (V, error)
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Clear(ctx context.Context) error
	Close() error
}

// Marshaler converts values for byte-oriented backends.
type Marshaler[V any] interface {
	Marshal(v V) ([]byte, error)
	Unmarshal(data []byte) (V, error)
}

// JSON encodes values with github.com/goccy/go-json. It is the default
// marshaler of the Redis backend.
type JSON[V any] struct{}

func (JSON[V]) Marshal(v V) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Join(ErrMarshal, err)
	}
	return data, nil
}

func (JSON[V]) Unmarshal(data []byte) (V, error) {
	var v V
	if err := json.Unmarshal(data, &v); err != nil {
		return v, errors.Join(ErrUnmarshal, err)
	}
	return v, nil
}

// Raw stores byte slices as they are, e.g. pre-encoded response bodies.
type Raw struct{}

func (Raw) Marshal(v []byte) ([]byte, error) { return v, nil }

func (Raw) Unmarshal(data []byte) ([]byte, error) { return data, nil }

// Loader computes a value on a cache miss together with its TTL.
type Loader[V any] func(ctx context.Context) (V, time.Duration, error)

var loads singleflight.Group

type loaded[V any] struct {
	val V
	ttl time.Duration
}

// GetOrSet returns the cached value for key or computes it with load.
//
// Concurrent misses on the same cache and key share a single load call.
// Load errors are returned and nothing is stored. Failing to store the
// loaded value is not an error: the value is returned anyway.
func GetOrSet[V any](ctx context.Context, c Cache[V], key string, load Loader[V]) (V, error) {
	if v, err := c.Get(ctx, key); err == nil {
		return v, nil
	}

	res, err, _ := loads.Do(flightKey(c, key), func() (any, error) {
		val, ttl, err := load(ctx)
		if err != nil {
			return nil, err
		}
		_ = c.Set(ctx, key, val, ttl)
		return loaded[V]{val: val, ttl: ttl}, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return res.(loaded[V]).val, nil
}

// Forget detaches later GetOrSet calls for key from a load already in
// flight, so they start a fresh one. Call it after invalidating key.
func Forget[V any](c Cache[V], key string) {
	loads.Forget(flightKey(c, key))
}

func flightKey[V any](c Cache[V], key string) string {
	return fmt.Sprintf("%p/%s", c, key)
}
