// Package cache stores rendered translation payloads between requests.
//
// Two backends implement [Cache]: [Memory] for a single hub process and
// [Redis] for hubs that share a Redis instance. The hub caches the encoded
// dictionary of each locale and drops the entry when an override changes.
//
//	c := cache.NewMemory[[]byte](cache.WithTTL(10 * time.Minute))
//	defer c.Close()
//
//	body, err := cache.GetOrSet(ctx, c, "en", func(ctx context.Context) ([]byte, time.Duration, error) {
//		data, err := render(ctx, "en")
//		return data, 0, err
//	})
//
// With Redis the client comes from pkg/redis and values pass through a
// [Marshaler]. [Raw] keeps byte slices untouched, [JSON] (the default)
// encodes with github.com/goccy/go-json:
//
//	c := cache.NewRedis[[]byte](client, cache.Raw{}, cache.WithPrefix("translations"))
//
// TTL passed to Set: positive expires after the duration, zero uses the
// configured default (1 hour unless WithTTL is given), negative never expires.
//
// [GetOrSet] collapses concurrent misses for the same key into one load.
package cache
