// Package redis opens the optional Redis connection the hub uses to share
// cached translation payloads between instances.
//
// [Open] accepts redis:// and rediss:// URLs and retries the initial PING
// with a linearly growing wait. [Healthcheck] plugs into pkg/health and
// [Shutdown] into the server's shutdown hooks:
//
//	client, err := redis.Open(ctx, cfg.RedisURL, redis.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	checks := health.Checks{"redis": redis.Healthcheck(client)}
//	srv := server.New(server.WithShutdownHook(redis.Shutdown(client)))
package redis
