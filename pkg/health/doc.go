// Package health serves liveness and readiness probes for the hub.
//
// [LivenessHandler] always answers 200. [ReadinessHandler] runs a set of
// named [Checks] in parallel under one timeout and answers 503 if any of
// them fails. The probes accept the Healthcheck closures from pkg/db and
// pkg/redis directly:
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//		"postgres": db.Healthcheck(pool),
//		"redis":    redis.Healthcheck(client),
//	}, health.WithLogger(log)))
//
// Responses are plain text unless the client asks for JSON with
// ?format=json or an Accept: application/json header.
package health
