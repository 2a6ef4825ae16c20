// Package middleware holds the hub's chi-compatible HTTP middleware.
//
// The usual order is:
//
//	server.WithMiddleware(
//		middleware.RequestID(),
//		middleware.Logger(log),
//		middleware.Locale(svc, log),
//		middleware.Recover(log),
//		middleware.Timeout(10*time.Second),
//	)
//
// Locale runs before Recover so panic responses are translated too.
package middleware
