package middleware

import (
	"context"
	"net/http"
	"time"
)

const DefaultTimeout = 30 * time.Second

// Timeout puts a deadline on the request context. Handlers observe it
// through ctx; the store and cache calls they make are cancelled with it.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	if d <= 0 {
		d = DefaultTimeout
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
