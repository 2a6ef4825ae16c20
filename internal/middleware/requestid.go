package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/ElementAstro/hello-element-astro-launcher-sub001/pkg/logger"
)

type requestIDKey struct{}

// RequestIDHeader is read from the request and echoed on the response.
const RequestIDHeader = "X-Request-ID"

// DefaultRequestIDHeaders are checked in order for an upstream id.
var DefaultRequestIDHeaders = []string{RequestIDHeader, "X-Correlation-ID"}

type RequestIDOption func(*requestIDConfig)

type requestIDConfig struct {
	generate func() string
	headers  []string
}

// WithRequestIDHeaders replaces the headers searched for an existing id.
func WithRequestIDHeaders(headers ...string) RequestIDOption {
	return func(c *requestIDConfig) { c.headers = headers }
}

func WithRequestIDGenerator(fn func() string) RequestIDOption {
	return func(c *requestIDConfig) {
		if fn != nil {
			c.generate = fn
		}
	}
}

// RequestID keeps an upstream id or generates a UUIDv4, stores it in the
// request context and sets X-Request-ID on the response.
func RequestID(opts ...RequestIDOption) func(http.Handler) http.Handler {
	cfg := &requestIDConfig{generate: uuid.NewString, headers: DefaultRequestIDHeaders}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			for _, h := range cfg.headers {
				if v := r.Header.Get(h); v != "" {
					id = v
					break
				}
			}
			if id == "" {
				id = cfg.generate()
			}

			w.Header().Set(RequestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
		})
	}
}

// GetRequestID returns "" outside RequestID.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RequestIDExtractor adds request_id to every log record.
func RequestIDExtractor() logger.Extractor {
	return logger.StringValue(requestIDKey{}, "request_id")
}
