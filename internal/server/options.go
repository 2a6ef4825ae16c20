package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/ElementAstro/hello-element-astro-launcher-sub001/pkg/health"
)

type Option func(*Server)

// WithContext sets the parent of the signal context used by Run.
func WithContext(ctx context.Context) Option {
	return func(s *Server) {
		if ctx != nil {
			s.baseCtx = ctx
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithAddress sets the listen address. Default: ":8080".
func WithAddress(addr string) Option {
	return func(s *Server) {
		if addr != "" {
			s.http.Addr = addr
		}
	}
}

// WithTimeouts overrides read, write and idle timeouts. Zero values keep
// the defaults.
func WithTimeouts(read, write, idle time.Duration) Option {
	return func(s *Server) {
		if read > 0 {
			s.http.ReadTimeout = read
		}
		if write > 0 {
			s.http.WriteTimeout = write
		}
		if idle > 0 {
			s.http.IdleTimeout = idle
		}
	}
}

// WithMiddleware appends router-wide middleware, applied in order.
func WithMiddleware(mw ...func(http.Handler) http.Handler) Option {
	return func(s *Server) {
		s.middlewares = append(s.middlewares, mw...)
	}
}

func WithRoutes(r ...Routes) Option {
	return func(s *Server) {
		s.routes = append(s.routes, r...)
	}
}

func WithNotFoundHandler(h http.HandlerFunc) Option {
	return func(s *Server) {
		s.notFound = h
	}
}

// WithReadinessCheck adds a named check to /health/ready.
func WithReadinessCheck(name string, fn health.CheckFunc) Option {
	return func(s *Server) {
		if fn == nil {
			return
		}
		if s.checks == nil {
			s.checks = make(health.Checks)
		}
		s.checks[name] = fn
	}
}

// WithShutdownTimeout bounds server drain plus hooks. Default: 30s.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}

// WithShutdownHook registers cleanup run after the listener drains, in
// registration order.
//
//	server.WithShutdownHook(redis.Shutdown(client))
func WithShutdownHook(fn func(context.Context) error) Option {
	return func(s *Server) {
		if fn != nil {
			s.shutdownHooks = append(s.shutdownHooks, fn)
		}
	}
}
