// Package server runs the hub's HTTP listener: chi routing, health probes
// and graceful shutdown with ordered hooks.
package server

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ElementAstro/hello-element-astro-launcher-sub001/pkg/health"
)

const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20

	LivenessPath  = "/health/live"
	ReadinessPath = "/health/ready"
)

// Routes registers handlers on the router. internal/handlers implements it.
type Routes interface {
	Routes(r chi.Router)
}

// Server is configured once by New and is not safe to reconfigure.
type Server struct {
	baseCtx context.Context
	logger  *slog.Logger

	http        *http.Server
	router      chi.Router
	middlewares []func(http.Handler) http.Handler
	routes      []Routes
	notFound    http.HandlerFunc
	checks      health.Checks

	shutdownTimeout time.Duration
	shutdownHooks   []func(ctx context.Context) error

	mu       sync.Mutex
	listener net.Listener
	ready    chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	setup    sync.Once
}

// New builds a server.
//
//	srv := server.New(
//		server.WithAddress(cfg.Addr),
//		server.WithLogger(log),
//		server.WithMiddleware(middleware.RequestID(), middleware.Logger(log)),
//		server.WithRoutes(handlers.NewTranslations(svc, log)),
//		server.WithShutdownHook(db.Shutdown(pool)),
//	)
func New(opts ...Option) *Server {
	router := chi.NewRouter()
	s := &Server{
		baseCtx:         context.Background(),
		logger:          slog.New(slog.DiscardHandler),
		router:          router,
		shutdownTimeout: 30 * time.Second,
		ready:           make(chan struct{}),
		done:            make(chan struct{}),
		http: &http.Server{
			Addr:              ":8080",
			Handler:           router,
			ReadTimeout:       defaultReadTimeout,
			WriteTimeout:      defaultWriteTimeout,
			IdleTimeout:       defaultIdleTimeout,
			ReadHeaderTimeout: defaultReadHeaderTimeout,
			MaxHeaderBytes:    defaultMaxHeaderBytes,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the fully wired router. Useful with httptest.
func (s *Server) Handler() http.Handler {
	s.setup.Do(s.setupRoutes)
	return s.router
}

// Addr is the bound address once Ready is closed, "" before.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Ready is closed once the listener is bound.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

func (s *Server) setupRoutes() {
	// chi requires middlewares before any route.
	s.router.Use(s.middlewares...)

	if s.notFound != nil {
		s.router.NotFound(s.notFound)
	}

	s.router.Get(LivenessPath, health.LivenessHandler())
	s.router.Get(ReadinessPath, health.ReadinessHandler(s.checks, health.WithLogger(s.logger)))

	for _, r := range s.routes {
		r.Routes(s.router)
	}
}
