package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/oggyb/lessons-api/internal/middleware"
	routes "github.com/oggyb/lessons-api/internal/router"
)

// Server owns the underlying http.Server instance.
type Server struct {
	http *http.Server
}

// New creates a new HTTP server bound to the given address and configured
// with the provided application dependencies and middleware chain.
// obs may be nil to disable request metrics.
func New(addr string, deps routes.AppDeps, log *zap.Logger, obs middleware.RequestObserver) *Server {
	return &Server{
		http: &http.Server{
			Addr:              addr,
			Handler:           NewHandler(deps, log, obs),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// NewHandler builds the root router with its middleware stack.
func NewHandler(deps routes.AppDeps, log *zap.Logger, obs middleware.RequestObserver) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(log))
	if obs != nil {
		r.Use(middleware.Metrics(obs))
	}
	r.Use(middleware.Recoverer(log))

	routes.Register(r, deps)
	return r
}

// Start runs the HTTP server and blocks until ListenAndServe returns.
func (s *Server) Start() error {
	return s.http.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server, waiting for in-flight
// requests to complete until the given context expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
