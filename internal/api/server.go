// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/bookwise/internal/core/book"
	"github.com/taibuivan/bookwise/internal/core/comment"
	"github.com/taibuivan/bookwise/internal/core/discussion"
	"github.com/taibuivan/bookwise/internal/core/like"
	"github.com/taibuivan/bookwise/internal/core/readinglist"
	"github.com/taibuivan/bookwise/internal/core/review"
	"github.com/taibuivan/bookwise/internal/core/search"
	"github.com/taibuivan/bookwise/internal/platform/config"
	"github.com/taibuivan/bookwise/internal/platform/constants"
	"github.com/taibuivan/bookwise/internal/platform/gate"
	"github.com/taibuivan/bookwise/internal/platform/metrics"
	"github.com/taibuivan/bookwise/internal/platform/middleware"
	"github.com/taibuivan/bookwise/internal/users/account"
	"github.com/taibuivan/bookwise/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler. Always 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. 200 only when Postgres and Redis answer.
	Readiness http.HandlerFunc

	Auth        *auth.Handler
	Books       *book.Handler
	Reviews     *review.Handler
	Discussions *discussion.Handler
	Comments    *comment.Handler
	ReadingList *readinglist.Handler
	Likes       *like.Handler
	Search      *search.Handler
	Users       *account.Handler
}

// Dependencies carries the cross-cutting collaborators the middleware chain needs.
type Dependencies struct {
	Verifier middleware.TokenVerifier
	Sessions middleware.SessionResolver
	Gate     *gate.Gate
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, deps Dependencies, h Handlers) *Server {
	router := NewRouter(context, cfg, log, deps, h)

	return &Server{
		router: router,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           router,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// NewRouter builds the routing tree without binding a listener, so tests can
// drive it through httptest.
func NewRouter(context context.Context, cfg *config.Config, log *slog.Logger, deps Dependencies, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	requestsPerSecond, burst := rateLimit(cfg)

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.TrustProxy(cfg.TrustProxyHeaders))
	r.Use(middleware.StructuredLogger(log))
	r.Use(metrics.Middleware)
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.RateLimit(context, requestsPerSecond, burst))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(deps.Verifier, deps.Sessions))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated probes for container orchestration and scraping.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	r.Handle("/metrics", metrics.Handler())

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {

		// Login and logout stay reachable in read-only mode; signup is refused
		// by the auth service itself.
		api.Mount("/auth", h.Auth.Routes())

		api.Group(func(domain chi.Router) {
			domain.Use(deps.Gate.Middleware)

			domain.Mount("/books", h.Books.Routes())
			domain.Mount("/reviews", h.Reviews.Routes())
			domain.Mount("/discussions", h.Discussions.Routes())
			domain.Mount("/comments", h.Comments.Routes())
			domain.Mount("/reading-list", h.ReadingList.Routes())
			domain.Mount("/likes", h.Likes.Routes())
			domain.Mount("/search", h.Search.Routes())
			domain.Mount("/users", h.Users.Routes())
		})
	})

	return r
}

// rateLimit falls back to the built-in defaults for unset or non-positive values.
func rateLimit(cfg *config.Config) (float64, int) {
	requestsPerSecond, burst := cfg.RateLimitRPS, cfg.RateLimitBurst
	if requestsPerSecond <= 0 {
		requestsPerSecond = constants.DefaultRateLimitRPS
	}
	if burst <= 0 {
		burst = constants.DefaultRateLimitBurst
	}
	return requestsPerSecond, burst
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
