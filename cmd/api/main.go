// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the BookWise HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/bookwise/internal/api"
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
	"github.com/taibuivan/bookwise/internal/platform/migration"
	pgstore "github.com/taibuivan/bookwise/internal/platform/postgres"
	redisstore "github.com/taibuivan/bookwise/internal/platform/redis"
	"github.com/taibuivan/bookwise/internal/platform/sec"
	"github.com/taibuivan/bookwise/internal/users/account"
	"github.com/taibuivan/bookwise/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String("app", "bookwise"))
	slog.SetDefault(log)

	log.Info("[BookWise] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "bookwise"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("read_only", cfg.ReadOnly),
	)

	// Startup deadline so misconfiguration fails fast instead of hanging.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, pgstore.Options{
		DSN:      cfg.DatabaseURL,
		MaxConns: cfg.DatabaseMaxConns,
		MinConns: cfg.DatabaseMinConns,
	}, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, redisstore.Options{
		URL:      cfg.RedisURL,
		PoolSize: cfg.RedisPoolSize,
	}, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Identity and Gate ──────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.SessionSecret, constants.AuthIssuer)
	must(log, err, "initialize token service")

	userRepository := auth.NewUserRepository(pool)
	sessionRepository := auth.NewSessionRepository(rdb)
	mutationGate := gate.New(cfg.ReadOnly, auth.NewIdentity(userRepository), log)

	if cfg.ReadOnly {
		log.Warn("read_only_mode_enabled")
	}

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers([]api.Probe{
		{Name: "postgres", Check: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) }},
		{Name: "redis", Check: func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	authService := auth.NewService(userRepository, sessionRepository, tokens, mutationGate, cfg.SessionTTL, log)

	bookService := book.NewService(book.NewPostgresRepository(pool), mutationGate, log)
	reviewService := review.NewService(review.NewPostgresRepository(pool), bookService, mutationGate, log)
	discussionService := discussion.NewService(discussion.NewPostgresRepository(pool), bookService, mutationGate, log)
	commentService := comment.NewService(comment.NewPostgresRepository(pool), discussionService, mutationGate, log)
	readingListService := readinglist.NewService(readinglist.NewPostgresRepository(pool), bookService, mutationGate, log)
	likeService := like.NewService(like.NewPostgresRepository(pool), mutationGate, log)
	searchService := search.NewService(search.NewPostgresRepository(pool), log)
	accountService := account.NewService(userRepository, account.NewActivityRepository(pool), mutationGate, log)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:    liveness,
		Readiness:   readiness,
		Auth:        auth.NewHandler(authService, cfg.CookieSecure),
		Books:       book.NewHandler(bookService),
		Reviews:     review.NewHandler(reviewService),
		Discussions: discussion.NewHandler(discussionService),
		Comments:    comment.NewHandler(commentService),
		ReadingList: readinglist.NewHandler(readingListService),
		Likes:       like.NewHandler(likeService),
		Search:      search.NewHandler(searchService),
		Users:       account.NewHandler(accountService),
	}

	// The root context stops background middleware workers on shutdown.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	server := api.NewServer(rootCtx, cfg, log, api.Dependencies{
		Verifier: tokens,
		Sessions: authService,
		Gate:     mutationGate,
	}, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// Only used for startup wiring. After startup, errors are returned and handled.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
