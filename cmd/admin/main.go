// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command admin bootstraps an administrator account.
//
// # Usage
//
//	ADMIN_EMAIL=ops@bookwise.app ADMIN_PASSWORD=... ADMIN_NAME="Ops" go run ./cmd/admin
//
// Re-running with an existing email promotes that account and resets its
// password, so the command is safe to repeat from deployment scripts.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/bookwise/internal/platform/config"
	"github.com/taibuivan/bookwise/internal/platform/constants"
	"github.com/taibuivan/bookwise/internal/platform/gate"
	"github.com/taibuivan/bookwise/internal/platform/migration"
	pgstore "github.com/taibuivan/bookwise/internal/platform/postgres"
	"github.com/taibuivan/bookwise/internal/platform/sec"
	"github.com/taibuivan/bookwise/internal/users/auth"
)

// adminConfig is read on top of the server configuration.
type adminConfig struct {
	Email    string `env:"ADMIN_EMAIL,required,notEmpty"`
	Password string `env:"ADMIN_PASSWORD,required,notEmpty"`
	Name     string `env:"ADMIN_NAME" envDefault:"Administrator"`
}

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(slog.String("app", "bookwise-admin"))

	cfg, err := config.Load()
	must(log, err, "load configuration")

	var admin adminConfig
	must(log, env.Parse(&admin), "load admin credentials")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := pgstore.NewPool(ctx, pgstore.Options{DSN: cfg.DatabaseURL, MaxConns: 2}, log)
	must(log, err, "connect to postgres")
	defer pool.Close()

	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	tokens, err := sec.NewTokenService(cfg.SessionSecret, constants.AuthIssuer)
	must(log, err, "initialize token service")

	users := auth.NewUserRepository(pool)

	// Sessions are never touched by EnsureAdmin.
	service := auth.NewService(users, nil, tokens, gate.New(false, auth.NewIdentity(users), log), cfg.SessionTTL, log)

	user, created, err := service.EnsureAdmin(ctx, auth.AdminInput{
		Email:    admin.Email,
		Password: admin.Password,
		Name:     admin.Name,
	})
	must(log, err, "ensure admin")

	log.Info("admin_ready",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
		slog.Bool("created", created),
	)
}

func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("admin_bootstrap_failed", slog.String("context", context), slog.Any("error", err))
		os.Exit(1)
	}
}
