// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration brings the BookWise schemas (users, catalog, social,
// library) up to date with golang-migrate before any traffic is served.
package migration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// pgx5 driver registers the "pgx5" scheme.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// file source reads data/migrations/*.sql.
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgconn"
)

// RunUp applies every pending up migration found under migrationsPath.
//
// The API server and the admin command both call it, so whichever starts
// first migrates. A dirty version stops startup and needs an operator.
func RunUp(dsn string, migrationsPath string, logger *slog.Logger) error {
	databaseURL, err := migrationURL(dsn)
	if err != nil {
		return err
	}

	migrator, err := migrate.New("file://"+migrationsPath, databaseURL)
	if err != nil {
		return fmt.Errorf("migration: failed to initialize: %w", err)
	}
	defer func() {
		sourceError, dbError := migrator.Close()
		if err := errors.Join(sourceError, dbError); err != nil {
			logger.Error("migration_close_failed", slog.Any("error", err))
		}
	}()

	migrator.Log = &migrateLogger{
		logger:  logger,
		verbose: logger.Enabled(context.Background(), slog.LevelDebug),
	}

	fromVersion, isDirty, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migration: failed to read schema version: %w", err)
	}
	if isDirty {
		return fmt.Errorf("migration: schema version %d is dirty, fix it manually then run `migrate force`", fromVersion)
	}

	err = migrator.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("migration_up_to_date", slog.Uint64("version", uint64(fromVersion)))
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration: up failed: %w", err)
	}

	toVersion, _, _ := migrator.Version()
	logger.Info("migration_applied",
		slog.Uint64("from_version", uint64(fromVersion)),
		slog.Uint64("to_version", uint64(toVersion)),
	)
	return nil
}

// migrationURL turns DATABASE_URL into the pgx5:// URL golang-migrate needs.
// Keyword/value DSNs ("host=db dbname=bookwise") are parsed with pgconn and
// rebuilt, since the migrate driver only accepts URLs.
func migrationURL(dsn string) (string, error) {
	for _, prefix := range []string{"postgres://", "postgresql://", "pgx5://"} {
		if rest, found := strings.CutPrefix(dsn, prefix); found {
			return "pgx5://" + rest, nil
		}
	}

	parsed, err := pgconn.ParseConfig(dsn)
	if err != nil {
		return "", fmt.Errorf("migration: invalid DSN: %w", err)
	}

	rebuilt := url.URL{
		Scheme: "pgx5",
		Host:   net.JoinHostPort(parsed.Host, strconv.Itoa(int(parsed.Port))),
		Path:   "/" + parsed.Database,
	}
	if parsed.User != "" {
		rebuilt.User = url.UserPassword(parsed.User, parsed.Password)
	}
	if parsed.TLSConfig == nil {
		rebuilt.RawQuery = "sslmode=disable"
	}
	return rebuilt.String(), nil
}

// migrateLogger forwards golang-migrate output to slog at debug level.
type migrateLogger struct {
	logger  *slog.Logger
	verbose bool
}

func (adapter *migrateLogger) Printf(format string, args ...any) {
	adapter.logger.Debug("migration_progress", slog.String("detail", strings.TrimSpace(fmt.Sprintf(format, args...))))
}

func (adapter *migrateLogger) Verbose() bool {
	return adapter.verbose
}
