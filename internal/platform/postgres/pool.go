// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package postgres opens the pgx connection pool shared by every BookWise
// repository and exports its statistics to Prometheus.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/taibuivan/bookwise/internal/platform/constants"
)

const (
	maxConnLifetime   = 60 * time.Minute
	maxConnIdleTime   = 10 * time.Minute
	healthCheckPeriod = 1 * time.Minute
	connectTimeout    = 5 * time.Second
	pingTimeout       = 2 * time.Second

	// applicationName shows up in pg_stat_activity.
	applicationName = "bookwise-api"
)

// Options sizes the pool. Zero values fall back to pgxpool defaults.
type Options struct {
	DSN      string
	MaxConns int32
	MinConns int32
}

// NewPool creates and validates a new PostgreSQL connection pool.
//
// Every physical connection gets a statement timeout equal to the global
// request timeout, so a slow counter recompute cannot outlive its request.
func NewPool(ctx context.Context, options Options, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(options.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres: invalid DSN: %w", err)
	}

	if options.MaxConns > 0 {
		poolConfig.MaxConns = options.MaxConns
	}
	if options.MinConns > 0 {
		poolConfig.MinConns = options.MinConns
	}
	poolConfig.MaxConnLifetime = maxConnLifetime
	poolConfig.MaxConnIdleTime = maxConnIdleTime
	poolConfig.HealthCheckPeriod = healthCheckPeriod
	poolConfig.ConnConfig.ConnectTimeout = connectTimeout
	poolConfig.ConnConfig.RuntimeParams["application_name"] = applicationName

	poolConfig.AfterConnect = func(ctx context.Context, connection *pgx.Conn) error {
		timeoutQuery := fmt.Sprintf("SET statement_timeout = '%ds'", int(constants.GlobalRequestTimeout.Seconds()))
		_, err := connection.Exec(ctx, timeoutQuery)
		return err
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to create pool: %w", err)
	}

	if err := Ping(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	if err := RegisterMetrics(prometheus.DefaultRegisterer, pool); err != nil {
		logger.Warn("postgres_pool_metrics_unavailable", slog.Any("error", err))
	}

	logger.Info("postgres_pool_connected",
		slog.Int("max_conns", int(poolConfig.MaxConns)),
		slog.Int("min_conns", int(poolConfig.MinConns)),
	)

	return pool, nil
}

// Ping verifies that the PostgreSQL connection pool is healthy.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("postgres: ping failed: %w", err)
	}

	return nil
}

// # Pool Metrics

// StatSource is the part of [pgxpool.Pool] the collector reads.
type StatSource interface {
	Stat() *pgxpool.Stat
}

// RegisterMetrics exposes pool gauges on registerer. Registering twice is a no-op.
func RegisterMetrics(registerer prometheus.Registerer, source StatSource) error {
	err := registerer.Register(newPoolCollector(source))

	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		return nil
	}
	return err
}

type poolCollector struct {
	source   StatSource
	total    *prometheus.Desc
	idle     *prometheus.Desc
	acquired *prometheus.Desc
	max      *prometheus.Desc
	waits    *prometheus.Desc
}

func newPoolCollector(source StatSource) *poolCollector {
	describe := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc("bookwise_db_pool_"+name, help, nil, nil)
	}
	return &poolCollector{
		source:   source,
		total:    describe("connections", "Open connections in the pool."),
		idle:     describe("idle_connections", "Idle connections in the pool."),
		acquired: describe("acquired_connections", "Connections currently checked out."),
		max:      describe("max_connections", "Configured pool ceiling."),
		waits:    describe("empty_acquire_total", "Acquires that had to wait for a free connection."),
	}
}

func (collector *poolCollector) Describe(descriptions chan<- *prometheus.Desc) {
	descriptions <- collector.total
	descriptions <- collector.idle
	descriptions <- collector.acquired
	descriptions <- collector.max
	descriptions <- collector.waits
}

func (collector *poolCollector) Collect(metrics chan<- prometheus.Metric) {
	stat := collector.source.Stat()
	metrics <- prometheus.MustNewConstMetric(collector.total, prometheus.GaugeValue, float64(stat.TotalConns()))
	metrics <- prometheus.MustNewConstMetric(collector.idle, prometheus.GaugeValue, float64(stat.IdleConns()))
	metrics <- prometheus.MustNewConstMetric(collector.acquired, prometheus.GaugeValue, float64(stat.AcquiredConns()))
	metrics <- prometheus.MustNewConstMetric(collector.max, prometheus.GaugeValue, float64(stat.MaxConns()))
	metrics <- prometheus.MustNewConstMetric(collector.waits, prometheus.CounterValue, float64(stat.EmptyAcquireCount()))
}
