// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis opens the client behind the session store.

Sessions are the only Redis data BookWise keeps: opaque token digests mapped to
user IDs with a TTL. Losing Redis logs every cookie user out but leaves bearer
tokens and all catalogue data untouched, which is why readiness reports it as a
separate dependency.
*/
package redis

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	dialTimeout  = 3 * time.Second
	readTimeout  = 2 * time.Second
	writeTimeout = 2 * time.Second
	pingTimeout  = 2 * time.Second

	clientName = "bookwise-api"
)

// Options configures the client. PoolSize zero keeps the go-redis default.
type Options struct {
	URL      string
	PoolSize int
}

// NewClient parses options.URL and returns a client that has answered a ping.
func NewClient(context stdctx.Context, options Options, logger *slog.Logger) (*redis.Client, error) {
	clientOptions, err := redis.ParseURL(options.URL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	if options.PoolSize > 0 {
		clientOptions.PoolSize = options.PoolSize
		clientOptions.MinIdleConns = max(1, options.PoolSize/5)
		clientOptions.MaxIdleConns = max(1, options.PoolSize/2)
	}
	clientOptions.ClientName = clientName
	clientOptions.DialTimeout = dialTimeout
	clientOptions.ReadTimeout = readTimeout
	clientOptions.WriteTimeout = writeTimeout

	client := redis.NewClient(clientOptions)

	if err := Ping(context, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_client_connected",
		slog.String("addr", clientOptions.Addr),
		slog.Int("db", clientOptions.DB),
		slog.Int("pool_size", clientOptions.PoolSize),
	)

	return client, nil
}

// Ping verifies that the Redis client is healthy.
func Ping(context stdctx.Context, client *redis.Client) error {
	pingCtx, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}

	return nil
}
