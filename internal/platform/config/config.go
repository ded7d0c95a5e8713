// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config reads the BookWise runtime settings from the environment.

Every knob is an env var with a default except DATABASE_URL, REDIS_URL and
SESSION_SECRET. [Load] runs once in main and the result is passed down by
pointer; nothing re-reads the environment afterwards.
*/
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Environments accepted in ENVIRONMENT.
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Config is the parsed environment.
type Config struct {
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// ReadOnly rejects every mutating request when set. It is read once at
	// startup and handed to the gate; flipping it needs a restart.
	ReadOnly bool `env:"ENABLE_READ_ONLY_MODE" envDefault:"false"`

	DatabaseURL      string `env:"DATABASE_URL,required,notEmpty"`
	DatabaseMaxConns int32  `env:"DATABASE_MAX_CONNS" envDefault:"25"`
	DatabaseMinConns int32  `env:"DATABASE_MIN_CONNS" envDefault:"5"`

	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Sessions live in Redis.
	RedisURL      string `env:"REDIS_URL,required,notEmpty"`
	RedisPoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"10"`

	SessionSecret string        `env:"SESSION_SECRET,required,notEmpty"`
	SessionTTL    time.Duration `env:"SESSION_TTL"    envDefault:"720h"`
	CookieSecure  bool          `env:"COOKIE_SECURE"  envDefault:"true"`

	// Per-IP rate limiting
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"   envDefault:"100"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"150"`

	// TrustProxyHeaders takes the client address from X-Real-IP or
	// X-Forwarded-For. Enable only behind a proxy that overwrites them.
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS" envDefault:"false"`

	// ExtraOrigins are appended to the built-in CORS origins.
	ExtraOrigins []string `env:"EXTRA_ORIGINS" envSeparator:","`
}

// Load parses and checks the environment. Production refuses to run with
// COOKIE_SECURE=false.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	switch cfg.Environment {
	case EnvDevelopment, EnvStaging, EnvProduction:
	default:
		return nil, fmt.Errorf("config: unknown ENVIRONMENT %q", cfg.Environment)
	}
	if cfg.IsProduction() && !cfg.CookieSecure {
		return nil, errors.New("config: COOKIE_SECURE must be true in production")
	}
	if cfg.DatabaseMaxConns < 1 || cfg.DatabaseMinConns < 0 || cfg.DatabaseMinConns > cfg.DatabaseMaxConns {
		return nil, fmt.Errorf("config: DATABASE_MIN_CONNS (%d) must be between 0 and DATABASE_MAX_CONNS (%d)",
			cfg.DatabaseMinConns, cfg.DatabaseMaxConns)
	}
	if cfg.RedisPoolSize < 1 {
		return nil, fmt.Errorf("config: REDIS_POOL_SIZE must be positive, got %d", cfg.RedisPoolSize)
	}

	return cfg, nil
}

func (c *Config) IsDevelopment() bool { return c.Environment == EnvDevelopment }

func (c *Config) IsProduction() bool { return c.Environment == EnvProduction }

// AllowedOrigins lists the origins accepted by the CORS middleware.
// Development additionally accepts any local port.
func (c *Config) AllowedOrigins() []string {
	origins := []string{"https://bookwise.app", "https://*.bookwise.app"}
	if c.IsDevelopment() {
		origins = append(origins, "http://localhost:*", "http://127.0.0.1:*")
	}

	for _, origin := range c.ExtraOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
