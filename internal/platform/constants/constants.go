// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants holds the fixed values shared by the HTTP stack: server
timeouts, rate limiter defaults, session cookie settings and header names.

Anything an operator may need to tune lives in config instead.
*/
package constants

import "time"

// # Server Timing

const (
	DefaultReadTimeout       = 5 * time.Second
	DefaultWriteTimeout      = 10 * time.Second
	DefaultIdleTimeout       = 120 * time.Second
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout bounds a whole request. Postgres connections use
	// it as their statement timeout too.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long in-flight requests get after SIGTERM.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS and DefaultRateLimitBurst apply per client IP when
	// RATE_LIMIT_RPS / RATE_LIMIT_BURST are unset.
	DefaultRateLimitRPS   = 100.0
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often idle IP buckets are swept.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long an IP must be idle before its bucket is dropped.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the 'iss' claim of bearer tokens.
	AuthIssuer = "bookwise.app"

	// SessionCookieName carries the opaque session token (HttpOnly).
	SessionCookieName = "bookwise_session"

	// SessionCookiePath scopes the session cookie to the API.
	SessionCookiePath = "/api"

	// RedisPrefixSession namespaces session digests in Redis.
	RedisPrefixSession = "auth:session:"
)

// # HTTP Headers

const (
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
)
