// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil stores per-request values (request ID, logger, caller) in a
// [context.Context] under unexported keys, so no other package can collide
// with or overwrite them.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/bookwise/internal/platform/sec"
)

type contextKey int

const (
	requestIDKey contextKey = iota
	loggerKey
	callerKey
	recordKey
)

// # Request Tracing

// WithRequestID attaches the X-Request-ID correlation value.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID returns the correlation value, or "" outside a request.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// # Structured Logging

// WithLogger attaches the request-scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger returns the request-scoped logger, falling back to [slog.Default].
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// # Caller Identity

// WithAuthUser attaches the caller resolved from a bearer token or session
// cookie, and notes it on the enclosing [Record] if there is one.
func WithAuthUser(ctx context.Context, claims *sec.AuthClaims) context.Context {
	if record := GetRecord(ctx); record != nil && claims != nil {
		record.UserID = claims.UserID
	}
	return context.WithValue(ctx, callerKey, claims)
}

// GetAuthUser returns the caller's claims, or nil for anonymous requests.
func GetAuthUser(ctx context.Context) *sec.AuthClaims {
	claims, _ := ctx.Value(callerKey).(*sec.AuthClaims)
	return claims
}

// GetUserID returns the caller's ID, or false for anonymous requests.
func GetUserID(ctx context.Context) (string, bool) {
	claims := GetAuthUser(ctx)
	if claims == nil || claims.UserID == "" {
		return "", false
	}
	return claims.UserID, true
}

// # Request Record

// Record collects facts learned deeper in the chain that outer middleware
// reports once the handler returns. It is not safe for concurrent use.
type Record struct {
	UserID string
}

// WithRecord attaches an empty [Record] and returns it.
func WithRecord(ctx context.Context) (context.Context, *Record) {
	record := &Record{}
	return context.WithValue(ctx, recordKey, record), record
}

// GetRecord returns the enclosing [Record], or nil.
func GetRecord(ctx context.Context) *Record {
	record, _ := ctx.Value(recordKey).(*Record)
	return record
}
