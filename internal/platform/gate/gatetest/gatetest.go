// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package gatetest provides a [gate.Gate] wired to an in-memory identity for
// service and handler tests.
package gatetest

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/taibuivan/bookwise/internal/platform/ctxutil"
	"github.com/taibuivan/bookwise/internal/platform/gate"
	"github.com/taibuivan/bookwise/internal/platform/sec"
)

// Identity reads the caller from the context like the real resolver does and
// answers IsAdmin from a fixed set.
type Identity struct {
	Admins map[string]bool
}

// CurrentUserID returns the caller stored by [AsUser].
func (identity Identity) CurrentUserID(ctx context.Context) (string, bool) {
	return ctxutil.GetUserID(ctx)
}

// IsAdmin reports membership in Admins.
func (identity Identity) IsAdmin(_ context.Context, userID string) (bool, error) {
	return identity.Admins[userID], nil
}

// New returns a gate whose administrators are the given user IDs.
func New(readOnly bool, admins ...string) *gate.Gate {
	set := make(map[string]bool, len(admins))
	for _, admin := range admins {
		set[admin] = true
	}
	return gate.New(readOnly, Identity{Admins: set}, Logger())
}

// AsUser returns a context authenticated as userID.
func AsUser(ctx context.Context, userID string) context.Context {
	return ctxutil.WithAuthUser(ctx, &sec.AuthClaims{UserID: userID, Username: userID})
}

// Logger discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// UserHeader names the request header read by [Authenticate].
const UserHeader = "X-Test-User"

// Authenticate stands in for the session middleware: a request carrying
// UserHeader is treated as that user, every other request stays anonymous.
func Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if userID := request.Header.Get(UserHeader); userID != "" {
			request = request.WithContext(AsUser(request.Context(), userID))
		}
		next.ServeHTTP(writer, request)
	})
}
