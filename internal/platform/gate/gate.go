// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package gate guards every entity mutation before any business logic runs.

A mutation passes through the gate in a fixed order:

 1. Read-only check: while the process runs in read-only mode every mutation
    fails with the same READ_ONLY_MODE error, for administrators too.
 2. Identity: the caller must be authenticated.
 3. Authorization: owner, owner-or-admin, or admin-only, depending on the operation.

Services call [Gate.Begin] first and one of the Require* methods once the
target resource has been loaded, so a missing resource reports NotFound and
an existing one reports Forbidden.
*/
package gate

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/bookwise/internal/platform/apperr"
	"github.com/taibuivan/bookwise/internal/platform/ctxutil"
	"github.com/taibuivan/bookwise/internal/platform/metrics"
	"github.com/taibuivan/bookwise/internal/platform/respond"
)

// Identity answers the two questions the gate asks about a caller.
type Identity interface {
	// CurrentUserID returns the authenticated caller, or false when anonymous.
	CurrentUserID(ctx context.Context) (string, bool)

	// IsAdmin looks the flag up on the user row every time it is asked.
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// Gate holds the read-only flag and the identity collaborator.
type Gate struct {
	readOnly bool
	identity Identity
	logger   *slog.Logger
}

// New constructs a [Gate]. readOnly is fixed for the lifetime of the process.
func New(readOnly bool, identity Identity, logger *slog.Logger) *Gate {
	return &Gate{readOnly: readOnly, identity: identity, logger: logger}
}

// ReadOnly reports whether mutations are currently refused.
func (gate *Gate) ReadOnly() bool {
	return gate.readOnly
}

// Writable fails with the read-only error when mutations are disabled.
func (gate *Gate) Writable(ctx context.Context) error {
	if !gate.readOnly {
		return nil
	}

	metrics.ReadOnlyRejections.Inc()
	gate.logger.InfoContext(ctx, "mutation_rejected_read_only",
		slog.String("request_id", ctxutil.GetRequestID(ctx)),
	)
	return apperr.ReadOnly()
}

/*
Begin opens a mutation on behalf of the current caller.

Returns:
  - string: the caller's user ID
  - error: READ_ONLY_MODE when disabled, UNAUTHORIZED when anonymous
*/
func (gate *Gate) Begin(ctx context.Context) (string, error) {
	if err := gate.Writable(ctx); err != nil {
		return "", err
	}

	userID, ok := gate.identity.CurrentUserID(ctx)
	if !ok {
		return "", apperr.Unauthorized("Authentication required")
	}

	return userID, nil
}

// RequireOwner fails with Forbidden unless the caller owns the resource.
func (gate *Gate) RequireOwner(callerID, ownerID, message string) error {
	if callerID != ownerID {
		return apperr.Forbidden(message)
	}
	return nil
}

// RequireAdmin fails with Forbidden unless the caller's user row carries the admin flag.
func (gate *Gate) RequireAdmin(ctx context.Context, callerID string) error {
	isAdmin, err := gate.identity.IsAdmin(ctx, callerID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return apperr.Forbidden("Admin access required")
	}
	return nil
}

// RequireOwnerOrAdmin passes owners without a lookup and falls back to the admin flag.
func (gate *Gate) RequireOwnerOrAdmin(ctx context.Context, callerID, ownerID, message string) error {
	if callerID == ownerID {
		return nil
	}

	isAdmin, err := gate.identity.IsAdmin(ctx, callerID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return apperr.Forbidden(message)
	}
	return nil
}

// Middleware rejects mutating HTTP methods while read-only, before the body
// is decoded, so clients get READ_ONLY_MODE rather than a validation error.
func (gate *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			if err := gate.Writable(request.Context()); err != nil {
				respond.Error(writer, request, err)
				return
			}
		}
		next.ServeHTTP(writer, request)
	})
}
