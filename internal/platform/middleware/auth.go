// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/taibuivan/bookwise/internal/platform/apperr"
	"github.com/taibuivan/bookwise/internal/platform/constants"
	"github.com/taibuivan/bookwise/internal/platform/ctxutil"
	"github.com/taibuivan/bookwise/internal/platform/respond"
	"github.com/taibuivan/bookwise/internal/platform/sec"
)

// TokenVerifier checks a bearer token and returns its claims.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// SessionResolver turns an opaque session cookie value into a caller identity.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*sec.AuthClaims, error)
}

// Authenticate resolves the caller identity and stores it in the request context.
//
// # Flow
//  1. 'Authorization: Bearer <token>' is verified via [TokenVerifier]. A bad
//     bearer token is rejected with 401 because the client asked to be trusted.
//  2. Otherwise the session cookie is resolved via [SessionResolver]. Unknown
//     or expired sessions fall through as anonymous.
//  3. No credentials at all: the request proceeds as anonymous.
//
// Handlers decide later whether anonymity is acceptable.
func Authenticate(verifier TokenVerifier, sessions SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Bearer Token ───────────────────────────────────────────────
			if authHeader := request.Header.Get(constants.HeaderAuthorization); authHeader != "" {
				scheme, token, found := strings.Cut(authHeader, " ")
				if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
					respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
					return
				}

				claims, err := verifier.VerifyToken(token)
				if errors.Is(err, sec.ErrTokenExpired) {
					respond.Error(writer, request, apperr.Unauthorized("Token expired"))
					return
				}
				if err != nil {
					respond.Error(writer, request, apperr.Unauthorized("Invalid token"))
					return
				}

				next.ServeHTTP(writer, request.WithContext(ctxutil.WithAuthUser(request.Context(), claims)))
				return
			}

			// ── 2. Session Cookie ─────────────────────────────────────────────
			if cookie, err := request.Cookie(constants.SessionCookieName); err == nil && cookie.Value != "" {
				claims, err := sessions.ResolveSession(request.Context(), cookie.Value)
				if err == nil && claims != nil {
					next.ServeHTTP(writer, request.WithContext(ctxutil.WithAuthUser(request.Context(), claims)))
					return
				}

				// Infrastructure failures are logged but never block anonymous reads.
				if err != nil && !apperr.HasCode(err, apperr.CodeNotFound) {
					ctxutil.GetLogger(request.Context()).WarnContext(request.Context(), "session_resolve_failed", "error", err)
				}
			}

			// ── 3. Anonymous Access ───────────────────────────────────────────
			next.ServeHTTP(writer, request)
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if _, ok := ctxutil.GetUserID(request.Context()); !ok {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
