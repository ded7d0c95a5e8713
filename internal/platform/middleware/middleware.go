// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package middleware holds the HTTP chain every BookWise request passes through.

Order, outermost first (see api.NewRouter):

  - RequestID tags each request with a correlation ID.
  - TrustProxy takes the client address from proxy headers, when configured.
  - StructuredLogger gives each request a scoped logger.
  - CORS admits the configured web origins with credentials, so rejections
    further down still carry CORS headers.
  - RateLimit sheds abusive clients before any database work.
  - PanicRecovery turns handler panics into the standard 500 envelope.
  - Authenticate resolves the caller from a bearer token or session cookie.
*/
package middleware

import (
	"net"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/taibuivan/bookwise/internal/platform/constants"
	"github.com/taibuivan/bookwise/internal/platform/ctxutil"
)

// maxRequestIDLength bounds client-supplied correlation IDs before they
// reach the logs.
const maxRequestIDLength = 64

// RequestID tags the request with the client's X-Request-ID when it looks
// sane, or a fresh UUIDv7 otherwise, and echoes it on the response.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			requestID := request.Header.Get(constants.HeaderXRequestID)
			if !usableRequestID(requestID) {
				requestID = newRequestID()
			}

			writer.Header().Set(constants.HeaderXRequestID, requestID)
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithRequestID(request.Context(), requestID)))
		})
	}
}

func usableRequestID(value string) bool {
	if value == "" || len(value) > maxRequestIDLength {
		return false
	}
	for _, r := range value {
		if r < '!' || r > '~' {
			return false
		}
	}
	return true
}

func newRequestID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

// AppConfig exposes the origins allowed by [CORS].
type AppConfig interface {
	AllowedOrigins() []string
}

// CORS admits the configured origins. Credentials are allowed so browsers
// send the session cookie, hence origins are never wildcarded.
func CORS(cfg AppConfig) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins(),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", constants.HeaderAuthorization, constants.HeaderXRequestID},
		ExposedHeaders:   []string{constants.HeaderXRequestID, "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

// TrustProxy rewrites RemoteAddr from True-Client-IP, X-Real-IP or the first
// X-Forwarded-For hop when trusted is set. Otherwise those headers are
// ignored, since any client can send them.
func TrustProxy(trusted bool) func(http.Handler) http.Handler {
	if !trusted {
		return func(next http.Handler) http.Handler { return next }
	}
	return chimw.RealIP
}

// ClientIP is the address used for rate limiting and access logs: the socket
// peer, as rewritten by [TrustProxy].
func ClientIP(request *http.Request) string {
	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}
