// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/taibuivan/bookwise/internal/platform/apperr"
	"github.com/taibuivan/bookwise/internal/platform/ctxutil"
	"github.com/taibuivan/bookwise/internal/platform/respond"
)

// PanicRecovery converts a handler panic into a 500 INTERNAL_ERROR and logs
// the stack. http.ErrAbortHandler is re-raised so net/http can drop the
// connection quietly.
func PanicRecovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				if err, ok := recovered.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(recovered)
				}

				logger.ErrorContext(request.Context(), "panic_recovered",
					slog.String("request_id", ctxutil.GetRequestID(request.Context())),
					slog.String("path", request.URL.Path),
					slog.Any("panic", recovered),
					slog.String("stack", string(debug.Stack())),
				)

				internal := apperr.Internal(fmt.Errorf("panic: %v", recovered))
				respond.JSON(writer, internal.HTTPStatus, respond.ErrorEnvelope{
					Error: internal.Message,
					Code:  internal.Code,
				})
			}()

			next.ServeHTTP(writer, request)
		})
	}
}
