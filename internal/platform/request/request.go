// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil reads route parameters, query strings and JSON bodies for
the BookWise handlers.

Handlers never touch chi or encoding/json directly; malformed input always
surfaces as a VALIDATION_ERROR so clients see one error shape.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/bookwise/internal/platform/apperr"
	"github.com/taibuivan/bookwise/internal/platform/ctxutil"
	"github.com/taibuivan/bookwise/internal/platform/validate"
)

// MaxBodyBytes caps JSON payloads. The largest legitimate body is a review
// with long pros and cons lists, well under this.
const MaxBodyBytes = 1 << 20

// errBodyTooLarge is returned when the body exceeds [MaxBodyBytes].
var errBodyTooLarge = apperr.ValidationError("Request body too large")

/*
DecodeJSON decodes exactly one JSON value from the body into target.

Unknown fields are ignored so clients may send whole objects back on PATCH.

Returns:
  - error: validate.ErrInvalidJSON for empty, malformed or trailing input;
    a validation error when the body exceeds MaxBodyBytes
*/
func DecodeJSON(request *http.Request, target any) error {
	if request.Body == nil || request.Body == http.NoBody {
		return validate.ErrInvalidJSON
	}

	decoder := json.NewDecoder(http.MaxBytesReader(nil, request.Body, MaxBodyBytes))
	if err := decoder.Decode(target); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errBodyTooLarge
		}
		return validate.ErrInvalidJSON
	}

	// A second value means the client concatenated payloads.
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return validate.ErrInvalidJSON
	}
	return nil
}

// ID returns the {id} route parameter.
func ID(request *http.Request) string {
	return chi.URLParam(request, "id")
}

// Query returns the trimmed value of a query-string parameter.
func Query(request *http.Request, name string) string {
	return strings.TrimSpace(request.URL.Query().Get(name))
}

// QueryInt parses an integer query parameter, returning fallback when it is
// absent or not a number. Range checks belong to the service.
func QueryInt(request *http.Request, name string, fallback int) int {
	value, err := strconv.Atoi(Query(request, name))
	if err != nil {
		return fallback
	}
	return value
}

/*
RequiredUserID returns the ID of the authenticated caller.

Returns:
  - string: User UUID
  - error: apperr.Unauthorized if not authenticated
*/
func RequiredUserID(request *http.Request) (string, error) {
	userID, ok := ctxutil.GetUserID(request.Context())
	if !ok {
		return "", apperr.Unauthorized("Authentication required")
	}
	return userID, nil
}
