// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookwise/internal/platform/apperr"
)

/*
TestAppError_StatusMapping checks that every constructor carries the status the API contract expects.
*/
func TestAppError_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    *apperr.AppError
		status int
		code   string
	}{
		{"not_found", apperr.NotFound("Book"), http.StatusNotFound, apperr.CodeNotFound},
		{"unauthorized", apperr.Unauthorized("Authentication required"), http.StatusUnauthorized, apperr.CodeUnauthorized},
		{"forbidden", apperr.Forbidden("nope"), http.StatusForbidden, apperr.CodeForbidden},
		{"conflict_is_400", apperr.Conflict("dup"), http.StatusBadRequest, apperr.CodeConflict},
		{"validation", apperr.ValidationError("bad"), http.StatusBadRequest, apperr.CodeValidation},
		{"read_only", apperr.ReadOnly(), http.StatusForbidden, apperr.CodeReadOnly},
		{"internal", apperr.Internal(errors.New("boom")), http.StatusInternalServerError, apperr.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

/*
TestAppError_NotFoundMessage verifies the resource name is part of the client message.
*/
func TestAppError_NotFoundMessage(t *testing.T) {
	assert.Equal(t, "Review not found", apperr.NotFound("Review").Error())
}

/*
TestAppError_As verifies extraction through wrapped chains.
*/
func TestAppError_As(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", apperr.Conflict("You have already reviewed this book"))

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeConflict, ae.Code)
	assert.True(t, apperr.IsAppError(wrapped))
	assert.True(t, apperr.HasCode(wrapped, apperr.CodeConflict))

	assert.Nil(t, apperr.As(errors.New("plain")))
	assert.False(t, apperr.HasCode(errors.New("plain"), apperr.CodeConflict))
}

/*
TestAppError_IsReadOnly verifies that fresh read-only errors match the sentinel.
*/
func TestAppError_IsReadOnly(t *testing.T) {
	assert.ErrorIs(t, apperr.ReadOnly(), apperr.ErrReadOnly)
	assert.NotErrorIs(t, apperr.Forbidden("x"), apperr.ErrReadOnly)
}

/*
TestAppError_InternalHidesCause ensures the cause never leaks into the message.
*/
func TestAppError_InternalHidesCause(t *testing.T) {
	cause := errors.New("pq: relation does not exist")
	err := apperr.Internal(cause)

	assert.NotContains(t, err.Error(), "relation")
	assert.ErrorIs(t, err, cause)
}
