// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/bookwise/internal/platform/apperr"
)

// PostgreSQL SQLSTATE codes that carry client-relevant meaning.
const (
	sqlStateUniqueViolation     = "23505"
	sqlStateForeignKeyViolation = "23503"
	sqlStateCheckViolation      = "23514"
	sqlStateInvalidText         = "22P02"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// Errors that are already [apperr.AppError] pass through untouched so that
// repositories can return domain-specific messages from inside transactions.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if apperr.IsAppError(err) {
		return err
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. Constraint violations
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case sqlStateUniqueViolation:
			return apperr.Conflict("Resource already exists")
		case sqlStateForeignKeyViolation:
			return apperr.NotFound("Referenced resource")
		case sqlStateCheckViolation:
			return apperr.ValidationError("Value violates a data constraint")
		case sqlStateInvalidText:
			return apperr.ValidationError("Malformed identifier or value")
		}
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}

// WrapAs behaves like [Wrap] but names the resource when the row is missing,
// so clients read "Book not found" instead of "Resource not found".
func WrapAs(err error, resource, action string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}
	return Wrap(err, action)
}

// IsNoRows reports whether err means the query matched nothing.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsUniqueViolation reports whether err was raised by a UNIQUE constraint.
// When constraint is non-empty the constraint name must match as well.
func IsUniqueViolation(err error, constraint string) bool {
	var pgError *pgconn.PgError
	if !errors.As(err, &pgError) || pgError.Code != sqlStateUniqueViolation {
		return false
	}
	return constraint == "" || pgError.ConstraintName == constraint
}
