// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate turns request payloads into field-level violations before
// a single [apperr.AppError] is returned.
//
// # Architecture
//
// [Struct] checks a payload against the validate tags of its schema type.
// The chainable [Validator] covers what tags cannot express: query filters,
// rules that depend on the clock, and rules that depend on loaded rows (a
// reply's parent, a like's target). Both produce the same VALIDATION_ERROR
// shape and are used in the service layer only.
package validate

import (
	"fmt"
	"slices"
	"strings"

	"github.com/taibuivan/bookwise/internal/platform/apperr"
	"github.com/taibuivan/bookwise/pkg/uuid"
)

// ErrInvalidJSON is returned when the request body cannot be decoded.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

// Validator collects field-level violations through a chainable API.
//
// A Validator is not safe for concurrent use; create one per operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "This field is required")
	}
	return v
}

// UUID fails unless value is a canonical UUID. Filters pass through here so a
// malformed ?bookId= reads as a client error instead of a driver error.
func (v *Validator) UUID(field, value string) *Validator {
	if !uuid.Valid(value) {
		v.add(field, "Must be a valid UUID")
	}
	return v
}

// OneOf fails if value is not in allowed.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	if !slices.Contains(allowed, value) {
		v.add(field, fmt.Sprintf("Must be one of: %s", strings.Join(allowed, ", ")))
	}
	return v
}

// Custom adds message for field when failed is true.
//
//	v.Custom("publishedYear", year > nextYear, "Cannot be in the future")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Merge appends the field errors carried by err, typically the result of [Struct].
// Non-validation errors are ignored.
func (v *Validator) Merge(err error) *Validator {
	if appError := apperr.As(err); appError != nil && appError.Code == apperr.CodeValidation {
		v.errs = append(v.errs, appError.Details...)
	}
	return v
}

// Err returns a VALIDATION_ERROR listing every violation, or nil.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// RequiredError builds a single-field validation error.
func RequiredError(field, message string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{
		Field:   field,
		Message: message,
	})
}
