// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/taibuivan/bookwise/internal/platform/apperr"
)

// # Schema Validation

var (
	engineOnce sync.Once
	engine     *validator.Validate
)

// schemaEngine returns the process-wide validator. validator.Validate caches
// struct metadata and is safe for concurrent use, so one instance is shared.
func schemaEngine() *validator.Validate {
	engineOnce.Do(func() {
		engine = validator.New(validator.WithRequiredStructEnabled())

		// Report violations under the JSON field name the client sent.
		engine.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})

		// notblank rejects strings made only of whitespace.
		_ = engine.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
	return engine
}

// Struct validates payload against its `validate` struct tags.
//
// # Returns
//   - nil when every rule passes.
//   - A VALIDATION_ERROR [apperr.AppError] listing each failing field otherwise.
func Struct(payload any) error {
	err := schemaEngine().Struct(payload)
	if err == nil {
		return nil
	}

	var violations validator.ValidationErrors
	if !errors.As(err, &violations) {
		return apperr.Internal(fmt.Errorf("validate: %w", err))
	}

	details := make([]apperr.FieldError, 0, len(violations))
	for _, violation := range violations {
		details = append(details, apperr.FieldError{
			Field:   fieldPath(violation),
			Message: friendlyMessage(violation),
		})
	}

	return apperr.ValidationError("Validation failed", details...)
}

// fieldPath drops the top-level struct name from the namespace so nested and
// slice elements read as "genres[0]" instead of "createBookInput.genres[0]".
func fieldPath(violation validator.FieldError) string {
	namespace := violation.Namespace()
	if _, rest, found := strings.Cut(namespace, "."); found {
		return rest
	}
	return violation.Field()
}

// friendlyMessage renders a client-facing sentence for a failed tag.
func friendlyMessage(violation validator.FieldError) string {
	isText := violation.Kind() == reflect.String
	isList := violation.Kind() == reflect.Slice

	switch violation.Tag() {
	case "required", "notblank":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "url", "http_url", "eq=|url":
		return "Must be a valid URL"
	case "uuid", "eq=|uuid":
		return "Must be a valid UUID"
	case "oneof":
		return "Must be one of: " + strings.Join(strings.Fields(violation.Param()), ", ")
	case "min":
		if isText {
			return fmt.Sprintf("Minimum %s characters", violation.Param())
		}
		if isList {
			return fmt.Sprintf("Must contain at least %s item(s)", violation.Param())
		}
		return "Must be at least " + violation.Param()
	case "max":
		if isText {
			return fmt.Sprintf("Maximum %s characters", violation.Param())
		}
		if isList {
			return fmt.Sprintf("Must contain at most %s item(s)", violation.Param())
		}
		return "Must be at most " + violation.Param()
	case "gte":
		return "Must be at least " + violation.Param()
	case "lte":
		return "Must be at most " + violation.Param()
	case "excluded_with":
		return "Cannot be combined with " + violation.Param()
	case "required_without":
		return "Either this field or " + violation.Param() + " is required"
	default:
		return "Is invalid"
	}
}
