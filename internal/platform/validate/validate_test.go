// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookwise/internal/platform/apperr"
	"github.com/taibuivan/bookwise/internal/platform/validate"
)

/*
TestValidator_Rules exercises each chained rule on passing and failing input.
*/
func TestValidator_Rules(t *testing.T) {
	tests := []struct {
		name  string
		apply func(v *validate.Validator)
		field string
	}{
		{"required_blank", func(v *validate.Validator) { v.Required("q", "   ") }, "q"},
		{"uuid_malformed", func(v *validate.Validator) { v.UUID("bookId", "not-a-uuid") }, "bookId"},
		{"uuid_truncated", func(v *validate.Validator) { v.UUID("bookId", "0190a0c4-0000-7000-8000-00000000000") }, "bookId"},
		{"oneof_unknown", func(v *validate.Validator) { v.OneOf("type", "authors", "all", "books") }, "type"},
		{"custom_failed", func(v *validate.Validator) { v.Custom("parentId", true, "Replies cannot be nested") }, "parentId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			tt.apply(v)

			appError := apperr.As(v.Err())
			require.NotNil(t, appError)
			require.Len(t, appError.Details, 1)
			assert.Equal(t, tt.field, appError.Details[0].Field)
		})
	}
}

/*
TestValidator_Passing returns nil when every rule holds.
*/
func TestValidator_Passing(t *testing.T) {
	err := (&validate.Validator{}).
		Required("q", "atomic").
		UUID("bookId", "0190a0c4-0000-7000-8000-00000000000b").
		OneOf("type", "books", "all", "books", "discussions", "users").
		Custom("parentId", false, "unused").
		Err()

	assert.NoError(t, err)
}

/*
TestValidator_OneOfMessage lists the allowed values.
*/
func TestValidator_OneOfMessage(t *testing.T) {
	appError := apperr.As((&validate.Validator{}).OneOf("status", "finished", "want-to-read", "read").Err())
	require.NotNil(t, appError)
	assert.Equal(t, "Must be one of: want-to-read, read", appError.Details[0].Message)
}

type reviewSchema struct {
	BookID  string   `json:"bookId" validate:"required"`
	Rating  int      `json:"rating" validate:"gte=1,lte=5"`
	Title   string   `json:"title" validate:"min=5"`
	Website *string  `json:"website" validate:"omitnil,eq=|url"`
	Pros    []string `json:"pros" validate:"omitempty,dive,notblank"`
}

/*
TestStruct_ReportsJSONFieldNames verifies tag-based schemas map to field errors keyed by JSON name.
*/
func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	err := validate.Struct(reviewSchema{Rating: 9, Title: "Bad", Pros: []string{"ok", "  "}})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeValidation, ae.Code)

	fields := make([]string, 0, len(ae.Details))
	for _, detail := range ae.Details {
		fields = append(fields, detail.Field)
	}
	assert.ElementsMatch(t, []string{"bookId", "rating", "title", "pros[1]"}, fields)
}

/*
TestStruct_Valid verifies a conforming payload passes, including an empty optional URL.
*/
func TestStruct_Valid(t *testing.T) {
	empty := ""
	err := validate.Struct(reviewSchema{BookID: "b1", Rating: 5, Title: "Great read", Website: &empty})
	assert.NoError(t, err)
}

/*
TestStruct_OptionalURL accepts absent or empty links and rejects malformed ones.
*/
func TestStruct_OptionalURL(t *testing.T) {
	empty, link, junk := "", "https://bookwise.app/u/reader", "nope"

	tests := []struct {
		name    string
		website *string
		valid   bool
	}{
		{"absent", nil, true},
		{"cleared", &empty, true},
		{"link", &link, true},
		{"malformed", &junk, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(reviewSchema{BookID: "b1", Rating: 5, Title: "Great read", Website: tt.website})
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			appError := apperr.As(err)
			require.NotNil(t, appError)
			require.Len(t, appError.Details, 1)
			assert.Equal(t, apperr.FieldError{Field: "website", Message: "Must be a valid URL"}, appError.Details[0])
		})
	}
}

/*
TestValidator_Merge folds schema violations into a chained validator.
*/
func TestValidator_Merge(t *testing.T) {
	v := &validate.Validator{}
	v.Merge(validate.Struct(reviewSchema{BookID: "b1", Rating: 0, Title: "Great read"})).
		Custom("publishedYear", true, "Cannot be in the future")

	ae := apperr.As(v.Err())
	require.NotNil(t, ae)
	assert.Len(t, ae.Details, 2)
}
