// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer provides generic helpers for the optional fields of partial
updates, where a nil pointer means "leave unchanged".

Key Functions:
  - To: Creates a pointer from a value literal.
  - Apply: Copies an optional value onto its target when present.
  - Blank: Turns an empty optional string into SQL NULL.
*/
package pointer

import "strings"

// To returns a pointer to the provided value.
func To[T any](v T) *T {
	return &v
}

// Apply overwrites *target with *value when value is non-nil and reports
// whether it did.
//
// # Example
//
//	pointer.Apply(&book.Title, input.Title)
func Apply[T any](target *T, value *T) bool {
	if value == nil {
		return false
	}
	*target = *value
	return true
}

// Blank returns nil for a nil or whitespace-only string and the trimmed
// value otherwise. Clients clear optional text columns by sending "".
func Blank(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
