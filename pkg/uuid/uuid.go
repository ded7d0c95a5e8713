// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid generates and checks the identifiers used as primary keys.

Version 7 values are time-ordered, so new rows land at the end of the
B-tree indexes instead of fragmenting them.
*/
package uuid

import "github.com/google/uuid"

// # Generators

// New generates a new UUIDv7 string.
func New() string {
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}

	return id.String()
}

// # Checks

// Valid reports whether s parses as a UUID in its canonical 36-character form.
//
// Path parameters are checked with Valid before they reach PostgreSQL, so a
// malformed identifier reads as "not found" instead of a driver error.
func Valid(s string) bool {
	if len(s) != 36 {
		return false
	}
	return uuid.Validate(s) == nil
}
