// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package readinglist manages each reader's shelf.

# booksRead

User.booksRead counts the items currently marked read. Every status change
that enters or leaves "read" moves the counter by one in the transaction that
writes the item.
*/
package readinglist

import (
	"time"

	"github.com/taibuivan/bookwise/internal/core/book"
)

// Item is one book on one reader's list.
type Item struct {
	ID         string       `json:"id"`
	UserID     string       `json:"userId"`
	BookID     string       `json:"bookId"`
	Status     string       `json:"status"`
	Progress   int          `json:"progress"`
	StartedAt  *time.Time   `json:"startedAt"`
	FinishedAt *time.Time   `json:"finishedAt"`
	Book       book.Summary `json:"book"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// # Statuses

const (
	StatusWantToRead       = "want-to-read"
	StatusCurrentlyReading = "currently-reading"
	StatusRead             = "read"
)

// Statuses lists every accepted status.
var Statuses = []string{StatusWantToRead, StatusCurrentlyReading, StatusRead}

// ReadDelta is the booksRead adjustment for moving an item from before to after.
// An empty before means the item is new; an empty after means it is removed.
func ReadDelta(before, after string) int {
	switch {
	case before != StatusRead && after == StatusRead:
		return 1
	case before == StatusRead && after != StatusRead:
		return -1
	default:
		return 0
	}
}

const (
	FieldStatus     = "status"
	FieldStartedAt  = "startedAt"
	FieldFinishedAt = "finishedAt"
)
