// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package readinglist

import (
	"context"
	"errors"

	"github.com/taibuivan/bookwise/internal/core/book"
)

// ErrStatusChanged means the stored status no longer matches the one the
// service read, so the item must be reloaded before booksRead is touched.
var ErrStatusChanged = errors.New("readinglist: item status changed concurrently")

// Repository defines the data access contract for reading-list items.
type Repository interface {

	// List returns one page of a reader's items, most recently updated first.
	List(context context.Context, userID, status string, limit, offset int) ([]*Item, int, error)

	// FindByID returns an item with its book summary.
	FindByID(context context.Context, id string) (*Item, error)

	// Exists reports whether bookID is already on userID's list.
	Exists(context context.Context, userID, bookID string) (bool, error)

	/*
		Create inserts the item and counts it in the owner's booksRead when it
		starts out as read.

		Returns:
		  - error: Conflict when the book is already listed, or persistence failures
	*/
	Create(context context.Context, item *Item) error

	/*
		Update persists status, progress and timestamps. The row is locked
		first; if its status is no longer readStatus nothing is written.
		booksRead moves by ReadDelta(readStatus, item.Status).

		Returns:
		  - error: ErrStatusChanged, NotFound, or persistence failures
	*/
	Update(context context.Context, item *Item, readStatus string) error

	// Delete removes the item and uncounts it if the deleted row was read.
	Delete(context context.Context, item *Item) error
}

// BookReader resolves the listed book.
type BookReader interface {
	FindByID(context context.Context, id string) (*book.Book, error)
}
