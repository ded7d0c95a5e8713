// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package discussion

import (
	"context"

	"github.com/taibuivan/bookwise/internal/core/book"
)

// Repository defines the data access contract for discussions.
type Repository interface {

	// List returns one page of threads, pinned first then most recently active.
	List(context context.Context, filter Filter, limit, offset int) ([]*Discussion, int, error)

	/*
		FindByID returns a thread with author, book and comment count.

		Returns:
		  - *Discussion: Hydrated entity
		  - error: apperr.NotFound or database failures
	*/
	FindByID(context context.Context, id string) (*Discussion, error)

	// Comments returns every comment of the thread in creation order.
	Comments(context context.Context, discussionID string) ([]*Comment, error)

	// IncrementViews adds one view without touching updatedAt.
	IncrementViews(context context.Context, id string) error

	/*
		Create inserts the thread and bumps the author's discussionsStarted.

		Returns:
		  - error: persistence failures
	*/
	Create(context context.Context, discussion *Discussion) error

	// Update persists title, content, category and book.
	Update(context context.Context, discussion *Discussion) error

	// SetPinned flips the pinned flag.
	SetPinned(context context.Context, id string, pinned bool) error

	// Delete removes the thread and decrements its owner's discussionsStarted.
	Delete(context context.Context, discussion *Discussion) error
}

// BookReader resolves the optional book a thread is about.
type BookReader interface {
	FindByID(context context.Context, id string) (*book.Book, error)
}
