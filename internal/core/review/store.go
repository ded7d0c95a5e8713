// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"

	"github.com/taibuivan/bookwise/internal/core/book"
)

// Repository defines the data access contract for reviews.
type Repository interface {

	// List returns one page of reviews, newest first, and the total match count.
	List(context context.Context, filter Filter, limit, offset int) ([]*Review, int, error)

	/*
		FindByID returns a review with its author and book summaries.

		Returns:
		  - *Review: Hydrated entity
		  - error: apperr.NotFound or database failures
	*/
	FindByID(context context.Context, id string) (*Review, error)

	// Exists reports whether userID has already reviewed bookID.
	Exists(context context.Context, userID, bookID string) (bool, error)

	/*
		Create inserts the review and bumps the book and author counters.

		Description: The book rating is recomputed in the same transaction.

		Returns:
		  - error: Conflict on a second review of the same book, or persistence failures
	*/
	Create(context context.Context, review *Review) error

	// Update persists rating, title, content, pros and cons and refreshes the book rating.
	Update(context context.Context, review *Review) error

	// Delete removes the review and reverses its counter contributions.
	Delete(context context.Context, review *Review) error
}

// BookReader resolves the book a review points at.
type BookReader interface {
	FindByID(context context.Context, id string) (*book.Book, error)
}
