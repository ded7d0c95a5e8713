// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import "context"

// Repository defines the persistence contract for the catalogue.
type Repository interface {

	/*
		List returns one page of books matching the filter and the total match count.
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Book, int, error)

	/*
		FindByID returns the book with the given ID.

		Returns:
		  - *Book: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*Book, error)

	// Reviews returns every review of the book, newest first, with author and like count.
	Reviews(context context.Context, bookID string) ([]*Review, error)

	// Create persists a new book; ID must be set.
	Create(context context.Context, book *Book) error

	// Update persists the editable fields of an existing book.
	Update(context context.Context, book *Book) error

	/*
		Delete removes the book in one transaction with the counters it feeds:
		reviewsWritten of every reviewer and booksRead of every reader who
		finished it.

		Returns:
		  - error: apperr.NotFound or storage failures
	*/
	Delete(context context.Context, id string) error
}
