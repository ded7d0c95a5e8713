// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"

	"github.com/taibuivan/bookwise/internal/core/discussion"
)

// Repository defines the data access contract for comments.
type Repository interface {

	// List returns one page of a thread's comments in creation order.
	List(context context.Context, discussionID string, limit, offset int) ([]*Comment, int, error)

	// FindByID returns a comment with its author summary.
	FindByID(context context.Context, id string) (*Comment, error)

	/*
		Create inserts the comment and marks the thread as active.

		Description: The discussion's updatedAt moves in the same transaction,
		so busy threads rise in the listing.

		Returns:
		  - error: apperr.NotFound when the discussion vanished, or persistence failures
	*/
	Create(context context.Context, comment *Comment) error

	// Update persists the content.
	Update(context context.Context, comment *Comment) error

	// Delete removes the comment. Replies go with it.
	Delete(context context.Context, id string) error
}

// DiscussionReader resolves the thread a comment is posted to.
type DiscussionReader interface {
	FindByID(context context.Context, id string) (*discussion.Discussion, error)
}
