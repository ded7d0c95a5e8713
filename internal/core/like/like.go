// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package like toggles likes on reviews and discussions. A like on a review
// counts towards its helpfulCount; a like on a discussion towards its likes.
package like

import "context"

// # Targets

const (
	KindReview     = "review"
	KindDiscussion = "discussion"
)

// Target is the single entity a like points at.
type Target struct {
	Kind string
	ID   string
}

// Result reports the state after a toggle.
type Result struct {
	Liked   bool   `json:"liked"`
	Message string `json:"message"`
	Count   int    `json:"count"`
}

const (
	FieldReviewID     = "reviewId"
	FieldDiscussionID = "discussionId"
)

// Repository defines the data access contract for likes.
type Repository interface {

	/*
		Toggle removes the caller's like when present and adds it otherwise.

		Description: The target row is locked for the duration so concurrent
		toggles on the same entity serialize, and the counter moves in the same
		transaction as the like row.

		Returns:
		  - bool: true when the like now exists
		  - int: the target's counter after the toggle
		  - error: apperr.NotFound when the target is missing, or persistence failures
	*/
	Toggle(context context.Context, userID string, target Target) (bool, int, error)
}
