// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account serves member profiles.

A profile is the account row with its counters plus the member's recent
activity: latest reviews, latest discussions and the reading list. The email
address is shown to its owner only.

# Architecture

  - Entities: Profile (read model over auth.User and the core domains).
  - Domain: Account rows belong to the auth package; this package only edits
    the public profile fields.
*/
package account

import (
	"context"

	"github.com/taibuivan/bookwise/internal/core/discussion"
	"github.com/taibuivan/bookwise/internal/core/readinglist"
	"github.com/taibuivan/bookwise/internal/core/review"
	"github.com/taibuivan/bookwise/internal/users/auth"
)

// RecentLimit caps the review and discussion lists on a profile.
const RecentLimit = 10

// # Domain Entities

// Profile is the public page of a member.
type Profile struct {
	auth.User
	RecentReviews     []*review.Review         `json:"recentReviews"`
	RecentDiscussions []*discussion.Discussion `json:"recentDiscussions"`
	ReadingList       []*readinglist.Item      `json:"readingList"`
}

// # Repository Contracts

// ActivityRepository reads what a member has written and shelved.
type ActivityRepository interface {

	/*
		RecentReviews returns the member's latest reviews, newest first.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - limit: int

		Returns:
		  - []*review.Review: With book summaries
		  - error: storage failures
	*/
	RecentReviews(context context.Context, userID string, limit int) ([]*review.Review, error)

	// RecentDiscussions returns the member's latest threads, newest first.
	RecentDiscussions(context context.Context, userID string, limit int) ([]*discussion.Discussion, error)

	// ReadingList returns every item on the member's list, most recently updated first.
	ReadingList(context context.Context, userID string) ([]*readinglist.Item, error)
}

// # Field Identifiers

const (
	FieldUsername = "username"
)
