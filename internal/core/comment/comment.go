// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package comment manages comments on discussion threads. A comment either
// starts a branch or replies to a top-level comment; deeper nesting is refused.
package comment

import (
	"time"

	"github.com/taibuivan/bookwise/internal/users/auth"
)

// Comment belongs to a discussion and a user.
type Comment struct {
	ID           string       `json:"id"`
	DiscussionID string       `json:"discussionId"`
	UserID       string       `json:"userId"`
	ParentID     *string      `json:"parentId"`
	Content      string       `json:"content"`
	User         auth.Summary `json:"user"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

const (
	FieldDiscussionID = "discussionId"
	FieldParentID     = "parentId"
)
