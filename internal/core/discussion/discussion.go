// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package discussion manages discussion threads.

# Thread Shape

A thread holds top-level comments, newest first, and each of those holds its
replies, oldest first. Replies never nest further.
*/
package discussion

import (
	"time"

	"github.com/taibuivan/bookwise/internal/core/book"
	"github.com/taibuivan/bookwise/internal/users/auth"
)

// # Domain Entities

// Discussion is a thread started by a user, optionally about a book.
type Discussion struct {
	ID           string        `json:"id"`
	UserID       string        `json:"userId"`
	BookID       *string       `json:"bookId"`
	Title        string        `json:"title"`
	Content      string        `json:"content"`
	Category     string        `json:"category"`
	Views        int           `json:"views"`
	Likes        int           `json:"likes"`
	IsPinned     bool          `json:"isPinned"`
	CommentCount int           `json:"commentCount"`
	User         auth.Summary  `json:"user"`
	Book         *book.Summary `json:"book"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// Comment is a comment as rendered inside a thread.
type Comment struct {
	ID        string       `json:"id"`
	ParentID  *string      `json:"parentId"`
	Content   string       `json:"content"`
	User      auth.Summary `json:"user"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
	Replies   []*Comment   `json:"replies,omitempty"`
}

// Detail is the single-thread payload.
type Detail struct {
	Discussion
	Comments []*Comment `json:"comments"`
}

// Filter narrows the thread listing. Empty fields are ignored.
type Filter struct {
	Category string
	BookID   string
	UserID   string
	Search   string // case-insensitive match on title or content
}

// # Categories

const (
	CategoryGeneral        = "general"
	CategoryBookClub       = "book-club"
	CategoryGenre          = "genre"
	CategoryRecommendation = "recommendation"
)

// Categories lists every accepted category.
var Categories = []string{CategoryGeneral, CategoryBookClub, CategoryGenre, CategoryRecommendation}

// # Field Identifiers

const (
	FieldCategory = "category"
	FieldBookID   = "bookId"
	FieldUserID   = "userId"
)
