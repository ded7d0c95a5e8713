// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package search runs the global search.

Each requested entity kind is matched independently with a case-insensitive
substring search and capped at the limit. The kinds run concurrently and are
merged into one response keyed by kind.
*/
package search

import (
	"context"

	"github.com/taibuivan/bookwise/internal/core/book"
	"github.com/taibuivan/bookwise/internal/core/discussion"
	"github.com/taibuivan/bookwise/internal/users/auth"
)

// # Types

const (
	TypeAll         = "all"
	TypeBooks       = "books"
	TypeDiscussions = "discussions"
	TypeUsers       = "users"
)

// Limits for the per-kind result cap.
const (
	DefaultLimit = 10
	MaxLimit     = 50
)

// Query is a parsed search request.
type Query struct {
	Term  string
	Type  string
	Limit int
}

// Results holds one list per requested kind. Kinds that were not requested
// are left nil and omitted from the JSON.
type Results struct {
	Books       []*book.Book             `json:"books,omitzero"`
	Discussions []*discussion.Discussion `json:"discussions,omitzero"`
	Users       []*auth.Summary          `json:"users,omitzero"`
}

// Repository runs the per-kind matches.
type Repository interface {

	// Books matches title, author or description, best rated first.
	Books(context context.Context, term string, limit int) ([]*book.Book, error)

	// Discussions matches title or content, most recently active first.
	Discussions(context context.Context, term string, limit int) ([]*discussion.Discussion, error)

	// Users matches name or username, alphabetically.
	Users(context context.Context, term string, limit int) ([]*auth.Summary, error)
}
