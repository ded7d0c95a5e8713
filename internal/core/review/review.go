// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package review manages book reviews.

# Counters

A review feeds three aggregates: the book's reviewCount and rating and the
author's reviewsWritten. Every write adjusts them inside the transaction that
changes the review row.
*/
package review

import (
	"time"

	"github.com/taibuivan/bookwise/internal/core/book"
	"github.com/taibuivan/bookwise/internal/users/auth"
)

// # Domain Entities

// Review is one reader's verdict on one book.
type Review struct {
	ID           string       `json:"id"`
	UserID       string       `json:"userId"`
	BookID       string       `json:"bookId"`
	Rating       int          `json:"rating"`
	Title        string       `json:"title"`
	Content      string       `json:"content"`
	Pros         []string     `json:"pros"`
	Cons         []string     `json:"cons"`
	HelpfulCount int          `json:"helpfulCount"`
	User         auth.Summary `json:"user"`
	Book         book.Summary `json:"book"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// Filter narrows the review listing. Empty fields are ignored.
type Filter struct {
	BookID string
	UserID string
}

// # Field Identifiers

const (
	FieldBookID = "bookId"
	FieldUserID = "userId"
)

// Rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)
