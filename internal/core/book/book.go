// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package book manages the catalogue: browsing, the single-book page with its
reviews, and administrator-only curation.

# Rating

Reviews are the source of truth for a book's rating. The review store
refreshes the stored rating whenever a review changes, and the single-book
read recomputes it from live rows, so every view agrees.
*/
package book

import (
	"time"

	"github.com/taibuivan/bookwise/internal/users/auth"
)

// # Domain Entities

// Book is a catalogue entry.
type Book struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	ISBN          *string   `json:"isbn"`
	Description   string    `json:"description"`
	CoverImage    string    `json:"coverImage"`
	Genres        []string  `json:"genres"`
	Mood          []string  `json:"mood"`
	PublishedYear int       `json:"publishedYear"`
	PageCount     *int      `json:"pageCount"`
	Rating        float64   `json:"rating"`
	ReviewCount   int       `json:"reviewCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Summary is the short form embedded in other entities.
type Summary struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	CoverImage string `json:"coverImage"`
}

// Review is a review as shown on the book page.
type Review struct {
	ID           string       `json:"id"`
	Rating       int          `json:"rating"`
	Title        string       `json:"title"`
	Content      string       `json:"content"`
	Pros         []string     `json:"pros"`
	Cons         []string     `json:"cons"`
	HelpfulCount int          `json:"helpfulCount"`
	LikeCount    int          `json:"likeCount"`
	User         auth.Summary `json:"user"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// Detail is the single-book payload.
type Detail struct {
	Book
	Reviews []*Review `json:"reviews"`
}

// Filter holds the parameters for a paginated catalogue listing.
type Filter struct {
	Genres []string // every listed genre must be present
	Search string   // case-insensitive match on title or author
	SortBy string   // client-facing key, see sortColumns
	Order  string   // "asc" or "desc"
}

// # Field Identifiers

// Global field names for validation
const (
	FieldTitle         = "title"
	FieldAuthor        = "author"
	FieldCoverImage    = "coverImage"
	FieldGenres        = "genres"
	FieldPublishedYear = "publishedYear"
	FieldDescription   = "description"
)

// MinPublishedYear is the oldest publication year the catalogue accepts.
const MinPublishedYear = 1000
