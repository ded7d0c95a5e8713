// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the user identity and session management layer.

It defines the account entity shared by every other domain, the signup and
login flows, and the session resolver that turns a cookie or bearer token
into the caller identity consumed by the mutation gate.

# Architecture

Accounts live in PostgreSQL; opaque session tokens live in Redis under their
SHA-256 hash, so a leaked Redis dump cannot be replayed as a cookie.
*/
package auth

import (
	"time"
)

// # Domain Entities

// User represents a registered BookWise member.
type User struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email,omitempty"`
	PasswordHash       string    `json:"-"` // Explicitly omitted from JSON for security.
	Name               string    `json:"name"`
	Username           string    `json:"username"`
	Bio                *string   `json:"bio"`
	Image              *string   `json:"image"`
	Website            *string   `json:"website"`
	GoodreadsURL       *string   `json:"goodreadsUrl"`
	TwitterURL         *string   `json:"twitterUrl"`
	FavoriteGenres     []string  `json:"favoriteGenres"`
	ReadingGoal        *int      `json:"readingGoal"`
	IsAdmin            bool      `json:"isAdmin"`
	BooksRead          int       `json:"booksRead"`
	ReviewsWritten     int       `json:"reviewsWritten"`
	DiscussionsStarted int       `json:"discussionsStarted"`
	JoinedDate         time.Time `json:"joinedDate"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Public returns a copy that is safe to show to other members.
func (user User) Public() User {
	user.Email = ""
	return user
}

// Summary is the author block embedded in reviews, discussions and comments.
type Summary struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Username string  `json:"username"`
	Image    *string `json:"image"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldUser        = "user"
	FieldAccessToken = "accessToken"
	FieldTokenType   = "tokenType"
	FieldExpiresIn   = "expiresIn"
)
