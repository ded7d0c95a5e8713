// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email, including the password hash.

		Parameters:
		  - context: context.Context
		  - email: string (lower-cased by the caller)

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		FindByUsername returns the account with the given username.

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		Create persists a brand-new user account.

		Returns:
		  - error: Conflict on a duplicate email or username, or persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		Update persists changes to the mutable profile fields.

		Returns:
		  - error: apperr.NotFound, Conflict on a taken username, or persistence failures
	*/
	Update(context context.Context, user *User) error

	// SetPassword replaces only the password hash.
	SetPassword(context context.Context, userID, passwordHash string) error

	// SetAdmin flips the administrator flag.
	SetAdmin(context context.Context, userID string, isAdmin bool) error

	// IsAdmin reads the administrator flag. Unknown users are not administrators.
	IsAdmin(context context.Context, userID string) (bool, error)
}

// # Session Data Access

// SessionRepository stores opaque session tokens by their hash.
type SessionRepository interface {

	/*
		Create stores a session for userID that expires after ttl.

		Parameters:
		  - context: context.Context
		  - tokenHash: string (sec.HashToken of the cookie value)
		  - userID: string
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, tokenHash, userID string, ttl time.Duration) error

	/*
		Get returns the user owning the session.

		Returns:
		  - string: UserID
		  - error: apperr.NotFound when the session is unknown or expired
	*/
	Get(context context.Context, tokenHash string) (string, error)

	// Delete removes the session. Deleting an unknown session is not an error.
	Delete(context context.Context, tokenHash string) error
}
