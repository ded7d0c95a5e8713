// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a bearer access token remains valid.
	// Browser clients rely on the session cookie instead.
	AccessTokenTTL = 15 * time.Minute

	// SessionTokenLength is the byte length of the random session token.
	SessionTokenLength = 32

	// maxUsernameAttempts bounds the search for a free default username.
	maxUsernameAttempts = 5

	// minUsernameLength matches the profile update rule.
	minUsernameLength = 3
)
