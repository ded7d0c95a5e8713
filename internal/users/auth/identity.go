// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"

	"github.com/taibuivan/bookwise/internal/platform/ctxutil"
)

// Identity answers the gate's questions about the caller: who is calling,
// read from the request context, and whether they administer the site,
// read from the account row on every check so a demotion applies at once.
type Identity struct {
	userRepository UserRepository
}

// NewIdentity constructs an [Identity] over the account store.
func NewIdentity(users UserRepository) *Identity {
	return &Identity{userRepository: users}
}

// CurrentUserID returns the authenticated caller, or false when anonymous.
func (identity *Identity) CurrentUserID(context context.Context) (string, bool) {
	return ctxutil.GetUserID(context)
}

// IsAdmin reports the account's administrator flag.
func (identity *Identity) IsAdmin(context context.Context, userID string) (bool, error) {
	return identity.userRepository.IsAdmin(context, userID)
}
