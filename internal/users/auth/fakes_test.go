// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/taibuivan/bookwise/internal/platform/apperr"
	"github.com/taibuivan/bookwise/internal/users/auth"
)

type memoryUsers struct {
	mu    sync.Mutex
	byID  map[string]*auth.User
	admin map[string]bool
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byID: map[string]*auth.User{}, admin: map[string]bool{}}
}

func (m *memoryUsers) FindByID(_ context.Context, id string) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user, ok := m.byID[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, apperr.NotFound("User")
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.byID {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (m *memoryUsers) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.byID {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (m *memoryUsers) Create(_ context.Context, user *auth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.Email == user.Email {
			return apperr.Conflict("Email is already registered")
		}
	}
	user.JoinedDate = time.Now()
	user.UpdatedAt = user.JoinedDate
	copied := *user
	m.byID[user.ID] = &copied
	m.admin[user.ID] = user.IsAdmin
	return nil
}

func (m *memoryUsers) Update(_ context.Context, user *auth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[user.ID]; !ok {
		return apperr.NotFound("User")
	}
	copied := *user
	m.byID[user.ID] = &copied
	return nil
}

func (m *memoryUsers) SetPassword(_ context.Context, userID, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.byID[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.PasswordHash = hash
	return nil
}

func (m *memoryUsers) SetAdmin(_ context.Context, userID string, isAdmin bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.byID[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.IsAdmin = isAdmin
	m.admin[userID] = isAdmin
	return nil
}

func (m *memoryUsers) IsAdmin(_ context.Context, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.admin[userID], nil
}

type memorySessions struct {
	mu       sync.Mutex
	sessions map[string]string
	ttls     map[string]time.Duration
}

func newMemorySessions() *memorySessions {
	return &memorySessions{sessions: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memorySessions) Create(_ context.Context, tokenHash, userID string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[tokenHash] = userID
	m.ttls[tokenHash] = ttl
	return nil
}

func (m *memorySessions) Get(_ context.Context, tokenHash string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if userID, ok := m.sessions[tokenHash]; ok {
		return userID, nil
	}
	return "", apperr.NotFound("Session")
}

func (m *memorySessions) Delete(_ context.Context, tokenHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, tokenHash)
	return nil
}

type stubTokens struct {
	err error
}

func (s stubTokens) GenerateAccessToken(userID, _ string, _ time.Duration) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "access-" + userID, nil
}

var errBoom = errors.New("boom")
