// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/bookwise/internal/platform/apperr"
	"github.com/taibuivan/bookwise/internal/platform/gate"
	"github.com/taibuivan/bookwise/internal/platform/metrics"
	"github.com/taibuivan/bookwise/internal/platform/sec"
	"github.com/taibuivan/bookwise/internal/platform/validate"
	"github.com/taibuivan/bookwise/pkg/slug"
	"github.com/taibuivan/bookwise/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating bearer tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed token string for the given user.
	GenerateAccessToken(userID, username string, timeToLive time.Duration) (string, error)
}

// Service implements account signup, login and session resolution.
type Service struct {
	userRepository    UserRepository
	sessionRepository SessionRepository
	tokenProvider     TokenProvider
	gate              *gate.Gate
	sessionTTL        time.Duration
	logger            *slog.Logger
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	tokenProv TokenProvider,
	mutationGate *gate.Gate,
	sessionTTL time.Duration,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository:    userRepo,
		sessionRepository: sessionRepo,
		tokenProvider:     tokenProv,
		gate:              mutationGate,
		sessionTTL:        sessionTTL,
		logger:            logger,
	}
}

// # Registration Flow

// SignupInput holds the data required to enroll a new member.
type SignupInput struct {
	Name     string `json:"name"     validate:"required,notblank,min=2,max=100"`
	Email    string `json:"email"    validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

/*
Signup validates, hashes, and persists a brand new user account.

Description: The username defaults to a slug of the display name; a random
suffix is appended while that name is taken.

Parameters:
  - context: context.Context
  - input: SignupInput

Returns:
  - *User: Created entity
  - err: READ_ONLY_MODE, VALIDATION_ERROR, CONFLICT (email registered) or storage errors
*/
func (service *Service) Signup(context context.Context, input SignupInput) (*User, error) {
	if err := service.gate.Writable(context); err != nil {
		return nil, err
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	// Verify email uniqueness. The unique index backs this up under races.
	_, err := service.userRepository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}
	if !apperr.HasCode(err, apperr.CodeNotFound) {
		return nil, err
	}

	username, err := service.availableUsername(context, input.Name)
	if err != nil {
		return nil, err
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if errors.Is(err, sec.ErrPasswordTooLong) {
		return nil, validate.RequiredError("password", "Maximum 72 bytes")
	}
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Name:         input.Name,
		Username:     username,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	metrics.RecordMutation("user", "create")
	service.logger.InfoContext(context, "user_signed_up",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)
	return user, nil
}

// availableUsername derives a free username from a display name.
func (service *Service) availableUsername(context context.Context, name string) (string, error) {
	base := slug.Username(name)

	candidate := base
	if len(candidate) < minUsernameLength {
		candidate = withSuffix(base)
	}

	for attempt := 0; attempt < maxUsernameAttempts; attempt++ {
		_, err := service.userRepository.FindByUsername(context, candidate)
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
		candidate = withSuffix(base)
	}

	return "", apperr.Conflict("Could not allocate a username, please try again")
}

// withSuffix appends the random tail of a fresh UUIDv7.
func withSuffix(base string) string {
	id := uuid.New()
	return base + "_" + id[len(id)-6:]
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	SessionToken     string
	SessionExpiresAt time.Time
	AccessToken      string
	User             *User
}

/*
Login validates user credentials and opens a session.

Description: Unknown emails and wrong passwords produce the same error so
accounts cannot be enumerated.

Returns:
  - *LoginSession: Session cookie value, bearer token and the user
  - err: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	user, err := service.userRepository.FindByEmail(context, input.Email)
	if apperr.HasCode(err, apperr.CodeNotFound) {
		return nil, apperr.Unauthorized("Invalid email or password")
	}
	if err != nil {
		return nil, err
	}

	// bcrypt compares in constant time.
	if !sec.PasswordMatches(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	// Accounts seeded with a cheaper work factor are upgraded transparently.
	if sec.NeedsRehash(user.PasswordHash) {
		service.upgradePassword(context, user.ID, input.Password)
	}

	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Username, AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	sessionToken, err := sec.GenerateSecureToken(SessionTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_session_token_failed: %w", err)
	}

	if err := service.sessionRepository.Create(context, sec.HashToken(sessionToken), user.ID, service.sessionTTL); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	service.logger.InfoContext(context, "user_logged_in", slog.String("user_id", user.ID))

	return &LoginSession{
		SessionToken:     sessionToken,
		SessionExpiresAt: time.Now().Add(service.sessionTTL),
		AccessToken:      accessToken,
		User:             user,
	}, nil
}

// upgradePassword rehashes at the current cost. Failure is logged and the
// login still succeeds with the old hash.
func (service *Service) upgradePassword(context context.Context, userID, password string) {
	hashedPassword, err := sec.HashPassword(password)
	if err == nil {
		err = service.userRepository.SetPassword(context, userID, hashedPassword)
	}
	if err != nil {
		service.logger.WarnContext(context, "password_rehash_failed", slog.String("user_id", userID), slog.Any("error", err))
		return
	}
	service.logger.InfoContext(context, "password_rehashed", slog.String("user_id", userID))
}

/*
Logout revokes the session behind a cookie value.

Description: Logging out of an unknown or expired session succeeds, so the
operation is idempotent.
*/
func (service *Service) Logout(context context.Context, sessionToken string) error {
	if sessionToken == "" {
		return nil
	}
	return service.sessionRepository.Delete(context, sec.HashToken(sessionToken))
}

/*
ResolveSession turns a session cookie value into caller claims.

Description: The account is reloaded so sessions of deleted users stop
resolving immediately.

Returns:
  - *sec.AuthClaims: Caller identity
  - err: apperr.NotFound when the session or its user is gone
*/
func (service *Service) ResolveSession(context context.Context, sessionToken string) (*sec.AuthClaims, error) {
	userID, err := service.sessionRepository.Get(context, sec.HashToken(sessionToken))
	if err != nil {
		return nil, err
	}

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	return &sec.AuthClaims{UserID: user.ID, Username: user.Username}, nil
}

// Me returns the caller's own account, email included.
func (service *Service) Me(context context.Context, userID string) (*User, error) {
	return service.userRepository.FindByID(context, userID)
}

// # Administration

// AdminInput describes the administrator the bootstrap command ensures.
type AdminInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8,max=72"`
	Name     string `validate:"required,notblank,min=2,max=100"`
}

/*
EnsureAdmin creates an administrator account, or promotes the existing
account with that email and resets its password.

Description: Operator tooling, so the read-only gate does not apply.

Returns:
  - *User: The administrator
  - bool: true when a new account was created
  - err: Validation or storage failures
*/
func (service *Service) EnsureAdmin(context context.Context, input AdminInput) (*User, bool, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Name = strings.TrimSpace(input.Name)

	if err := validate.Struct(input); err != nil {
		return nil, false, err
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if errors.Is(err, sec.ErrPasswordTooLong) {
		return nil, false, validate.RequiredError("password", "Maximum 72 bytes")
	}
	if err != nil {
		return nil, false, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	existing, err := service.userRepository.FindByEmail(context, input.Email)
	switch {
	case err == nil:
		if err := service.userRepository.SetPassword(context, existing.ID, hashedPassword); err != nil {
			return nil, false, err
		}
		if err := service.userRepository.SetAdmin(context, existing.ID, true); err != nil {
			return nil, false, err
		}
		existing.IsAdmin = true
		service.logger.WarnContext(context, "user_promoted_to_admin", slog.String("user_id", existing.ID))
		return existing, false, nil

	case !apperr.HasCode(err, apperr.CodeNotFound):
		return nil, false, err
	}

	username, err := service.availableUsername(context, input.Name)
	if err != nil {
		return nil, false, err
	}

	user := &User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Name:         input.Name,
		Username:     username,
		IsAdmin:      true,
	}
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, false, err
	}

	service.logger.WarnContext(context, "admin_created", slog.String("user_id", user.ID))
	return user, true, nil
}
