// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec holds password hashing and the bearer-token signer used by the
// BookWise API. Nothing here touches storage.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taibuivan/bookwise/pkg/uuid"
)

const (
	// minSecretLength is the shortest HMAC secret accepted for token signing.
	minSecretLength = 32

	// TokenAudience is the only audience access tokens are minted for.
	TokenAudience = "bookwise-api"

	// clockSkew tolerates drift between API replicas.
	clockSkew = 30 * time.Second
)

var (
	// ErrTokenExpired means the token was genuine but is past its expiry.
	ErrTokenExpired = errors.New("sec: token expired")

	// ErrTokenInvalid covers bad signatures, foreign issuers and garbage.
	ErrTokenInvalid = errors.New("sec: token invalid")
)

// AuthClaims is the resolved caller of a request.
//
// Bearer tokens carry it as their payload. Session-cookie callers get the
// same struct with empty registered claims.
type AuthClaims struct {
	jwt.RegisteredClaims

	UserID   string `json:"uid"`
	Username string `json:"unm"`
}

// TokenService signs and verifies HS256 access tokens.
type TokenService struct {
	secret []byte
	issuer string
	parser *jwt.Parser
}

// NewTokenService rejects secrets shorter than 32 bytes.
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if len(secret) < minSecretLength {
		return nil, fmt.Errorf("sec: session secret must be at least %d bytes", minSecretLength)
	}

	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(issuer),
			jwt.WithAudience(TokenAudience),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
			jwt.WithLeeway(clockSkew),
		),
	}, nil
}

// GenerateAccessToken mints a token for the user that expires after timeToLive.
func (service *TokenService) GenerateAccessToken(userID, username string, timeToLive time.Duration) (string, error) {
	issuedAt := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New(),
			Subject:   userID,
			Issuer:    service.issuer,
			Audience:  jwt.ClaimStrings{TokenAudience},
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(timeToLive)),
		},
		UserID:   userID,
		Username: username,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken returns the claims of a valid token. Failures wrap
// [ErrTokenExpired] or [ErrTokenInvalid].
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	claims := &AuthClaims{}
	_, err := service.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return service.secret, nil
	})

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, fmt.Errorf("%w: %w", ErrTokenExpired, err)
	case err != nil:
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	case claims.UserID == "" || claims.UserID != claims.Subject:
		return nil, fmt.Errorf("%w: subject mismatch", ErrTokenInvalid)
	}
	return claims, nil
}
