// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor for newly stored passwords.
// Hashes written with a lower cost are upgraded on the next successful login.
const PasswordCost = 12

// MaxPasswordBytes is the bcrypt input limit. Longer input is rejected, never truncated.
const MaxPasswordBytes = 72

// ErrPasswordTooLong is returned when the password exceeds [MaxPasswordBytes].
var ErrPasswordTooLong = errors.New("sec: password exceeds 72 bytes")

// HashPassword hashes a plain-text password at [PasswordCost].
func HashPassword(plainTextPassword string) (string, error) {
	if len(plainTextPassword) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// PasswordMatches reports whether plainTextPassword produces storedHash.
// A malformed stored hash never matches.
func PasswordMatches(plainTextPassword, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plainTextPassword)) == nil
}

// NeedsRehash reports whether storedHash was produced below [PasswordCost].
func NeedsRehash(storedHash string) bool {
	cost, err := bcrypt.Cost([]byte(storedHash))
	return err == nil && cost < PasswordCost
}
