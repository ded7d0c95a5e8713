// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/bookwise/internal/platform/apperr"
	"github.com/taibuivan/bookwise/internal/platform/constants"
)

// # Session Repository

// RedisSessionRepository implements SessionRepository using Redis key expiry.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a new Redis-backed SessionRepository.
func NewSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

func sessionKey(tokenHash string) string {
	return constants.RedisPrefixSession + tokenHash
}

/*
Create stores the session with its owner and TTL.

Parameters:
  - context: context.Context
  - tokenHash: string
  - userID: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisSessionRepository) Create(context context.Context, tokenHash, userID string, ttl time.Duration) error {
	if err := repository.client.Set(context, sessionKey(tokenHash), userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_set_failed: %w", err)
	}
	return nil
}

/*
Get retrieves the userID for a session.

Description: Returns apperr.NotFound if the session is absent or expired.

Returns:
  - string: Owning UserID
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisSessionRepository) Get(context context.Context, tokenHash string) (string, error) {
	userID, err := repository.client.Get(context, sessionKey(tokenHash)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Session")
		}
		return "", fmt.Errorf("redis_session_get_failed: %w", err)
	}
	return userID, nil
}

// Delete removes the session from Redis.
func (repository *RedisSessionRepository) Delete(context context.Context, tokenHash string) error {
	if err := repository.client.Del(context, sessionKey(tokenHash)).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}
	return nil
}
