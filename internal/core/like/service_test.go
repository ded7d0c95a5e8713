// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package like_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookwise/internal/core/like"
	"github.com/taibuivan/bookwise/internal/platform/apperr"
	"github.com/taibuivan/bookwise/internal/platform/gate/gatetest"
	"github.com/taibuivan/bookwise/pkg/pointer"
	"github.com/taibuivan/bookwise/pkg/uuid"
)

// memoryLikes keeps like rows and counters per target.
type memoryLikes struct {
	mu       sync.Mutex
	counters map[like.Target]int
	likes    map[string]bool
}

func newMemoryLikes(targets ...like.Target) *memoryLikes {
	repo := &memoryLikes{counters: map[like.Target]int{}, likes: map[string]bool{}}
	for _, target := range targets {
		repo.counters[target] = 0
	}
	return repo
}

func (m *memoryLikes) Toggle(_ context.Context, userID string, target like.Target) (bool, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.counters[target]; !ok {
		return false, 0, apperr.NotFound(target.Kind)
	}

	key := userID + "|" + target.Kind + "|" + target.ID
	if m.likes[key] {
		delete(m.likes, key)
		m.counters[target]--
		return false, m.counters[target], nil
	}
	m.likes[key] = true
	m.counters[target]++
	return true, m.counters[target], nil
}

var (
	reviewTarget     = like.Target{Kind: like.KindReview, ID: uuid.New()}
	discussionTarget = like.Target{Kind: like.KindDiscussion, ID: uuid.New()}
)

func newService(readOnly bool, repo *memoryLikes) *like.Service {
	return like.NewService(repo, gatetest.New(readOnly), gatetest.Logger())
}

func as(userID string) context.Context {
	return gatetest.AsUser(context.Background(), userID)
}

/*
TestToggle_Twice restores the liked state and the counter.
*/
func TestToggle_Twice(t *testing.T) {
	repo := newMemoryLikes(reviewTarget, discussionTarget)
	service := newService(false, repo)
	input := like.ToggleInput{ReviewID: pointer.To(reviewTarget.ID)}

	first, err := service.Toggle(as("alice"), input)
	require.NoError(t, err)
	assert.Equal(t, &like.Result{Liked: true, Message: "Like added", Count: 1}, first)

	second, err := service.Toggle(as("alice"), input)
	require.NoError(t, err)
	assert.Equal(t, &like.Result{Liked: false, Message: "Like removed", Count: 0}, second)
	assert.Zero(t, repo.counters[reviewTarget])
}

/*
TestToggle_Discussion counts likes from different users.
*/
func TestToggle_Discussion(t *testing.T) {
	repo := newMemoryLikes(discussionTarget)
	service := newService(false, repo)
	input := like.ToggleInput{DiscussionID: pointer.To(discussionTarget.ID)}

	_, err := service.Toggle(as("alice"), input)
	require.NoError(t, err)
	result, err := service.Toggle(as("bob"), input)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
}

/*
TestToggle_ExactlyOneTarget rejects both and neither.
*/
func TestToggle_ExactlyOneTarget(t *testing.T) {
	repo := newMemoryLikes(reviewTarget, discussionTarget)
	service := newService(false, repo)

	tests := []struct {
		name  string
		input like.ToggleInput
	}{
		{"neither", like.ToggleInput{}},
		{"blank", like.ToggleInput{ReviewID: pointer.To(""), DiscussionID: pointer.To("  ")}},
		{"both", like.ToggleInput{ReviewID: pointer.To(reviewTarget.ID), DiscussionID: pointer.To(discussionTarget.ID)}},
		{"malformed", like.ToggleInput{ReviewID: pointer.To("abc")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Toggle(as("alice"), tt.input)
			assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
		})
	}

	assert.Zero(t, repo.counters[reviewTarget])
	assert.Zero(t, repo.counters[discussionTarget])
}

/*
TestToggle_MissingTarget reports NotFound.
*/
func TestToggle_MissingTarget(t *testing.T) {
	service := newService(false, newMemoryLikes())

	_, err := service.Toggle(as("alice"), like.ToggleInput{ReviewID: pointer.To(uuid.New())})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestToggle_Guards refuses anonymous callers and read-only mode.
*/
func TestToggle_Guards(t *testing.T) {
	repo := newMemoryLikes(reviewTarget)
	input := like.ToggleInput{ReviewID: pointer.To(reviewTarget.ID)}

	_, err := newService(false, repo).Toggle(context.Background(), input)
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))

	_, err = newService(true, repo).Toggle(as("alice"), input)
	assert.ErrorIs(t, err, apperr.ErrReadOnly)
	assert.Zero(t, repo.counters[reviewTarget])
}
