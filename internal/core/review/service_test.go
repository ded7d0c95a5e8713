// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookwise/internal/core/book"
	"github.com/taibuivan/bookwise/internal/core/review"
	"github.com/taibuivan/bookwise/internal/platform/apperr"
	"github.com/taibuivan/bookwise/internal/platform/gate/gatetest"
	"github.com/taibuivan/bookwise/pkg/pointer"
	"github.com/taibuivan/bookwise/pkg/uuid"
)

const (
	adminID = "admin"
	aliceID = "alice"
	bobID   = "bob"
)

// memoryReviews keeps the same counters the Postgres store maintains.
type memoryReviews struct {
	mu             sync.Mutex
	reviews        map[string]*review.Review
	reviewCount    map[string]int
	reviewsWritten map[string]int
}

func newMemoryReviews() *memoryReviews {
	return &memoryReviews{
		reviews:        map[string]*review.Review{},
		reviewCount:    map[string]int{},
		reviewsWritten: map[string]int{},
	}
}

func (m *memoryReviews) List(_ context.Context, filter review.Filter, limit, offset int) ([]*review.Review, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	matches := []*review.Review{}
	for _, entry := range m.reviews {
		if filter.BookID != "" && entry.BookID != filter.BookID {
			continue
		}
		if filter.UserID != "" && entry.UserID != filter.UserID {
			continue
		}
		matches = append(matches, entry)
	}
	return matches, len(matches), nil
}

func (m *memoryReviews) FindByID(_ context.Context, id string) (*review.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if entry, ok := m.reviews[id]; ok {
		copied := *entry
		return &copied, nil
	}
	return nil, apperr.NotFound("Review")
}

func (m *memoryReviews) Exists(_ context.Context, userID, bookID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, entry := range m.reviews {
		if entry.UserID == userID && entry.BookID == bookID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryReviews) Create(_ context.Context, entry *review.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *entry
	m.reviews[entry.ID] = &copied
	m.reviewCount[entry.BookID]++
	m.reviewsWritten[entry.UserID]++
	return nil
}

func (m *memoryReviews) Update(_ context.Context, entry *review.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *entry
	m.reviews[entry.ID] = &copied
	return nil
}

func (m *memoryReviews) Delete(_ context.Context, entry *review.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.reviews, entry.ID)
	m.reviewCount[entry.BookID]--
	m.reviewsWritten[entry.UserID]--
	return nil
}

type staticBooks map[string]*book.Book

func (books staticBooks) FindByID(_ context.Context, id string) (*book.Book, error) {
	if entry, ok := books[id]; ok {
		return entry, nil
	}
	return nil, apperr.NotFound("Book")
}

var bookID = uuid.New()

func newService(readOnly bool) (*review.Service, *memoryReviews) {
	repo := newMemoryReviews()
	books := staticBooks{bookID: {ID: bookID, Title: "Atomic Habits"}}
	return review.NewService(repo, books, gatetest.New(readOnly, adminID), gatetest.Logger()), repo
}

func as(userID string) context.Context {
	return gatetest.AsUser(context.Background(), userID)
}

func greatReview() review.CreateInput {
	return review.CreateInput{
		BookID:  bookID,
		Rating:  5,
		Title:   "Great",
		Content: strings.Repeat("A genuinely useful book about habits. ", 2),
		Pros:    []string{"Practical"},
	}
}

/*
TestReviewLifecycle creates a review, rejects the duplicate and restores the counters on delete.
*/
func TestReviewLifecycle(t *testing.T) {
	service, repo := newService(false)

	created, err := service.Create(as(aliceID), greatReview())
	require.NoError(t, err)
	assert.Equal(t, aliceID, created.UserID)
	assert.Equal(t, []string{}, created.Cons)
	assert.Equal(t, 1, repo.reviewCount[bookID])
	assert.Equal(t, 1, repo.reviewsWritten[aliceID])

	_, err = service.Create(as(aliceID), greatReview())
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, apperr.CodeConflict, appError.Code)
	assert.Equal(t, 400, appError.HTTPStatus)
	assert.Equal(t, 1, repo.reviewCount[bookID])

	require.NoError(t, service.Delete(as(aliceID), created.ID))
	assert.Equal(t, 0, repo.reviewCount[bookID])
	assert.Equal(t, 0, repo.reviewsWritten[aliceID])
}

/*
TestCreate_Validation covers the rating range and minimum lengths.
*/
func TestCreate_Validation(t *testing.T) {
	service, repo := newService(false)

	input := greatReview()
	input.Rating = 6
	input.Title = "Meh "
	input.Content = "Too short"
	input.Pros = []string{""}

	_, err := service.Create(as(aliceID), input)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, apperr.CodeValidation, appError.Code)

	fields := map[string]bool{}
	for _, detail := range appError.Details {
		fields[detail.Field] = true
	}
	assert.True(t, fields["rating"])
	assert.True(t, fields["title"])
	assert.True(t, fields["content"])
	assert.True(t, fields["pros[0]"])
	assert.Empty(t, repo.reviews)
}

/*
TestCreate_MissingBook reports NotFound for an unknown book.
*/
func TestCreate_MissingBook(t *testing.T) {
	service, _ := newService(false)

	input := greatReview()
	input.BookID = uuid.New()
	_, err := service.Create(as(aliceID), input)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestCreate_Anonymous requires a session.
*/
func TestCreate_Anonymous(t *testing.T) {
	service, _ := newService(false)

	_, err := service.Create(context.Background(), greatReview())
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))
}

/*
TestReadOnly blocks every mutation and leaves storage untouched.
*/
func TestReadOnly(t *testing.T) {
	writable, repo := newService(false)
	created, err := writable.Create(as(aliceID), greatReview())
	require.NoError(t, err)

	service := review.NewService(repo, staticBooks{}, gatetest.New(true, adminID), gatetest.Logger())

	_, err = service.Create(as(bobID), greatReview())
	assert.ErrorIs(t, err, apperr.ErrReadOnly)
	_, err = service.Update(as(aliceID), created.ID, review.UpdateInput{Rating: pointer.To(1)})
	assert.ErrorIs(t, err, apperr.ErrReadOnly)
	assert.ErrorIs(t, service.Delete(as(adminID), created.ID), apperr.ErrReadOnly)

	assert.Len(t, repo.reviews, 1)
	assert.Equal(t, 5, repo.reviews[created.ID].Rating)
}

/*
TestUpdate_OwnerOnly checks NotFound, then Forbidden, then validation.
*/
func TestUpdate_OwnerOnly(t *testing.T) {
	service, repo := newService(false)
	created, err := service.Create(as(aliceID), greatReview())
	require.NoError(t, err)

	_, err = service.Update(as(bobID), uuid.New(), review.UpdateInput{})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	_, err = service.Update(as(bobID), created.ID, review.UpdateInput{Rating: pointer.To(9)})
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))

	_, err = service.Update(as(adminID), created.ID, review.UpdateInput{Rating: pointer.To(1)})
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))

	_, err = service.Update(as(aliceID), created.ID, review.UpdateInput{Rating: pointer.To(9)})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	updated, err := service.Update(as(aliceID), created.ID, review.UpdateInput{Rating: pointer.To(3)})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Rating)
	assert.Equal(t, "Great", updated.Title)
	assert.Equal(t, 3, repo.reviews[created.ID].Rating)
}

/*
TestDelete_OwnerOnly refuses other users, administrators included.
*/
func TestDelete_OwnerOnly(t *testing.T) {
	service, repo := newService(false)
	created, err := service.Create(as(aliceID), greatReview())
	require.NoError(t, err)

	assert.True(t, apperr.HasCode(service.Delete(as(bobID), created.ID), apperr.CodeForbidden))
	assert.True(t, apperr.HasCode(service.Delete(as(adminID), created.ID), apperr.CodeForbidden))
	assert.Equal(t, 1, repo.reviewCount[bookID])
}

/*
TestList_Filters rejects malformed IDs and narrows by book.
*/
func TestList_Filters(t *testing.T) {
	service, _ := newService(false)
	_, err := service.Create(as(aliceID), greatReview())
	require.NoError(t, err)

	_, _, err = service.List(context.Background(), review.Filter{BookID: "nope"}, 20, 0)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	reviews, total, err := service.List(context.Background(), review.Filter{BookID: bookID}, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, reviews, 1)

	_, total, err = service.List(context.Background(), review.Filter{UserID: uuid.New()}, 20, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
}
