// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookwise/internal/core/book"
	"github.com/taibuivan/bookwise/internal/platform/apperr"
	"github.com/taibuivan/bookwise/internal/platform/gate/gatetest"
	"github.com/taibuivan/bookwise/pkg/pointer"
)

const (
	adminID  = "admin"
	memberID = "member"
)

type memoryBooks struct {
	mu      sync.Mutex
	books   map[string]*book.Book
	reviews map[string][]*book.Review
	deleted []string
}

func newMemoryBooks() *memoryBooks {
	return &memoryBooks{books: map[string]*book.Book{}, reviews: map[string][]*book.Review{}}
}

func (m *memoryBooks) List(_ context.Context, _ book.Filter, limit, offset int) ([]*book.Book, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]*book.Book, 0, len(m.books))
	for _, entry := range m.books {
		all = append(all, entry)
	}
	if offset > len(all) {
		offset = len(all)
	}
	end := min(offset+limit, len(all))
	return all[offset:end], len(all), nil
}

func (m *memoryBooks) FindByID(_ context.Context, id string) (*book.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if entry, ok := m.books[id]; ok {
		copied := *entry
		return &copied, nil
	}
	return nil, apperr.NotFound("Book")
}

func (m *memoryBooks) Reviews(_ context.Context, bookID string) ([]*book.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reviews[bookID], nil
}

func (m *memoryBooks) Create(_ context.Context, entry *book.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = entry.CreatedAt
	copied := *entry
	m.books[entry.ID] = &copied
	return nil
}

func (m *memoryBooks) Update(_ context.Context, entry *book.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.books[entry.ID]; !ok {
		return apperr.NotFound("Book")
	}
	copied := *entry
	m.books[entry.ID] = &copied
	return nil
}

func (m *memoryBooks) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.books[id]; !ok {
		return apperr.NotFound("Book")
	}
	delete(m.books, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func validInput() book.CreateInput {
	return book.CreateInput{
		Title:         "Atomic Habits",
		Author:        "James Clear",
		CoverImage:    "https://covers.example.com/atomic.jpg",
		Genres:        []string{"self-help"},
		PublishedYear: 2018,
		Description:   "Tiny changes, remarkable results.",
	}
}

func newService(readOnly bool) (*book.Service, *memoryBooks) {
	repo := newMemoryBooks()
	return book.NewService(repo, gatetest.New(readOnly, adminID), gatetest.Logger()), repo
}

func asAdmin() context.Context  { return gatetest.AsUser(context.Background(), adminID) }
func asMember() context.Context { return gatetest.AsUser(context.Background(), memberID) }

/*
TestCreate_AdminOnly lets administrators add books and refuses everyone else.
*/
func TestCreate_AdminOnly(t *testing.T) {
	service, repo := newService(false)

	created, err := service.Create(asAdmin(), validInput())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, []string{}, created.Mood)
	assert.Contains(t, repo.books, created.ID)

	_, err = service.Create(asMember(), validInput())
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))

	_, err = service.Create(context.Background(), validInput())
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))
}

/*
TestCreate_Validation reports every failing field at once.
*/
func TestCreate_Validation(t *testing.T) {
	service, _ := newService(false)

	input := validInput()
	input.Title = " "
	input.CoverImage = "not a url"
	input.Genres = []string{}
	input.PublishedYear = time.Now().Year() + 2
	input.Description = "short"
	input.PageCount = pointer.To(0)

	_, err := service.Create(asAdmin(), input)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, apperr.CodeValidation, appError.Code)

	fields := map[string]bool{}
	for _, detail := range appError.Details {
		fields[detail.Field] = true
	}
	for _, field := range []string{"title", "coverImage", "genres", "publishedYear", "description", "pageCount"} {
		assert.True(t, fields[field], "expected violation for %s", field)
	}
}

/*
TestCreate_NextYearAllowed accepts pre-announced books.
*/
func TestCreate_NextYearAllowed(t *testing.T) {
	service, _ := newService(false)

	input := validInput()
	input.PublishedYear = time.Now().Year() + 1
	_, err := service.Create(asAdmin(), input)
	assert.NoError(t, err)

	input.PublishedYear = 999
	_, err = service.Create(asAdmin(), input)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

/*
TestReadOnly_BlocksAdmins refuses every mutation, administrators included, without touching storage.
*/
func TestReadOnly_BlocksAdmins(t *testing.T) {
	writable, _ := newService(false)
	existing, err := writable.Create(asAdmin(), validInput())
	require.NoError(t, err)

	service, repo := newService(true)
	repo.books[existing.ID] = existing

	_, err = service.Create(asAdmin(), validInput())
	assert.ErrorIs(t, err, apperr.ErrReadOnly)

	_, err = service.Update(asAdmin(), existing.ID, book.UpdateInput{Title: pointer.To("Changed")})
	assert.ErrorIs(t, err, apperr.ErrReadOnly)

	assert.ErrorIs(t, service.Delete(asAdmin(), existing.ID), apperr.ErrReadOnly)

	assert.Len(t, repo.books, 1)
	assert.Equal(t, "Atomic Habits", repo.books[existing.ID].Title)
}

/*
TestUpdate_Ordering reports NotFound before Forbidden and Forbidden before validation.
*/
func TestUpdate_Ordering(t *testing.T) {
	service, _ := newService(false)
	existing, err := service.Create(asAdmin(), validInput())
	require.NoError(t, err)

	_, err = service.Update(asMember(), "0190f2a4-7b1c-7d3e-8f00-123456789abc", book.UpdateInput{})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	_, err = service.Update(asMember(), "garbage", book.UpdateInput{})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	_, err = service.Update(asMember(), existing.ID, book.UpdateInput{Title: pointer.To("")})
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))

	_, err = service.Update(asAdmin(), existing.ID, book.UpdateInput{Title: pointer.To("")})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

/*
TestUpdate_Partial changes only the supplied fields.
*/
func TestUpdate_Partial(t *testing.T) {
	service, _ := newService(false)
	input := validInput()
	input.ISBN = pointer.To("9780735211292")
	existing, err := service.Create(asAdmin(), input)
	require.NoError(t, err)

	updated, err := service.Update(asAdmin(), existing.ID, book.UpdateInput{
		Title: pointer.To("  Atomic Habits (Revised) "),
		ISBN:  pointer.To(""),
		Mood:  []string{"motivating"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Atomic Habits (Revised)", updated.Title)
	assert.Nil(t, updated.ISBN)
	assert.Equal(t, []string{"motivating"}, updated.Mood)
	assert.Equal(t, "James Clear", updated.Author)
	assert.Equal(t, []string{"self-help"}, updated.Genres)
}

/*
TestDelete removes the book for administrators only.
*/
func TestDelete(t *testing.T) {
	service, repo := newService(false)
	existing, err := service.Create(asAdmin(), validInput())
	require.NoError(t, err)

	assert.True(t, apperr.HasCode(service.Delete(asMember(), existing.ID), apperr.CodeForbidden))
	require.NoError(t, service.Delete(asAdmin(), existing.ID))
	assert.Equal(t, []string{existing.ID}, repo.deleted)
	assert.True(t, apperr.HasCode(service.Delete(asAdmin(), existing.ID), apperr.CodeNotFound))
}

/*
TestGet_RecomputesRating derives rating and count from live reviews.
*/
func TestGet_RecomputesRating(t *testing.T) {
	service, repo := newService(false)
	existing, err := service.Create(asAdmin(), validInput())
	require.NoError(t, err)

	repo.books[existing.ID].Rating = 1.0
	repo.reviews[existing.ID] = []*book.Review{{Rating: 5}, {Rating: 4}, {Rating: 4}}

	detail, err := service.Get(context.Background(), existing.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.3, detail.Rating)
	assert.Equal(t, 3, detail.ReviewCount)
	assert.Len(t, detail.Reviews, 3)
}

/*
TestGet_NoReviews keeps the catalogue rating and renders an empty list.
*/
func TestGet_NoReviews(t *testing.T) {
	service, repo := newService(false)
	existing, err := service.Create(asAdmin(), validInput())
	require.NoError(t, err)
	repo.books[existing.ID].Rating = 3.9

	detail, err := service.Get(context.Background(), existing.ID)
	require.NoError(t, err)
	assert.Equal(t, 3.9, detail.Rating)
	assert.NotNil(t, detail.Reviews)
	assert.Empty(t, detail.Reviews)
}

/*
TestAverageRating rounds to one decimal.
*/
func TestAverageRating(t *testing.T) {
	assert.Equal(t, 0.0, book.AverageRating(nil))
	assert.Equal(t, 4.5, book.AverageRating([]*book.Review{{Rating: 4}, {Rating: 5}}))
	assert.Equal(t, 3.7, book.AverageRating([]*book.Review{{Rating: 3}, {Rating: 4}, {Rating: 4}}))
}
