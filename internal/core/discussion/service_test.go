// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package discussion_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookwise/internal/core/book"
	"github.com/taibuivan/bookwise/internal/core/discussion"
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

type memoryDiscussions struct {
	mu                 sync.Mutex
	discussions        map[string]*discussion.Discussion
	comments           map[string][]*discussion.Comment
	discussionsStarted map[string]int
}

func newMemoryDiscussions() *memoryDiscussions {
	return &memoryDiscussions{
		discussions:        map[string]*discussion.Discussion{},
		comments:           map[string][]*discussion.Comment{},
		discussionsStarted: map[string]int{},
	}
}

func (m *memoryDiscussions) List(_ context.Context, filter discussion.Filter, _, _ int) ([]*discussion.Discussion, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	matches := []*discussion.Discussion{}
	for _, entry := range m.discussions {
		if filter.Category != "" && entry.Category != filter.Category {
			continue
		}
		matches = append(matches, entry)
	}
	return matches, len(matches), nil
}

func (m *memoryDiscussions) FindByID(_ context.Context, id string) (*discussion.Discussion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if entry, ok := m.discussions[id]; ok {
		copied := *entry
		return &copied, nil
	}
	return nil, apperr.NotFound("Discussion")
}

func (m *memoryDiscussions) Comments(_ context.Context, discussionID string) ([]*discussion.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.comments[discussionID], nil
}

func (m *memoryDiscussions) IncrementViews(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.discussions[id].Views++
	return nil
}

func (m *memoryDiscussions) Create(_ context.Context, entry *discussion.Discussion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *entry
	m.discussions[entry.ID] = &copied
	m.discussionsStarted[entry.UserID]++
	return nil
}

func (m *memoryDiscussions) Update(_ context.Context, entry *discussion.Discussion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *entry
	m.discussions[entry.ID] = &copied
	return nil
}

func (m *memoryDiscussions) SetPinned(_ context.Context, id string, pinned bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.discussions[id].IsPinned = pinned
	return nil
}

func (m *memoryDiscussions) Delete(_ context.Context, entry *discussion.Discussion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.discussions, entry.ID)
	m.discussionsStarted[entry.UserID]--
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

func newService(readOnly bool, repo *memoryDiscussions) *discussion.Service {
	books := staticBooks{bookID: {ID: bookID}}
	return discussion.NewService(repo, books, gatetest.New(readOnly, adminID), gatetest.Logger())
}

func as(userID string) context.Context {
	return gatetest.AsUser(context.Background(), userID)
}

func validInput() discussion.CreateInput {
	return discussion.CreateInput{
		Title:    "Favourite habit books?",
		Content:  "Looking for more books like Atomic Habits.",
		Category: discussion.CategoryRecommendation,
		BookID:   pointer.To(bookID),
	}
}

/*
TestCreate_CountsDiscussion bumps discussionsStarted and links the book.
*/
func TestCreate_CountsDiscussion(t *testing.T) {
	repo := newMemoryDiscussions()
	service := newService(false, repo)

	created, err := service.Create(as(aliceID), validInput())
	require.NoError(t, err)
	assert.Equal(t, aliceID, created.UserID)
	assert.Equal(t, bookID, *created.BookID)
	assert.Equal(t, 1, repo.discussionsStarted[aliceID])

	input := validInput()
	input.BookID = pointer.To("")
	created, err = service.Create(as(aliceID), input)
	require.NoError(t, err)
	assert.Nil(t, created.BookID)
}

/*
TestCreate_Validation rejects short text, unknown categories and missing books.
*/
func TestCreate_Validation(t *testing.T) {
	repo := newMemoryDiscussions()
	service := newService(false, repo)

	_, err := service.Create(as(aliceID), discussion.CreateInput{Title: "Hi", Content: "short", Category: "gossip"})
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, apperr.CodeValidation, appError.Code)
	assert.Len(t, appError.Details, 3)

	input := validInput()
	input.BookID = pointer.To(uuid.New())
	_, err = service.Create(as(aliceID), input)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	assert.Empty(t, repo.discussions)
}

/*
TestGet_CountsViewsAndNestsComments increments views and builds the thread.
*/
func TestGet_CountsViewsAndNestsComments(t *testing.T) {
	repo := newMemoryDiscussions()
	service := newService(false, repo)

	created, err := service.Create(as(aliceID), validInput())
	require.NoError(t, err)

	repo.comments[created.ID] = []*discussion.Comment{
		{ID: "c1", Content: "first"},
		{ID: "r1", ParentID: pointer.To("c1"), Content: "reply one"},
		{ID: "c2", Content: "second"},
		{ID: "r2", ParentID: pointer.To("c1"), Content: "reply two"},
	}

	detail, err := service.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, detail.Views)
	require.Len(t, detail.Comments, 2)
	assert.Equal(t, "c2", detail.Comments[0].ID)
	assert.Empty(t, detail.Comments[0].Replies)
	assert.Equal(t, "c1", detail.Comments[1].ID)
	require.Len(t, detail.Comments[1].Replies, 2)
	assert.Equal(t, "r1", detail.Comments[1].Replies[0].ID)

	_, err = service.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.discussions[created.ID].Views)
}

/*
TestGet_ReadOnlySkipsViews serves the thread without writing.
*/
func TestGet_ReadOnlySkipsViews(t *testing.T) {
	repo := newMemoryDiscussions()
	created, err := newService(false, repo).Create(as(aliceID), validInput())
	require.NoError(t, err)

	detail, err := newService(true, repo).Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Zero(t, detail.Views)
	assert.Zero(t, repo.discussions[created.ID].Views)
	assert.NotNil(t, detail.Comments)
}

/*
TestReadOnly blocks every mutation, administrators included.
*/
func TestReadOnly(t *testing.T) {
	repo := newMemoryDiscussions()
	created, err := newService(false, repo).Create(as(aliceID), validInput())
	require.NoError(t, err)

	service := newService(true, repo)
	_, err = service.Create(as(adminID), validInput())
	assert.ErrorIs(t, err, apperr.ErrReadOnly)
	_, err = service.Pin(as(adminID), created.ID, discussion.PinInput{Pinned: pointer.To(true)})
	assert.ErrorIs(t, err, apperr.ErrReadOnly)
	assert.ErrorIs(t, service.Delete(as(adminID), created.ID), apperr.ErrReadOnly)

	assert.Len(t, repo.discussions, 1)
	assert.False(t, repo.discussions[created.ID].IsPinned)
}

/*
TestUpdate_OwnerOnly applies partial changes for the owner only.
*/
func TestUpdate_OwnerOnly(t *testing.T) {
	repo := newMemoryDiscussions()
	service := newService(false, repo)
	created, err := service.Create(as(aliceID), validInput())
	require.NoError(t, err)

	_, err = service.Update(as(adminID), created.ID, discussion.UpdateInput{Title: pointer.To("Admins cannot edit")})
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))

	updated, err := service.Update(as(aliceID), created.ID, discussion.UpdateInput{
		Category: pointer.To(discussion.CategoryGeneral),
		BookID:   pointer.To(""),
	})
	require.NoError(t, err)
	assert.Equal(t, discussion.CategoryGeneral, updated.Category)
	assert.Nil(t, updated.BookID)
	assert.Equal(t, "Favourite habit books?", updated.Title)
}

/*
TestUpdate_BookLink rejects malformed book ids but accepts an empty one.
*/
func TestUpdate_BookLink(t *testing.T) {
	repo := newMemoryDiscussions()
	service := newService(false, repo)
	created, err := service.Create(as(aliceID), validInput())
	require.NoError(t, err)

	_, err = service.Update(as(aliceID), created.ID, discussion.UpdateInput{BookID: pointer.To("nope")})
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, []apperr.FieldError{{Field: "bookId", Message: "Must be a valid UUID"}}, appError.Details)
	assert.Equal(t, bookID, *repo.discussions[created.ID].BookID)

	unlinked, err := service.Update(as(aliceID), created.ID, discussion.UpdateInput{BookID: pointer.To("")})
	require.NoError(t, err)
	assert.Nil(t, unlinked.BookID)
}

/*
TestPin_AdminOnly lets administrators pin and refuses owners.
*/
func TestPin_AdminOnly(t *testing.T) {
	repo := newMemoryDiscussions()
	service := newService(false, repo)
	created, err := service.Create(as(aliceID), validInput())
	require.NoError(t, err)

	_, err = service.Pin(as(aliceID), created.ID, discussion.PinInput{Pinned: pointer.To(true)})
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))

	_, err = service.Pin(as(adminID), created.ID, discussion.PinInput{})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	pinned, err := service.Pin(as(adminID), created.ID, discussion.PinInput{Pinned: pointer.To(true)})
	require.NoError(t, err)
	assert.True(t, pinned.IsPinned)
	assert.True(t, repo.discussions[created.ID].IsPinned)
}

/*
TestDelete_OwnerOrAdmin decrements the owner's counter whoever deletes.
*/
func TestDelete_OwnerOrAdmin(t *testing.T) {
	repo := newMemoryDiscussions()
	service := newService(false, repo)

	first, err := service.Create(as(aliceID), validInput())
	require.NoError(t, err)
	second, err := service.Create(as(aliceID), validInput())
	require.NoError(t, err)
	require.Equal(t, 2, repo.discussionsStarted[aliceID])

	assert.True(t, apperr.HasCode(service.Delete(as(bobID), first.ID), apperr.CodeForbidden))

	require.NoError(t, service.Delete(as(adminID), first.ID))
	assert.Equal(t, 1, repo.discussionsStarted[aliceID])
	assert.Zero(t, repo.discussionsStarted[adminID])

	require.NoError(t, service.Delete(as(aliceID), second.ID))
	assert.Zero(t, repo.discussionsStarted[aliceID])

	assert.True(t, apperr.HasCode(service.Delete(as(aliceID), "not-a-uuid"), apperr.CodeNotFound))
}

/*
TestList_RejectsUnknownCategory validates filters before querying.
*/
func TestList_RejectsUnknownCategory(t *testing.T) {
	service := newService(false, newMemoryDiscussions())

	_, _, err := service.List(context.Background(), discussion.Filter{Category: "gossip"}, 20, 0)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	items, total, err := service.List(context.Background(), discussion.Filter{Category: discussion.CategoryGeneral}, 20, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)
}
