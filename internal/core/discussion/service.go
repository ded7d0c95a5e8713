// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package discussion

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/taibuivan/bookwise/internal/platform/apperr"
	"github.com/taibuivan/bookwise/internal/platform/gate"
	"github.com/taibuivan/bookwise/internal/platform/metrics"
	"github.com/taibuivan/bookwise/internal/platform/validate"
	"github.com/taibuivan/bookwise/pkg/pointer"
	"github.com/taibuivan/bookwise/pkg/uuid"
)

// Service implements the discussion use cases.
type Service struct {
	repo   Repository
	books  BookReader
	gate   *gate.Gate
	logger *slog.Logger
}

// NewService constructs a discussion [Service].
func NewService(repo Repository, books BookReader, mutationGate *gate.Gate, logger *slog.Logger) *Service {
	return &Service{repo: repo, books: books, gate: mutationGate, logger: logger}
}

// # Queries

// List returns one page of threads.
func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Discussion, int, error) {
	validator := &validate.Validator{}
	if filter.Category != "" {
		validator.OneOf(FieldCategory, filter.Category, Categories...)
	}
	if filter.BookID != "" {
		validator.UUID(FieldBookID, filter.BookID)
	}
	if filter.UserID != "" {
		validator.UUID(FieldUserID, filter.UserID)
	}
	if err := validator.Err(); err != nil {
		return nil, 0, err
	}

	return service.repo.List(context, filter, limit, offset)
}

/*
Get returns a thread with its comments and counts the view.

Description: The view counter is a write, so it is skipped while the process
is read-only. The read itself always succeeds.

Returns:
  - *Detail: Thread plus nested comments
  - error: apperr.NotFound or storage failures
*/
func (service *Service) Get(context context.Context, id string) (*Detail, error) {
	discussion, err := service.load(context, id)
	if err != nil {
		return nil, err
	}

	if !service.gate.ReadOnly() {
		if err := service.repo.IncrementViews(context, id); err != nil {
			return nil, err
		}
		discussion.Views++
	}

	comments, err := service.repo.Comments(context, id)
	if err != nil {
		return nil, err
	}

	return &Detail{Discussion: *discussion, Comments: Thread(comments)}, nil
}

/*
Thread nests a flat, oldest-first comment list.

Returns top-level comments newest first, each carrying its replies oldest
first. Replies whose parent is missing are dropped.
*/
func Thread(comments []*Comment) []*Comment {
	byID := make(map[string]*Comment, len(comments))
	roots := []*Comment{}

	for _, comment := range comments {
		if comment.ParentID == nil {
			byID[comment.ID] = comment
			roots = append(roots, comment)
		}
	}

	for _, comment := range comments {
		if comment.ParentID == nil {
			continue
		}
		if parent, ok := byID[*comment.ParentID]; ok {
			parent.Replies = append(parent.Replies, comment)
		}
	}

	for _, root := range roots {
		if root.Replies == nil {
			root.Replies = []*Comment{}
		}
	}

	slices.Reverse(roots)
	return roots
}

// # Mutations

// CreateInput is the payload for starting a thread.
type CreateInput struct {
	Title    string  `json:"title"    validate:"required,min=5,max=200"`
	Content  string  `json:"content"  validate:"required,min=20"`
	Category string  `json:"category" validate:"required,oneof=general book-club genre recommendation"`
	BookID   *string `json:"bookId"   validate:"omitnil,eq=|uuid"`
}

// UpdateInput is CreateInput with every field optional. An empty bookId unlinks the book.
type UpdateInput struct {
	Title    *string `json:"title"    validate:"omitnil,min=5,max=200"`
	Content  *string `json:"content"  validate:"omitnil,min=20"`
	Category *string `json:"category" validate:"omitnil,oneof=general book-club genre recommendation"`
	BookID   *string `json:"bookId"   validate:"omitnil,eq=|uuid"`
}

// PinInput is the payload for pinning or unpinning a thread.
type PinInput struct {
	Pinned *bool `json:"pinned" validate:"required"`
}

/*
Create starts a thread for the caller.

Returns:
  - *Discussion: Created entity
  - error: READ_ONLY_MODE, UNAUTHORIZED, VALIDATION_ERROR, NOT_FOUND (book)
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Discussion, error) {
	callerID, err := service.gate.Begin(context)
	if err != nil {
		return nil, err
	}

	input.Title = strings.TrimSpace(input.Title)
	input.BookID = pointer.Blank(input.BookID)
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	if err := service.requireBook(context, input.BookID); err != nil {
		return nil, err
	}

	discussion := &Discussion{
		ID:       uuid.New(),
		UserID:   callerID,
		BookID:   input.BookID,
		Title:    input.Title,
		Content:  input.Content,
		Category: input.Category,
	}
	if err := service.repo.Create(context, discussion); err != nil {
		return nil, err
	}

	metrics.RecordMutation("discussion", "create")
	service.logger.InfoContext(context, "discussion_created",
		slog.String("discussion_id", discussion.ID),
		slog.String("category", discussion.Category),
		slog.String("user_id", callerID),
	)

	return service.repo.FindByID(context, discussion.ID)
}

// Update edits the caller's own thread.
func (service *Service) Update(context context.Context, id string, input UpdateInput) (*Discussion, error) {
	callerID, err := service.gate.Begin(context)
	if err != nil {
		return nil, err
	}

	discussion, err := service.load(context, id)
	if err != nil {
		return nil, err
	}
	if err := service.gate.RequireOwner(callerID, discussion.UserID, "You can only edit your own discussions"); err != nil {
		return nil, err
	}

	if input.Title != nil {
		trimmed := strings.TrimSpace(*input.Title)
		input.Title = &trimmed
	}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	if input.BookID != nil {
		discussion.BookID = pointer.Blank(input.BookID)
		if err := service.requireBook(context, discussion.BookID); err != nil {
			return nil, err
		}
	}
	pointer.Apply(&discussion.Title, input.Title)
	pointer.Apply(&discussion.Content, input.Content)
	pointer.Apply(&discussion.Category, input.Category)

	if err := service.repo.Update(context, discussion); err != nil {
		return nil, err
	}

	metrics.RecordMutation("discussion", "update")
	service.logger.InfoContext(context, "discussion_updated", slog.String("discussion_id", id), slog.String("user_id", callerID))

	return service.repo.FindByID(context, id)
}

// Pin sets the pinned flag. Administrators only.
func (service *Service) Pin(context context.Context, id string, input PinInput) (*Discussion, error) {
	callerID, err := service.gate.Begin(context)
	if err != nil {
		return nil, err
	}

	discussion, err := service.load(context, id)
	if err != nil {
		return nil, err
	}
	if err := service.gate.RequireAdmin(context, callerID); err != nil {
		return nil, err
	}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	if err := service.repo.SetPinned(context, id, *input.Pinned); err != nil {
		return nil, err
	}
	discussion.IsPinned = *input.Pinned

	metrics.RecordMutation("discussion", "pin")
	service.logger.InfoContext(context, "discussion_pinned",
		slog.String("discussion_id", id),
		slog.Bool("pinned", discussion.IsPinned),
		slog.String("admin_id", callerID),
	)
	return discussion, nil
}

/*
Delete removes a thread with its comments and likes.

Description: Owners and administrators may delete. The counter that moves is
the owner's, whoever deletes.
*/
func (service *Service) Delete(context context.Context, id string) error {
	callerID, err := service.gate.Begin(context)
	if err != nil {
		return err
	}

	discussion, err := service.load(context, id)
	if err != nil {
		return err
	}
	if err := service.gate.RequireOwnerOrAdmin(context, callerID, discussion.UserID, "You can only delete your own discussions"); err != nil {
		return err
	}

	if err := service.repo.Delete(context, discussion); err != nil {
		return err
	}

	metrics.RecordMutation("discussion", "delete")
	service.logger.InfoContext(context, "discussion_deleted",
		slog.String("discussion_id", id),
		slog.String("owner_id", discussion.UserID),
		slog.String("deleted_by", callerID),
	)
	return nil
}

// FindByID loads a thread for other domains that reference one.
func (service *Service) FindByID(context context.Context, id string) (*Discussion, error) {
	return service.load(context, id)
}

func (service *Service) load(context context.Context, id string) (*Discussion, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound("Discussion")
	}
	return service.repo.FindByID(context, id)
}

func (service *Service) requireBook(context context.Context, bookID *string) error {
	if bookID == nil {
		return nil
	}
	_, err := service.books.FindByID(context, *bookID)
	return err
}
