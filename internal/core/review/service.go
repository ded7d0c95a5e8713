// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/bookwise/internal/platform/apperr"
	"github.com/taibuivan/bookwise/internal/platform/gate"
	"github.com/taibuivan/bookwise/internal/platform/metrics"
	"github.com/taibuivan/bookwise/internal/platform/validate"
	"github.com/taibuivan/bookwise/pkg/uuid"
)

// Service implements the review use cases.
type Service struct {
	repo   Repository
	books  BookReader
	gate   *gate.Gate
	logger *slog.Logger
}

// NewService constructs a review [Service].
func NewService(repo Repository, books BookReader, mutationGate *gate.Gate, logger *slog.Logger) *Service {
	return &Service{repo: repo, books: books, gate: mutationGate, logger: logger}
}

// # Queries

// List returns one page of reviews. Malformed ID filters are rejected.
func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Review, int, error) {
	validator := &validate.Validator{}
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

// Get returns a single review.
func (service *Service) Get(context context.Context, id string) (*Review, error) {
	return service.load(context, id)
}

// # Mutations

// CreateInput is the payload for reviewing a book.
type CreateInput struct {
	BookID  string   `json:"bookId"  validate:"required,uuid"`
	Rating  int      `json:"rating"  validate:"required,gte=1,lte=5"`
	Title   string   `json:"title"   validate:"required,min=5,max=200"`
	Content string   `json:"content" validate:"required,min=50"`
	Pros    []string `json:"pros"    validate:"omitnil,dive,notblank"`
	Cons    []string `json:"cons"    validate:"omitnil,dive,notblank"`
}

// UpdateInput is CreateInput with every field optional. The book cannot change.
type UpdateInput struct {
	Rating  *int     `json:"rating"  validate:"omitnil,gte=1,lte=5"`
	Title   *string  `json:"title"   validate:"omitnil,min=5,max=200"`
	Content *string  `json:"content" validate:"omitnil,min=50"`
	Pros    []string `json:"pros"    validate:"omitnil,dive,notblank"`
	Cons    []string `json:"cons"    validate:"omitnil,dive,notblank"`
}

/*
Create publishes a review for the caller.

Description: One review per reader and book. The existence pre-check gives
the friendly message; the unique index settles concurrent attempts.

Returns:
  - *Review: Created entity with author and book summaries
  - error: READ_ONLY_MODE, UNAUTHORIZED, VALIDATION_ERROR, NOT_FOUND (book), CONFLICT
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Review, error) {
	callerID, err := service.gate.Begin(context)
	if err != nil {
		return nil, err
	}

	input.Title = strings.TrimSpace(input.Title)
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	if _, err := service.books.FindByID(context, input.BookID); err != nil {
		return nil, err
	}

	exists, err := service.repo.Exists(context, callerID, input.BookID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("You have already reviewed this book")
	}

	review := &Review{
		ID:      uuid.New(),
		UserID:  callerID,
		BookID:  input.BookID,
		Rating:  input.Rating,
		Title:   input.Title,
		Content: input.Content,
		Pros:    orEmpty(input.Pros),
		Cons:    orEmpty(input.Cons),
	}
	if err := service.repo.Create(context, review); err != nil {
		return nil, err
	}

	metrics.RecordMutation("review", "create")
	service.logger.InfoContext(context, "review_created",
		slog.String("review_id", review.ID),
		slog.String("book_id", review.BookID),
		slog.String("user_id", callerID),
		slog.Int("rating", review.Rating),
	)

	return service.repo.FindByID(context, review.ID)
}

// Update edits the caller's own review.
func (service *Service) Update(context context.Context, id string, input UpdateInput) (*Review, error) {
	callerID, err := service.gate.Begin(context)
	if err != nil {
		return nil, err
	}

	review, err := service.load(context, id)
	if err != nil {
		return nil, err
	}
	if err := service.gate.RequireOwner(callerID, review.UserID, "You can only edit your own reviews"); err != nil {
		return nil, err
	}

	if input.Title != nil {
		trimmed := strings.TrimSpace(*input.Title)
		input.Title = &trimmed
	}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	if input.Rating != nil {
		review.Rating = *input.Rating
	}
	if input.Title != nil {
		review.Title = *input.Title
	}
	if input.Content != nil {
		review.Content = *input.Content
	}
	if input.Pros != nil {
		review.Pros = input.Pros
	}
	if input.Cons != nil {
		review.Cons = input.Cons
	}

	if err := service.repo.Update(context, review); err != nil {
		return nil, err
	}

	metrics.RecordMutation("review", "update")
	service.logger.InfoContext(context, "review_updated", slog.String("review_id", review.ID), slog.String("user_id", callerID))
	return review, nil
}

// Delete removes the caller's own review.
func (service *Service) Delete(context context.Context, id string) error {
	callerID, err := service.gate.Begin(context)
	if err != nil {
		return err
	}

	review, err := service.load(context, id)
	if err != nil {
		return err
	}
	if err := service.gate.RequireOwner(callerID, review.UserID, "You can only delete your own reviews"); err != nil {
		return err
	}

	if err := service.repo.Delete(context, review); err != nil {
		return err
	}

	metrics.RecordMutation("review", "delete")
	service.logger.InfoContext(context, "review_deleted",
		slog.String("review_id", review.ID),
		slog.String("book_id", review.BookID),
		slog.String("user_id", callerID),
	)
	return nil
}

func (service *Service) load(context context.Context, id string) (*Review, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound("Review")
	}
	return service.repo.FindByID(context, id)
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
