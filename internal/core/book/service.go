// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/taibuivan/bookwise/internal/platform/apperr"
	"github.com/taibuivan/bookwise/internal/platform/gate"
	"github.com/taibuivan/bookwise/internal/platform/metrics"
	"github.com/taibuivan/bookwise/internal/platform/validate"
	"github.com/taibuivan/bookwise/pkg/pointer"
	"github.com/taibuivan/bookwise/pkg/uuid"
)

// Service implements the catalogue use cases.
type Service struct {
	repo   Repository
	gate   *gate.Gate
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs a book [Service].
func NewService(repo Repository, mutationGate *gate.Gate, logger *slog.Logger) *Service {
	return &Service{repo: repo, gate: mutationGate, logger: logger, now: time.Now}
}

// # Queries

// List returns one page of the catalogue.
func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Book, int, error) {
	return service.repo.List(context, filter, limit, offset)
}

/*
Get returns a book with its reviews.

Description: When the book has reviews, rating and reviewCount are
recomputed from them (mean rounded to one decimal).

Returns:
  - *Detail: Book plus reviews
  - error: apperr.NotFound or storage failures
*/
func (service *Service) Get(context context.Context, id string) (*Detail, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound("Book")
	}

	book, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	reviews, err := service.repo.Reviews(context, id)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []*Review{}
	}

	if len(reviews) > 0 {
		book.Rating = AverageRating(reviews)
		book.ReviewCount = len(reviews)
	}

	return &Detail{Book: *book, Reviews: reviews}, nil
}

// AverageRating is the arithmetic mean of the review ratings rounded to one decimal.
func AverageRating(reviews []*Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, review := range reviews {
		sum += review.Rating
	}
	return math.Round(float64(sum)/float64(len(reviews))*10) / 10
}

// # Mutations

// CreateInput is the payload for adding a book to the catalogue.
type CreateInput struct {
	Title         string   `json:"title"         validate:"required,notblank,max=300"`
	Author        string   `json:"author"        validate:"required,notblank,max=200"`
	CoverImage    string   `json:"coverImage"    validate:"required,url"`
	Genres        []string `json:"genres"        validate:"required,min=1,dive,notblank"`
	PublishedYear int      `json:"publishedYear" validate:"required,gte=1000"`
	Description   string   `json:"description"   validate:"required,min=10"`
	ISBN          *string  `json:"isbn"          validate:"omitnil,max=20"`
	PageCount     *int     `json:"pageCount"     validate:"omitnil,gte=1"`
	Mood          []string `json:"mood"          validate:"omitnil,dive,notblank"`
}

// UpdateInput is CreateInput with every field optional.
type UpdateInput struct {
	Title         *string  `json:"title"         validate:"omitnil,notblank,max=300"`
	Author        *string  `json:"author"        validate:"omitnil,notblank,max=200"`
	CoverImage    *string  `json:"coverImage"    validate:"omitnil,url"`
	Genres        []string `json:"genres"        validate:"omitnil,min=1,dive,notblank"`
	PublishedYear *int     `json:"publishedYear" validate:"omitnil,gte=1000"`
	Description   *string  `json:"description"   validate:"omitnil,min=10"`
	ISBN          *string  `json:"isbn"          validate:"omitnil,max=20"`
	PageCount     *int     `json:"pageCount"     validate:"omitnil,gte=1"`
	Mood          []string `json:"mood"          validate:"omitnil,dive,notblank"`
}

// checkYear reports a publication year after next year, which tags cannot express.
func (service *Service) checkYear(validator *validate.Validator, year *int) {
	latest := service.now().Year() + 1
	if year != nil {
		validator.Custom(FieldPublishedYear, *year > latest, fmt.Sprintf("Must be at most %d", latest))
	}
}

/*
Create adds a book to the catalogue. Administrators only.

Returns:
  - *Book: Created entity
  - error: READ_ONLY_MODE, UNAUTHORIZED, FORBIDDEN, VALIDATION_ERROR or storage failures
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Book, error) {
	callerID, err := service.gate.Begin(context)
	if err != nil {
		return nil, err
	}
	if err := service.gate.RequireAdmin(context, callerID); err != nil {
		return nil, err
	}

	validator := (&validate.Validator{}).Merge(validate.Struct(input))
	service.checkYear(validator, &input.PublishedYear)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	book := &Book{
		ID:            uuid.New(),
		Title:         strings.TrimSpace(input.Title),
		Author:        strings.TrimSpace(input.Author),
		ISBN:          pointer.Blank(input.ISBN),
		Description:   input.Description,
		CoverImage:    input.CoverImage,
		Genres:        input.Genres,
		Mood:          input.Mood,
		PublishedYear: input.PublishedYear,
		PageCount:     input.PageCount,
	}
	if book.Mood == nil {
		book.Mood = []string{}
	}

	if err := service.repo.Create(context, book); err != nil {
		return nil, err
	}

	metrics.RecordMutation("book", "create")
	service.logger.InfoContext(context, "book_created",
		slog.String("book_id", book.ID),
		slog.String("title", book.Title),
		slog.String("admin_id", callerID),
	)
	return book, nil
}

/*
Update edits a book. Administrators only.

Description: The book is loaded before the admin check, so a missing book
reports NotFound even to non-administrators.
*/
func (service *Service) Update(context context.Context, id string, input UpdateInput) (*Book, error) {
	callerID, err := service.gate.Begin(context)
	if err != nil {
		return nil, err
	}

	book, err := service.load(context, id)
	if err != nil {
		return nil, err
	}
	if err := service.gate.RequireAdmin(context, callerID); err != nil {
		return nil, err
	}

	validator := (&validate.Validator{}).Merge(validate.Struct(input))
	service.checkYear(validator, input.PublishedYear)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if input.Title != nil {
		book.Title = strings.TrimSpace(*input.Title)
	}
	if input.Author != nil {
		book.Author = strings.TrimSpace(*input.Author)
	}
	if input.ISBN != nil {
		book.ISBN = pointer.Blank(input.ISBN)
	}
	pointer.Apply(&book.CoverImage, input.CoverImage)
	pointer.Apply(&book.PublishedYear, input.PublishedYear)
	pointer.Apply(&book.Description, input.Description)
	if input.PageCount != nil {
		book.PageCount = input.PageCount
	}
	if input.Genres != nil {
		book.Genres = input.Genres
	}
	if input.Mood != nil {
		book.Mood = input.Mood
	}

	if err := service.repo.Update(context, book); err != nil {
		return nil, err
	}

	metrics.RecordMutation("book", "update")
	service.logger.InfoContext(context, "book_updated", slog.String("book_id", book.ID), slog.String("admin_id", callerID))
	return book, nil
}

// Delete removes a book and its reviews. Administrators only.
func (service *Service) Delete(context context.Context, id string) error {
	callerID, err := service.gate.Begin(context)
	if err != nil {
		return err
	}

	if _, err := service.load(context, id); err != nil {
		return err
	}
	if err := service.gate.RequireAdmin(context, callerID); err != nil {
		return err
	}

	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	metrics.RecordMutation("book", "delete")
	service.logger.WarnContext(context, "book_deleted", slog.String("book_id", id), slog.String("admin_id", callerID))
	return nil
}

// FindByID loads a book for other domains that reference one.
func (service *Service) FindByID(context context.Context, id string) (*Book, error) {
	return service.load(context, id)
}

func (service *Service) load(context context.Context, id string) (*Book, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound("Book")
	}
	return service.repo.FindByID(context, id)
}
