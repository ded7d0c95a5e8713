// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package readinglist

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/taibuivan/bookwise/internal/platform/apperr"
	"github.com/taibuivan/bookwise/internal/platform/ctxutil"
	"github.com/taibuivan/bookwise/internal/platform/gate"
	"github.com/taibuivan/bookwise/internal/platform/metrics"
	"github.com/taibuivan/bookwise/internal/platform/validate"
	"github.com/taibuivan/bookwise/pkg/uuid"
)

// maxUpdateAttempts bounds the reload-and-retry loop when another request
// changes an item's status between our read and our write.
const maxUpdateAttempts = 3

type Service struct {
	repo   Repository
	books  BookReader
	gate   *gate.Gate
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, books BookReader, mutationGate *gate.Gate, logger *slog.Logger) *Service {
	return &Service{repo: repo, books: books, gate: mutationGate, logger: logger, now: time.Now}
}

// List returns the caller's items. Reading the list needs a session but is not a mutation.
func (service *Service) List(context context.Context, status string, limit, offset int) ([]*Item, int, error) {
	callerID, ok := ctxutil.GetUserID(context)
	if !ok {
		return nil, 0, apperr.Unauthorized("Authentication required")
	}

	if status != "" {
		if err := (&validate.Validator{}).OneOf(FieldStatus, status, Statuses...).Err(); err != nil {
			return nil, 0, err
		}
	}

	return service.repo.List(context, callerID, status, limit, offset)
}

// CreateInput is the payload for adding a book to the caller's list.
type CreateInput struct {
	BookID     string  `json:"bookId"     validate:"required,uuid"`
	Status     string  `json:"status"     validate:"required,oneof=want-to-read currently-reading read"`
	Progress   *int    `json:"progress"   validate:"omitnil,gte=0,lte=100"`
	StartedAt  *string `json:"startedAt"  validate:"omitnil,datetime=2006-01-02T15:04:05Z07:00"`
	FinishedAt *string `json:"finishedAt" validate:"omitnil,datetime=2006-01-02T15:04:05Z07:00"`
}

// UpdateInput carries the optional changes to an item. Timestamps are RFC 3339.
type UpdateInput struct {
	Status     *string `json:"status"     validate:"omitnil,oneof=want-to-read currently-reading read"`
	Progress   *int    `json:"progress"   validate:"omitnil,gte=0,lte=100"`
	StartedAt  *string `json:"startedAt"  validate:"omitnil,datetime=2006-01-02T15:04:05Z07:00"`
	FinishedAt *string `json:"finishedAt" validate:"omitnil,datetime=2006-01-02T15:04:05Z07:00"`
}

/*
Create adds a book to the caller's list.

Description: Starting a book stamps startedAt and finishing it stamps
finishedAt and sets progress to 100, unless the client supplied those
values. Adding a book as read counts it.

Returns:
  - *Item: Created entity
  - error: READ_ONLY_MODE, UNAUTHORIZED, VALIDATION_ERROR, NOT_FOUND (book), CONFLICT
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Item, error) {
	callerID, err := service.gate.Begin(context)
	if err != nil {
		return nil, err
	}
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
		return nil, apperr.Conflict("This book is already in your reading list")
	}

	item := &Item{
		ID:         uuid.New(),
		UserID:     callerID,
		BookID:     input.BookID,
		StartedAt:  parseTime(input.StartedAt),
		FinishedAt: parseTime(input.FinishedAt),
	}
	service.transition(item, input.Status)
	if input.Progress != nil {
		item.Progress = *input.Progress
	}

	if err := service.repo.Create(context, item); err != nil {
		return nil, err
	}

	metrics.RecordMutation("reading_list_item", "create")
	service.logger.InfoContext(context, "reading_list_item_added",
		slog.String("item_id", item.ID),
		slog.String("book_id", item.BookID),
		slog.String("status", item.Status),
		slog.String("user_id", callerID),
	)

	return service.repo.FindByID(context, item.ID)
}

/*
Update changes the caller's own item.

Description: The booksRead adjustment depends on the status the item had
before the change. When another request changes that status first, the
item is reloaded and the change reapplied, up to maxUpdateAttempts times.

Returns:
  - *Item: Updated entity
  - error: READ_ONLY_MODE, UNAUTHORIZED, NOT_FOUND, FORBIDDEN, VALIDATION_ERROR, CONFLICT
*/
func (service *Service) Update(context context.Context, id string, input UpdateInput) (*Item, error) {
	callerID, err := service.gate.Begin(context)
	if err != nil {
		return nil, err
	}

	item, err := service.load(context, id)
	if err != nil {
		return nil, err
	}
	if err := service.gate.RequireOwner(callerID, item.UserID, "You can only edit your own reading list"); err != nil {
		return nil, err
	}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		before := item.Status
		service.apply(item, input)

		err = service.repo.Update(context, item, before)
		if err == nil {
			metrics.RecordMutation("reading_list_item", "update")
			service.logger.InfoContext(context, "reading_list_item_updated",
				slog.String("item_id", id),
				slog.String("from", before),
				slog.String("to", item.Status),
				slog.Int("books_read_delta", ReadDelta(before, item.Status)),
				slog.Int("attempt", attempt),
			)
			return item, nil
		}
		if !errors.Is(err, ErrStatusChanged) {
			return nil, err
		}
		if attempt == maxUpdateAttempts {
			service.logger.WarnContext(context, "reading_list_item_update_contended", slog.String("item_id", id))
			return nil, apperr.Conflict("This item is being changed by another request. Try again.")
		}

		if item, err = service.load(context, id); err != nil {
			return nil, err
		}
	}
}

// apply copies the requested changes onto item. Explicit progress and
// timestamps win over the values a status transition would stamp.
func (service *Service) apply(item *Item, input UpdateInput) {
	if input.StartedAt != nil {
		item.StartedAt = parseTime(input.StartedAt)
	}
	if input.FinishedAt != nil {
		item.FinishedAt = parseTime(input.FinishedAt)
	}
	if input.Status != nil {
		service.transition(item, *input.Status)
	}
	if input.Progress != nil {
		item.Progress = *input.Progress
	}
}

// Delete removes the caller's own item. Removing a read book uncounts it.
func (service *Service) Delete(context context.Context, id string) error {
	callerID, err := service.gate.Begin(context)
	if err != nil {
		return err
	}

	item, err := service.load(context, id)
	if err != nil {
		return err
	}
	if err := service.gate.RequireOwner(callerID, item.UserID, "You can only edit your own reading list"); err != nil {
		return err
	}

	if err := service.repo.Delete(context, item); err != nil {
		return err
	}

	metrics.RecordMutation("reading_list_item", "delete")
	service.logger.InfoContext(context, "reading_list_item_removed", slog.String("item_id", id), slog.String("user_id", callerID))
	return nil
}

// transition moves item into status and stamps the matching timestamp.
func (service *Service) transition(item *Item, status string) {
	if status == item.Status {
		return
	}
	item.Status = status

	now := service.now().UTC()
	switch status {
	case StatusCurrentlyReading:
		if item.StartedAt == nil {
			item.StartedAt = &now
		}
	case StatusRead:
		if item.FinishedAt == nil {
			item.FinishedAt = &now
		}
		item.Progress = 100
	}
}

func (service *Service) load(context context.Context, id string) (*Item, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound("Reading list item")
	}
	return service.repo.FindByID(context, id)
}

// parseTime reads a timestamp already checked by the datetime rule.
func parseTime(value *string) *time.Time {
	if value == nil {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		return nil
	}
	return &parsed
}
