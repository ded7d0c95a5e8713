// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"log/slog"

	"github.com/taibuivan/bookwise/internal/platform/apperr"
	"github.com/taibuivan/bookwise/internal/platform/gate"
	"github.com/taibuivan/bookwise/internal/platform/metrics"
	"github.com/taibuivan/bookwise/internal/platform/validate"
	"github.com/taibuivan/bookwise/pkg/pointer"
	"github.com/taibuivan/bookwise/pkg/uuid"
)

type Service struct {
	repo        Repository
	discussions DiscussionReader
	gate        *gate.Gate
	logger      *slog.Logger
}

func NewService(repo Repository, discussions DiscussionReader, mutationGate *gate.Gate, logger *slog.Logger) *Service {
	return &Service{repo: repo, discussions: discussions, gate: mutationGate, logger: logger}
}

// List returns one page of a thread's comments. discussionID is mandatory.
func (service *Service) List(context context.Context, discussionID string, limit, offset int) ([]*Comment, int, error) {
	validator := (&validate.Validator{}).Required(FieldDiscussionID, discussionID)
	if discussionID != "" {
		validator.UUID(FieldDiscussionID, discussionID)
	}
	if err := validator.Err(); err != nil {
		return nil, 0, err
	}

	return service.repo.List(context, discussionID, limit, offset)
}

// CreateInput is the payload for posting a comment or a reply.
type CreateInput struct {
	DiscussionID string  `json:"discussionId" validate:"required,uuid"`
	Content      string  `json:"content"      validate:"required,notblank,max=5000"`
	ParentID     *string `json:"parentId"     validate:"omitempty,uuid"`
}

// UpdateInput replaces the content of a comment.
type UpdateInput struct {
	Content *string `json:"content" validate:"required,notblank,max=5000"`
}

/*
Create posts a comment for the caller.

Description: A reply must target a top-level comment of the same thread.

Returns:
  - *Comment: Created entity
  - error: READ_ONLY_MODE, UNAUTHORIZED, VALIDATION_ERROR, NOT_FOUND (thread or parent)
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Comment, error) {
	callerID, err := service.gate.Begin(context)
	if err != nil {
		return nil, err
	}

	input.ParentID = pointer.Blank(input.ParentID)
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	if _, err := service.discussions.FindByID(context, input.DiscussionID); err != nil {
		return nil, err
	}

	if input.ParentID != nil {
		parent, err := service.repo.FindByID(context, *input.ParentID)
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, apperr.NotFound("Parent comment")
		}
		if err != nil {
			return nil, err
		}

		err = (&validate.Validator{}).
			Custom(FieldParentID, parent.DiscussionID != input.DiscussionID, "Parent comment belongs to another discussion").
			Custom(FieldParentID, parent.ParentID != nil, "Replies cannot be nested").
			Err()
		if err != nil {
			return nil, err
		}
	}

	comment := &Comment{
		ID:           uuid.New(),
		DiscussionID: input.DiscussionID,
		UserID:       callerID,
		ParentID:     input.ParentID,
		Content:      input.Content,
	}
	if err := service.repo.Create(context, comment); err != nil {
		return nil, err
	}

	metrics.RecordMutation("comment", "create")
	service.logger.InfoContext(context, "comment_created",
		slog.String("comment_id", comment.ID),
		slog.String("discussion_id", comment.DiscussionID),
		slog.Bool("reply", comment.ParentID != nil),
		slog.String("user_id", callerID),
	)

	return service.repo.FindByID(context, comment.ID)
}

// Update edits the caller's own comment.
func (service *Service) Update(context context.Context, id string, input UpdateInput) (*Comment, error) {
	callerID, err := service.gate.Begin(context)
	if err != nil {
		return nil, err
	}

	comment, err := service.load(context, id)
	if err != nil {
		return nil, err
	}
	if err := service.gate.RequireOwner(callerID, comment.UserID, "You can only edit your own comments"); err != nil {
		return nil, err
	}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	comment.Content = *input.Content
	if err := service.repo.Update(context, comment); err != nil {
		return nil, err
	}

	metrics.RecordMutation("comment", "update")
	service.logger.InfoContext(context, "comment_updated", slog.String("comment_id", id), slog.String("user_id", callerID))
	return comment, nil
}

// Delete removes the caller's own comment and its replies.
func (service *Service) Delete(context context.Context, id string) error {
	callerID, err := service.gate.Begin(context)
	if err != nil {
		return err
	}

	comment, err := service.load(context, id)
	if err != nil {
		return err
	}
	if err := service.gate.RequireOwner(callerID, comment.UserID, "You can only delete your own comments"); err != nil {
		return err
	}

	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	metrics.RecordMutation("comment", "delete")
	service.logger.InfoContext(context, "comment_deleted", slog.String("comment_id", id), slog.String("user_id", callerID))
	return nil
}

func (service *Service) load(context context.Context, id string) (*Comment, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound("Comment")
	}
	return service.repo.FindByID(context, id)
}
