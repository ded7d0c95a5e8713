// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package like

import (
	"context"
	"log/slog"

	"github.com/taibuivan/bookwise/internal/platform/gate"
	"github.com/taibuivan/bookwise/internal/platform/metrics"
	"github.com/taibuivan/bookwise/internal/platform/validate"
	"github.com/taibuivan/bookwise/pkg/pointer"
)

type Service struct {
	repo   Repository
	gate   *gate.Gate
	logger *slog.Logger
}

func NewService(repo Repository, mutationGate *gate.Gate, logger *slog.Logger) *Service {
	return &Service{repo: repo, gate: mutationGate, logger: logger}
}

// ToggleInput names exactly one target.
type ToggleInput struct {
	ReviewID     *string `json:"reviewId"     validate:"omitempty,uuid"`
	DiscussionID *string `json:"discussionId" validate:"omitempty,uuid"`
}

/*
Toggle likes or unlikes a review or discussion for the caller.

Returns:
  - *Result: New state, message and counter
  - error: READ_ONLY_MODE, UNAUTHORIZED, VALIDATION_ERROR (not exactly one target), NOT_FOUND
*/
func (service *Service) Toggle(context context.Context, input ToggleInput) (*Result, error) {
	callerID, err := service.gate.Begin(context)
	if err != nil {
		return nil, err
	}

	input.ReviewID = pointer.Blank(input.ReviewID)
	input.DiscussionID = pointer.Blank(input.DiscussionID)

	both := input.ReviewID != nil && input.DiscussionID != nil
	neither := input.ReviewID == nil && input.DiscussionID == nil
	err = (&validate.Validator{}).
		Merge(validate.Struct(input)).
		Custom(FieldReviewID, neither, "Either reviewId or discussionId is required").
		Custom(FieldReviewID, both, "Cannot be combined with discussionId").
		Err()
	if err != nil {
		return nil, err
	}

	target := Target{Kind: KindReview}
	if input.ReviewID != nil {
		target.ID = *input.ReviewID
	} else {
		target = Target{Kind: KindDiscussion, ID: *input.DiscussionID}
	}

	liked, count, err := service.repo.Toggle(context, callerID, target)
	if err != nil {
		return nil, err
	}

	result := &Result{Liked: liked, Count: count, Message: "Like removed"}
	if liked {
		result.Message = "Like added"
	}

	operation := "unlike"
	if liked {
		operation = "like"
	}
	metrics.RecordMutation(target.Kind+"_like", operation)
	service.logger.InfoContext(context, "like_toggled",
		slog.String("target_kind", target.Kind),
		slog.String("target_id", target.ID),
		slog.Bool("liked", liked),
		slog.Int("count", count),
		slog.String("user_id", callerID),
	)
	return result, nil
}

// targetName is the resource name used in NotFound messages.
func targetName(kind string) string {
	if kind == KindDiscussion {
		return "Discussion"
	}
	return "Review"
}
