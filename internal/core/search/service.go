// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/bookwise/internal/platform/validate"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

/*
Search runs the requested kinds concurrently.

Description: A blank term or unknown type is a validation error. The limit
falls back to DefaultLimit when unset and is capped at MaxLimit. The first
failing kind cancels the others.

Returns:
  - *Results: One list per requested kind
  - error: VALIDATION_ERROR or storage failures
*/
func (service *Service) Search(ctx context.Context, query Query) (*Results, error) {
	query.Term = strings.TrimSpace(query.Term)
	if query.Type == "" {
		query.Type = TypeAll
	}

	err := (&validate.Validator{}).
		Required("q", query.Term).
		OneOf("type", query.Type, TypeAll, TypeBooks, TypeDiscussions, TypeUsers).
		Err()
	if err != nil {
		return nil, err
	}

	limit := query.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	limit = min(limit, MaxLimit)

	wants := func(kind string) bool { return query.Type == TypeAll || query.Type == kind }

	results := &Results{}
	group, groupCtx := errgroup.WithContext(ctx)

	if wants(TypeBooks) {
		group.Go(func() error {
			books, err := service.repo.Books(groupCtx, query.Term, limit)
			results.Books = books
			return err
		})
	}
	if wants(TypeDiscussions) {
		group.Go(func() error {
			discussions, err := service.repo.Discussions(groupCtx, query.Term, limit)
			results.Discussions = discussions
			return err
		})
	}
	if wants(TypeUsers) {
		group.Go(func() error {
			users, err := service.repo.Users(groupCtx, query.Term, limit)
			results.Users = users
			return err
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	service.logger.DebugContext(ctx, "search_completed",
		slog.String("type", query.Type),
		slog.Int("books", len(results.Books)),
		slog.Int("discussions", len(results.Discussions)),
		slog.Int("users", len(results.Users)),
	)
	return results, nil
}
