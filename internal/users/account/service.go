// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/bookwise/internal/platform/apperr"
	"github.com/taibuivan/bookwise/internal/platform/ctxutil"
	"github.com/taibuivan/bookwise/internal/platform/gate"
	"github.com/taibuivan/bookwise/internal/platform/metrics"
	"github.com/taibuivan/bookwise/internal/platform/validate"
	"github.com/taibuivan/bookwise/internal/users/auth"
	"github.com/taibuivan/bookwise/pkg/pointer"
	"github.com/taibuivan/bookwise/pkg/uuid"
)

// usernamePattern matches the handles produced at signup.
var usernamePattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// # Service Layer

// Service orchestrates profile reads and edits.
type Service struct {
	users    auth.UserRepository
	activity ActivityRepository
	gate     *gate.Gate
	logger   *slog.Logger
}

// NewService constructs a new [Service] with its repository dependencies.
func NewService(users auth.UserRepository, activity ActivityRepository, mutationGate *gate.Gate, logger *slog.Logger) *Service {
	return &Service{users: users, activity: activity, gate: mutationGate, logger: logger}
}

// # Profile Reads

/*
GetProfile returns a member with their recent activity.

Description: The three activity reads run concurrently. The email address
is cleared unless the caller is the member.

Parameters:
  - ctx: context.Context
  - userID: string

Returns:
  - *Profile: The hydrated profile
  - error: apperr.NotFound or storage failures
*/
func (service *Service) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	user, err := service.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if callerID, _ := ctxutil.GetUserID(ctx); callerID != user.ID {
		*user = user.Public()
	}

	profile := &Profile{User: *user}
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		reviews, err := service.activity.RecentReviews(groupCtx, userID, RecentLimit)
		profile.RecentReviews = reviews
		return err
	})
	group.Go(func() error {
		discussions, err := service.activity.RecentDiscussions(groupCtx, userID, RecentLimit)
		profile.RecentDiscussions = discussions
		return err
	})
	group.Go(func() error {
		items, err := service.activity.ReadingList(groupCtx, userID)
		profile.ReadingList = items
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return profile, nil
}

// # Profile Edits

// UpdateProfileInput defines the mutable subset of profile fields.
// An empty string clears bio and the links.
type UpdateProfileInput struct {
	Name           *string  `json:"name"           validate:"omitnil,notblank,min=2,max=100"`
	Username       *string  `json:"username"       validate:"omitnil,min=3,max=30"`
	Bio            *string  `json:"bio"            validate:"omitnil,max=500"`
	Website        *string  `json:"website"        validate:"omitnil,eq=|url"`
	GoodreadsURL   *string  `json:"goodreadsUrl"   validate:"omitnil,eq=|url"`
	TwitterURL     *string  `json:"twitterUrl"     validate:"omitnil,eq=|url"`
	FavoriteGenres []string `json:"favoriteGenres" validate:"omitnil,max=20,dive,notblank"`
	ReadingGoal    *int     `json:"readingGoal"    validate:"omitnil,gte=1,lte=1000"`
}

/*
UpdateProfile applies a partial set of changes to the caller's own profile.

Description: Fetches the existing user state, overrides provided fields, and
synchronizes the change to persistent storage. A username held by someone
else is a Conflict.

Returns:
  - *auth.User: The updated profile fields
  - error: READ_ONLY_MODE, UNAUTHORIZED, NOT_FOUND, FORBIDDEN, VALIDATION_ERROR, CONFLICT
*/
func (service *Service) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {
	callerID, err := service.gate.Begin(ctx)
	if err != nil {
		return nil, err
	}

	user, err := service.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := service.gate.RequireOwner(callerID, user.ID, "You can only edit your own profile"); err != nil {
		return nil, err
	}

	if input.Name != nil {
		input.Name = pointer.To(strings.TrimSpace(*input.Name))
	}
	if input.Username != nil {
		input.Username = pointer.To(strings.ToLower(strings.TrimSpace(*input.Username)))
	}

	validator := (&validate.Validator{}).Merge(validate.Struct(input))
	if input.Username != nil {
		validator.Custom(FieldUsername, !usernamePattern.MatchString(*input.Username),
			"Only lowercase letters, digits and underscores")
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if input.Username != nil && *input.Username != user.Username {
		taken, err := service.users.FindByUsername(ctx, *input.Username)
		if err != nil && !apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, err
		}
		if taken != nil {
			return nil, apperr.Conflict("Username is already taken")
		}
	}

	pointer.Apply(&user.Name, input.Name)
	pointer.Apply(&user.Username, input.Username)
	if input.Bio != nil {
		user.Bio = pointer.Blank(input.Bio)
	}
	if input.Website != nil {
		user.Website = pointer.Blank(input.Website)
	}
	if input.GoodreadsURL != nil {
		user.GoodreadsURL = pointer.Blank(input.GoodreadsURL)
	}
	if input.TwitterURL != nil {
		user.TwitterURL = pointer.Blank(input.TwitterURL)
	}
	if input.FavoriteGenres != nil {
		user.FavoriteGenres = input.FavoriteGenres
	}
	if input.ReadingGoal != nil {
		user.ReadingGoal = input.ReadingGoal
	}

	if err := service.users.Update(ctx, user); err != nil {
		return nil, err
	}

	metrics.RecordMutation("user", "update")
	service.logger.InfoContext(ctx, "profile_updated", slog.String("user_id", user.ID))
	return user, nil
}

func (service *Service) load(ctx context.Context, userID string) (*auth.User, error) {
	if !uuid.Valid(userID) {
		return nil, apperr.NotFound("User")
	}
	return service.users.FindByID(ctx, userID)
}
