// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/bookwise/internal/platform/middleware"
	requestutil "github.com/taibuivan/bookwise/internal/platform/request"
	"github.com/taibuivan/bookwise/internal/platform/respond"
)

// Handler implements the HTTP transport layer for member profiles.
type Handler struct {
	service *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] for profile endpoints.
//
// # Endpoints
//   - GET   /{id}  : public profile, email for the owner only
//   - PATCH /{id}  : owner
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{id}", handler.getProfile)
	router.With(middleware.RequireAuth).Patch("/{id}", handler.updateProfile)

	return router
}

/*
GET /api/v1/users/{id}.

Response:
  - 200: Profile
  - 404: apperr.NotFound
*/
func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	profile, err := handler.service.GetProfile(request.Context(), requestutil.ID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, profile)
}

/*
PATCH /api/v1/users/{id}.

Request (UpdateProfileInput):
  - name, username, bio, website, goodreadsUrl, twitterUrl, favoriteGenres, readingGoal (all optional)

Response:
  - 200: auth.User
  - 400: Validation errors or taken username
  - 403: Not the owner, or read-only mode
*/
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	var input UpdateProfileInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.UpdateProfile(request.Context(), requestutil.ID(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}
