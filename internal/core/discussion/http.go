// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package discussion

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/bookwise/internal/platform/middleware"
	requestutil "github.com/taibuivan/bookwise/internal/platform/request"
	"github.com/taibuivan/bookwise/internal/platform/respond"
	"github.com/taibuivan/bookwise/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the discussion endpoints.
//
// # Endpoints
//   - GET    /          : filter by category, bookId, userId, search
//   - GET    /{id}      : thread with comments, counts a view
//   - POST   /          : authenticated
//   - PATCH  /{id}      : owner
//   - PATCH  /{id}/pin  : admin
//   - DELETE /{id}      : owner or admin
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listDiscussions)
	router.Get("/{id}", handler.getDiscussion)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)

		protected.Post("/", handler.createDiscussion)
		protected.Patch("/{id}", handler.updateDiscussion)
		protected.Patch("/{id}/pin", handler.pinDiscussion)
		protected.Delete("/{id}", handler.deleteDiscussion)
	})

	return router
}

func (handler *Handler) listDiscussions(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	filter := Filter{
		Category: requestutil.Query(request, "category"),
		BookID:   requestutil.Query(request, "bookId"),
		UserID:   requestutil.Query(request, "userId"),
		Search:   requestutil.Query(request, "search"),
	}

	discussions, total, err := handler.service.List(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, discussions, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getDiscussion(writer http.ResponseWriter, request *http.Request) {
	detail, err := handler.service.Get(request.Context(), requestutil.ID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, detail)
}

func (handler *Handler) createDiscussion(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	discussion, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, discussion)
}

func (handler *Handler) updateDiscussion(writer http.ResponseWriter, request *http.Request) {
	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	discussion, err := handler.service.Update(request.Context(), requestutil.ID(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, discussion)
}

func (handler *Handler) pinDiscussion(writer http.ResponseWriter, request *http.Request) {
	var input PinInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	discussion, err := handler.service.Pin(request.Context(), requestutil.ID(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, discussion)
}

func (handler *Handler) deleteDiscussion(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.ID(request)); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Discussion deleted successfully")
}
