// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

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

// Routes mounts the comment endpoints.
//
// # Endpoints
//   - GET    /?discussionId=  : flat, oldest first
//   - POST   /                : authenticated
//   - PATCH  /{id}            : owner
//   - DELETE /{id}            : owner
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listComments)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)

		protected.Post("/", handler.createComment)
		protected.Patch("/{id}", handler.updateComment)
		protected.Delete("/{id}", handler.deleteComment)
	})

	return router
}

func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	comments, total, err := handler.service.List(request.Context(),
		requestutil.Query(request, "discussionId"), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, comment)
}

func (handler *Handler) updateComment(writer http.ResponseWriter, request *http.Request) {
	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Update(request.Context(), requestutil.ID(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comment)
}

func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.ID(request)); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Comment deleted successfully")
}
