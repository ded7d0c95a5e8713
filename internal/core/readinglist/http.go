// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package readinglist

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

// Routes mounts the reading-list endpoints. Every route needs a session.
//
// # Endpoints
//   - GET    /?status=  : caller's items
//   - POST   /
//   - PATCH  /{id}      : owner
//   - DELETE /{id}      : owner
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.listItems)
	router.Post("/", handler.addItem)
	router.Patch("/{id}", handler.updateItem)
	router.Delete("/{id}", handler.removeItem)

	return router
}

func (handler *Handler) listItems(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	items, total, err := handler.service.List(request.Context(),
		requestutil.Query(request, "status"), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, items, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) addItem(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, item)
}

func (handler *Handler) updateItem(writer http.ResponseWriter, request *http.Request) {
	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.Update(request.Context(), requestutil.ID(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, item)
}

func (handler *Handler) removeItem(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.ID(request)); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Removed from reading list")
}
