// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/bookwise/internal/platform/middleware"
	requestutil "github.com/taibuivan/bookwise/internal/platform/request"
	"github.com/taibuivan/bookwise/internal/platform/respond"
	"github.com/taibuivan/bookwise/pkg/pagination"
	"github.com/taibuivan/bookwise/pkg/query"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the catalogue endpoints.
//
// # Endpoints
//   - GET    /      : filtered, sorted, paginated catalogue
//   - GET    /{id}  : book with reviews
//   - POST   /      : admin
//   - PATCH  /{id}  : admin
//   - DELETE /{id}  : admin
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public
	router.Get("/", handler.listBooks)
	router.Get("/{id}", handler.getBook)

	// Admin only, checked against the account row by the service
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireAuth)

		adminRoute.Post("/", handler.createBook)
		adminRoute.Patch("/{id}", handler.updateBook)
		adminRoute.Delete("/{id}", handler.deleteBook)
	})

	return router
}

func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Genres: query.StringSlice(requestutil.Query(request, "genre")),
		Search: requestutil.Query(request, "search"),
		SortBy: requestutil.Query(request, "sortBy"),
		Order:  requestutil.Query(request, "order"),
	}

	books, total, err := handler.service.List(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, books, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	detail, err := handler.service.Get(request.Context(), requestutil.ID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, detail)
}

func (handler *Handler) createBook(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, book)
}

func (handler *Handler) updateBook(writer http.ResponseWriter, request *http.Request) {
	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.Update(request.Context(), requestutil.ID(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, book)
}

func (handler *Handler) deleteBook(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.ID(request)); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, "Book deleted successfully")
}
