// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/bookwise/internal/platform/request"
	"github.com/taibuivan/bookwise/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts GET /?q=&type=&limit=.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.search)
	return router
}

func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	results, err := handler.service.Search(request.Context(), Query{
		Term:  requestutil.Query(request, "q"),
		Type:  requestutil.Query(request, "type"),
		Limit: requestutil.QueryInt(request, "limit", 0),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, results)
}
