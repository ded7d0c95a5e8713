// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package like

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/bookwise/internal/platform/middleware"
	requestutil "github.com/taibuivan/bookwise/internal/platform/request"
	"github.com/taibuivan/bookwise/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts POST / which toggles the caller's like.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.With(middleware.RequireAuth).Post("/", handler.toggleLike)
	return router
}

func (handler *Handler) toggleLike(writer http.ResponseWriter, request *http.Request) {
	var input ToggleInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Toggle(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}
