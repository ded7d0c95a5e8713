// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond writes BookWise HTTP responses: single resources as the
// bare entity, lists as { items, pagination }, and every failure as
// { error, code, details }.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/taibuivan/bookwise/internal/platform/apperr"
	"github.com/taibuivan/bookwise/internal/platform/ctxutil"
	"github.com/taibuivan/bookwise/pkg/pagination"
)

// PaginatedEnvelope is the JSON envelope for paginated list responses.
type PaginatedEnvelope struct {
	Items      any             `json:"items"`
	Pagination pagination.Meta `json:"pagination"`
}

// MessageEnvelope is returned by operations that have nothing else to report.
type MessageEnvelope struct {
	Message string `json:"message"`
}

// ErrorEnvelope is the JSON envelope for error responses.
type ErrorEnvelope struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with the entity as the body.
func OK(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusOK, data)
}

// Created writes a 201 Created response with the entity as the body.
func Created(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusCreated, data)
}

// Message writes a 200 OK response carrying only a human-readable message.
func Message(writer http.ResponseWriter, message string) {
	JSON(writer, http.StatusOK, MessageEnvelope{Message: message})
}

// Paginated writes a 200 OK response with the page items and a metadata block.
//
// A nil slice is rendered as an empty array so clients never see "items": null.
func Paginated[T any](writer http.ResponseWriter, items []T, metadata pagination.Meta) {
	if items == nil {
		items = []T{}
	}
	JSON(writer, http.StatusOK, PaginatedEnvelope{Items: items, Pagination: metadata})
}

// NoContent writes a 204 No Content response.
func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

// Error writes err as the standard error envelope.
//
// Anything that is not an [apperr.AppError] becomes a 500 INTERNAL_ERROR.
// Server errors are logged with their cause, which never reaches the client.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	appError, known := asAppError(err)

	if appError.HTTPStatus >= http.StatusInternalServerError {
		ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.Bool("unmapped", !known),
			slog.Any("cause", appError.Cause),
		)
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Error:   appError.Message,
		Code:    appError.Code,
		Details: appError.Details,
	})
}

func asAppError(err error) (*apperr.AppError, bool) {
	var appError *apperr.AppError
	if errors.As(err, &appError) {
		return appError, true
	}
	return apperr.Internal(err), false
}
