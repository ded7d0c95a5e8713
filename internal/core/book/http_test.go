// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookwise/internal/core/book"
	"github.com/taibuivan/bookwise/internal/platform/gate/gatetest"
)

func newBookRouter(readOnly bool) (http.Handler, *memoryBooks) {
	repo := newMemoryBooks()
	mutationGate := gatetest.New(readOnly, adminID)
	service := book.NewService(repo, mutationGate, gatetest.Logger())

	router := chi.NewRouter()
	router.Use(gatetest.Authenticate)
	router.Use(mutationGate.Middleware)
	router.Mount("/books", book.NewHandler(service).Routes())
	return router, repo
}

func send(router http.Handler, method, path, userID, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, path, reader)
	request.Header.Set("Content-Type", "application/json")
	if userID != "" {
		request.Header.Set(gatetest.UserHeader, userID)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

const createBody = `{
	"title": "Dune",
	"author": "Frank Herbert",
	"coverImage": "https://covers.example.com/dune.jpg",
	"genres": ["science-fiction"],
	"publishedYear": 1965,
	"description": "Spice, sand and prophecy."
}`

/*
TestHandler_CRUD drives the admin lifecycle over HTTP.
*/
func TestHandler_CRUD(t *testing.T) {
	router, _ := newBookRouter(false)

	created := send(router, http.MethodPost, "/books", adminID, createBody)
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())

	var entity map[string]any
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &entity))
	id, _ := entity["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "Dune", entity["title"])
	assert.Equal(t, 0.0, entity["rating"])

	detail := send(router, http.MethodGet, "/books/"+id, "", "")
	require.Equal(t, http.StatusOK, detail.Code)
	assert.Contains(t, detail.Body.String(), `"reviews":[]`)

	updated := send(router, http.MethodPatch, "/books/"+id, adminID, `{"pageCount": 412}`)
	require.Equal(t, http.StatusOK, updated.Code, updated.Body.String())
	assert.Contains(t, updated.Body.String(), `"pageCount":412`)

	deleted := send(router, http.MethodDelete, "/books/"+id, adminID, "")
	require.Equal(t, http.StatusOK, deleted.Code)
	assert.JSONEq(t, `{"message":"Book deleted successfully"}`, deleted.Body.String())

	missing := send(router, http.MethodGet, "/books/"+id, "", "")
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

/*
TestHandler_Guards maps auth and role failures onto status codes.
*/
func TestHandler_Guards(t *testing.T) {
	router, repo := newBookRouter(false)

	anonymous := send(router, http.MethodPost, "/books", "", createBody)
	assert.Equal(t, http.StatusUnauthorized, anonymous.Code)

	member := send(router, http.MethodPost, "/books", memberID, createBody)
	assert.Equal(t, http.StatusForbidden, member.Code)
	assert.Contains(t, member.Body.String(), `"code":"FORBIDDEN"`)

	malformed := send(router, http.MethodPost, "/books", adminID, `{"title":`)
	assert.Equal(t, http.StatusBadRequest, malformed.Code)

	assert.Empty(t, repo.books)
}

/*
TestHandler_ReadOnly rejects writes before the body is read and keeps reads working.
*/
func TestHandler_ReadOnly(t *testing.T) {
	router, _ := newBookRouter(true)

	write := send(router, http.MethodPost, "/books", adminID, `not json`)
	assert.Equal(t, http.StatusForbidden, write.Code)
	assert.Contains(t, write.Body.String(), `"code":"READ_ONLY_MODE"`)

	list := send(router, http.MethodGet, "/books", "", "")
	assert.Equal(t, http.StatusOK, list.Code)
	assert.JSONEq(t, `{"items":[],"pagination":{"total":0,"page":1,"limit":20,"totalPages":0}}`, list.Body.String())
}
