// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package readinglist_test

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

	"github.com/taibuivan/bookwise/internal/core/readinglist"
	"github.com/taibuivan/bookwise/internal/platform/gate/gatetest"
)

func newShelfRouter() (http.Handler, *memoryShelf) {
	repo := newMemoryShelf()

	router := chi.NewRouter()
	router.Use(gatetest.Authenticate)
	router.Mount("/reading-list", readinglist.NewHandler(newService(false, repo)).Routes())
	return router, repo
}

// send encodes payload as JSON; a string payload is sent verbatim.
func send(router http.Handler, method, path, userID string, payload any) *httptest.ResponseRecorder {
	var body io.Reader
	switch value := payload.(type) {
	case nil:
	case string:
		body = strings.NewReader(value)
	default:
		encoded, _ := json.Marshal(value)
		body = strings.NewReader(string(encoded))
	}
	request := httptest.NewRequest(method, path, body)
	if userID != "" {
		request.Header.Set(gatetest.UserHeader, userID)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

/*
TestHandler_Scenario shelves, advances and removes a book over HTTP.
*/
func TestHandler_Scenario(t *testing.T) {
	router, repo := newShelfRouter()

	created := send(router, http.MethodPost, "/reading-list", aliceID, map[string]any{"bookId": duneID, "status": "currently-reading", "progress": 40})
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())

	var entity map[string]any
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &entity))
	id, _ := entity["id"].(string)
	assert.Equal(t, float64(40), entity["progress"])

	listed := send(router, http.MethodGet, "/reading-list?status=currently-reading", aliceID, nil)
	require.Equal(t, http.StatusOK, listed.Code)
	assert.Contains(t, listed.Body.String(), `"total":1`)

	foreign := send(router, http.MethodPatch, "/reading-list/"+id, bobID, map[string]any{"status": "read"})
	assert.Equal(t, http.StatusForbidden, foreign.Code)
	assert.Contains(t, foreign.Body.String(), `"code":"FORBIDDEN"`)

	finished := send(router, http.MethodPatch, "/reading-list/"+id, aliceID, map[string]any{"status": "read"})
	require.Equal(t, http.StatusOK, finished.Code, finished.Body.String())
	assert.Contains(t, finished.Body.String(), `"status":"read"`)
	assert.Equal(t, 1, repo.booksRead[aliceID])

	removed := send(router, http.MethodDelete, "/reading-list/"+id, aliceID, nil)
	require.Equal(t, http.StatusOK, removed.Code)
	assert.JSONEq(t, `{"message":"Removed from reading list"}`, removed.Body.String())
	assert.Equal(t, 0, repo.booksRead[aliceID])

	missing := send(router, http.MethodDelete, "/reading-list/"+id, aliceID, nil)
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

/*
TestHandler_Rejections maps anonymous calls and bad payloads to their statuses.
*/
func TestHandler_Rejections(t *testing.T) {
	router, _ := newShelfRouter()

	assert.Equal(t, http.StatusUnauthorized, send(router, http.MethodGet, "/reading-list", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, send(router, http.MethodPost, "/reading-list", "", map[string]any{"bookId": duneID}).Code)

	malformed := send(router, http.MethodPost, "/reading-list", aliceID, `{"bookId":`)
	assert.Equal(t, http.StatusBadRequest, malformed.Code)
	assert.Contains(t, malformed.Body.String(), `"code":"VALIDATION_ERROR"`)

	invalid := send(router, http.MethodPost, "/reading-list", aliceID, map[string]any{"bookId": duneID, "status": "abandoned"})
	assert.Equal(t, http.StatusBadRequest, invalid.Code)
	assert.Contains(t, invalid.Body.String(), `"field":"status"`)
}
