// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination reads ?page=&limit= and builds the pagination block of
// every list response: { total, page, limit, totalPages }.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params is a 1-indexed page request.
type Params struct {
	Page  int
	Limit int
}

// Offset is the SQL OFFSET for the page.
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta is serialized next to items in list responses.
type Meta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// NewMeta computes TotalPages as ceil(total / limit).
func NewMeta(page, limit, total int) Meta {
	meta := Meta{Total: total, Page: page, Limit: limit}
	if limit > 0 {
		meta.TotalPages = (total + limit - 1) / limit
	}
	return meta
}

// FromRequest reads page and limit. Missing, garbage or non-positive values
// use the defaults and limit is capped at [MaxLimit].
func FromRequest(request *http.Request) Params {
	query := request.URL.Query()

	params := Params{
		Page:  positiveOr(query.Get("page"), DefaultPage),
		Limit: positiveOr(query.Get("limit"), DefaultLimit),
	}
	params.Limit = min(params.Limit, MaxLimit)
	return params
}

func positiveOr(raw string, fallback int) int {
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
