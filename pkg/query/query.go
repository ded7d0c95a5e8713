// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses list-endpoint query strings into values that are safe
// to splice into SQL: whitelisted sort keys, directions and LIKE patterns.
package query

import (
	"strings"
)

// StringSlice parses a single comma-separated query string
// into a trimmed slice of strings.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}

// Sort maps a client-facing sort key onto a column through the allowed table.
// Unknown or empty keys resolve to fallback; it never returns client input.
func Sort(key string, allowed map[string]string, fallback string) string {
	if column, ok := allowed[key]; ok {
		return column
	}
	return fallback
}

// Order returns "ASC" for "asc" (any case) and "DESC" for everything else.
func Order(value string) string {
	if strings.EqualFold(value, "asc") {
		return "ASC"
	}
	return "DESC"
}

// likeEscaper escapes the LIKE metacharacters with the default '\' escape.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Contains builds an ILIKE pattern matching term anywhere in the column.
// Wildcards typed by the client match literally.
func Contains(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
