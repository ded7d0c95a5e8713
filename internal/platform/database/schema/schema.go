// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema holds the table and column names used by the PostgreSQL stores,
// so a renamed column is changed in one place.
package schema

import "strings"

// Select renders columns as a comma-separated list, each prefixed with alias
// when alias is non-empty.
//
// # Example
//
//	Select("b", CatalogBook.Columns()) // "b.id, b.title, ..."
func Select(alias string, columns []string) string {
	if alias == "" {
		return strings.Join(columns, ", ")
	}

	qualified := make([]string, len(columns))
	for index, column := range columns {
		qualified[index] = alias + "." + column
	}
	return strings.Join(qualified, ", ")
}
