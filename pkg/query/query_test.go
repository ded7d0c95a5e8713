// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/bookwise/pkg/query"
)

/*
TestStringSlice drops blanks and whitespace.
*/
func TestStringSlice(t *testing.T) {
	assert.Nil(t, query.StringSlice(""))
	assert.Equal(t, []string{"fantasy", "sci-fi"}, query.StringSlice(" fantasy, ,sci-fi "))
}

/*
TestSort only ever returns whitelisted columns.
*/
func TestSort(t *testing.T) {
	allowed := map[string]string{"rating": "b.rating", "title": "b.title"}

	assert.Equal(t, "b.rating", query.Sort("rating", allowed, "b.createdat"))
	assert.Equal(t, "b.createdat", query.Sort("", allowed, "b.createdat"))
	assert.Equal(t, "b.createdat", query.Sort("1; DROP TABLE x", allowed, "b.createdat"))
}

/*
TestOrder defaults to descending.
*/
func TestOrder(t *testing.T) {
	assert.Equal(t, "ASC", query.Order("asc"))
	assert.Equal(t, "ASC", query.Order("ASC"))
	assert.Equal(t, "DESC", query.Order("desc"))
	assert.Equal(t, "DESC", query.Order("sideways"))
}

/*
TestContains escapes LIKE metacharacters.
*/
func TestContains(t *testing.T) {
	assert.Equal(t, "%atomic%", query.Contains("atomic"))
	assert.Equal(t, `%100\%%`, query.Contains("100%"))
	assert.Equal(t, `%a\_b%`, query.Contains("a_b"))
	assert.Equal(t, `%c:\\d%`, query.Contains(`c:\d`))
}
