// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/bookwise/pkg/slug"
)

/*
TestFrom strips accents and punctuation.
*/
func TestFrom(t *testing.T) {
	assert.Equal(t, "the-left-hand-of-darkness", slug.From("The Left Hand of Darkness"))
	assert.Equal(t, "cafe-creme", slug.From("  Café -- Crème! "))
}

/*
TestUsername covers separators, truncation and the empty fallback.
*/
func TestUsername(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Ursula Le Guin", "ursula_le_guin"},
		{"accents", "Zoë Ångström", "zoe_angstrom"},
		{"symbols_only", "!!!", "reader"},
		{"truncated", strings.Repeat("a", 40), strings.Repeat("a", slug.MaxUsernameBase)},
		{"no_trailing_separator", "abcdefghijklmnopqrstuvw xyz", "abcdefghijklmnopqrstuvw"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.Username(tt.input))
		})
	}
}

/*
TestFrom_NonLatin drops scripts that have no ASCII folding.
*/
func TestFrom_NonLatin(t *testing.T) {
	assert.Equal(t, "", slug.From("東京"))
	assert.Equal(t, "tokyo-2024", slug.From("東京 Tokyo 2024"))
	assert.Equal(t, "reader", slug.Username("東京"))
}
