// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug folds display names into ASCII identifiers.
//
// Signup uses it to propose a username when the client sends none:
// "Zoë Ångström" becomes "zoe_angstrom".
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxUsernameBase is the longest base [Username] keeps before the caller
// appends a uniqueness suffix.
const MaxUsernameBase = 24

// fallbackUsername is used when a name has no letters or digits at all.
const fallbackUsername = "reader"

// From lowercases s, strips accents and joins the remaining runs of ASCII
// letters and digits with single hyphens.
func From(s string) string {
	return join(s, '-')
}

// Username is [From] with underscores, cut to [MaxUsernameBase] bytes.
func Username(name string) string {
	base := join(name, '_')
	if len(base) > MaxUsernameBase {
		base = strings.TrimRight(base[:MaxUsernameBase], "_")
	}
	if base == "" {
		return fallbackUsername
	}
	return base
}

func join(s string, separator byte) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		folded = s
	}

	var builder strings.Builder
	builder.Grow(len(folded))
	pending := false

	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pending && builder.Len() > 0 {
				builder.WriteByte(separator)
			}
			builder.WriteRune(r)
			pending = false
			continue
		}
		pending = true
	}
	return builder.String()
}
