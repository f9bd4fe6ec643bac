// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
package slug

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// stripped matches anything that isn't a lowercase letter, digit,
// whitespace, or hyphen.
var stripped = regexp.MustCompile(`[^a-z0-9\s-]`)

// Generate creates a URL-friendly slug from the given string.
// Example: "Acme Surfboards 2026" → "acme-surfboards-2026"
func Generate(s string) string {
	s = stripped.ReplaceAllString(strings.ToLower(s), "")
	// Treating existing hyphens as word breaks collapses runs of mixed
	// separators in one pass.
	words := strings.Fields(strings.ReplaceAll(s, "-", " "))
	return strings.Join(words, "-")
}

// WithTimestampSuffix appends the current unix timestamp to a slug.
// Used to resolve global-uniqueness collisions: the first insert wins
// the plain slug, the loser retries once with the suffixed form.
func WithTimestampSuffix(s string) string {
	return fmt.Sprintf("%s-%d", s, time.Now().Unix())
}
