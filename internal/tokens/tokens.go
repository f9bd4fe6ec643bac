// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package tokens exports a brand's structured design tokens into three
// derivative forms: the legacy flat profile fields, a Tailwind theme
// snippet, and an LLM-readable brand summary. All transforms are pure
// and deterministic for a given input.
package tokens

import (
	"regexp"
	"strconv"

	"pixyo/internal/models"
)

// Fallbacks used when a spacing token cannot be parsed as a number.
// Non-numeric spacing values (e.g. "auto", "clamp(...)") degrade to
// these constants instead of failing the export.
const (
	DefaultPadding = 48
	DefaultGap     = 24
)

// ProfileFields is the legacy flat shape older consumers read: the core
// color triple, the two brand fonts, and the layout block.
type ProfileFields struct {
	ColorDark    string            `json:"color_dark"`
	ColorLight   string            `json:"color_light"`
	ColorAccent  string            `json:"color_accent"`
	FontHeadline models.FontSpec   `json:"font_headline"`
	FontBody     models.FontSpec   `json:"font_body"`
	Layout       models.LayoutSpec `json:"layout"`
}

// leadingNumber extracts the numeric prefix of a unit-suffixed value
// like "24px", "1.5rem", or "32".
var leadingNumber = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)`)

// parseSpacing converts a unit-suffixed spacing token to whole pixels,
// returning fallback when the token has no numeric prefix.
func parseSpacing(v string, fallback int) int {
	m := leadingNumber.FindStringSubmatch(v)
	if m == nil {
		return fallback
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return fallback
	}
	return int(f)
}

// DeriveProfileFields maps the rich token object down to the flat
// profile shape kept for backward compatibility.
func DeriveProfileFields(t *models.BrandTokens) ProfileFields {
	return ProfileFields{
		ColorDark:    t.Colors.Dark,
		ColorLight:   t.Colors.Light,
		ColorAccent:  t.Colors.Accent,
		FontHeadline: t.Typography.Headline,
		FontBody:     t.Typography.Body,
		Layout: models.LayoutSpec{
			Padding:     parseSpacing(t.Spacing["padding"], DefaultPadding),
			Gap:         parseSpacing(t.Spacing["gap"], DefaultGap),
			ButtonShape: t.Button.Shape,
		},
	}
}
