// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// BrandTokens is the rich design-token form of a brand: the structured
// source from which the legacy flat Profile fields, a Tailwind theme
// snippet, and an LLM grounding summary are derived.
type BrandTokens struct {
	Colors     TokenColors     `json:"colors"`
	Typography TokenTypography `json:"typography"`
	Spacing    map[string]string `json:"spacing"`    // unit-suffixed, e.g. "24px"
	Radius     map[string]string `json:"radius"`     // may include a "default" alias
	Shadows    TokenShadows    `json:"shadows"`
	Button     TokenButton     `json:"button"`
	Media      *TokenMedia     `json:"media,omitempty"`
	Voice      *TokenVoice     `json:"voice,omitempty"`
}

// TokenColors is the brand palette. Extra named colors beyond the core
// triple live in Palette.
type TokenColors struct {
	Dark    string            `json:"dark"`
	Light   string            `json:"light"`
	Accent  string            `json:"accent"`
	Palette map[string]string `json:"palette,omitempty"`
}

// TokenTypography pairs the headline and body font specs.
type TokenTypography struct {
	Headline FontSpec `json:"headline"`
	Body     FontSpec `json:"body"`
}

// TokenShadows holds the four elevation tiers.
type TokenShadows struct {
	SM string `json:"sm"`
	MD string `json:"md"`
	LG string `json:"lg"`
	XL string `json:"xl"`
}

// TokenButton describes the brand's call-to-action styling.
type TokenButton struct {
	Shape      string `json:"shape"`
	Background string `json:"background,omitempty"`
	Text       string `json:"text,omitempty"`
}

// TokenMedia captures optional imagery direction for generation prompts.
type TokenMedia struct {
	Style    string `json:"style,omitempty"`
	Subjects string `json:"subjects,omitempty"`
}

// TokenVoice captures optional brand-voice notes for copy generation.
type TokenVoice struct {
	Tone     string   `json:"tone,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}
