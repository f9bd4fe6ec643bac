// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// SeedUserID is the sentinel owner for shared demo profiles. Resources
// owned by it are readable and editable by any authenticated user.
const SeedUserID = "system-seed"

// FontSpec describes one of a profile's two brand fonts.
type FontSpec struct {
	Family string `json:"family"`
	Weight int    `json:"weight"`
	Size   int    `json:"size,omitempty"`
}

// LayoutSpec captures the spacing and button shape a brand uses in
// generated compositions.
type LayoutSpec struct {
	Padding     int    `json:"padding"`
	Gap         int    `json:"gap"`
	ButtonShape string `json:"button_shape"` // "pill", "rounded", "sharp"
}

// Profile is a brand identity record: logo, colors, fonts, and layout,
// plus a free-text prompt that biases all AI generation for the brand.
// Owned by exactly one identity: a real user id or SeedUserID.
type Profile struct {
	ID           uuid.UUID  `json:"id"`
	OwnerID      string     `json:"owner_id"`
	Slug         string     `json:"slug"`
	Name         string     `json:"name"`
	LogoURL      *string    `json:"logo_url,omitempty"`
	ColorDark    string     `json:"color_dark"`
	ColorLight   string     `json:"color_light"`
	ColorAccent  string     `json:"color_accent"`
	FontHeadline FontSpec   `json:"font_headline"`
	FontBody     FontSpec   `json:"font_body"`
	Layout       LayoutSpec `json:"layout"`
	SystemPrompt string     `json:"system_prompt"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// IsSeed returns true if the profile belongs to the shared demo identity.
func (p *Profile) IsSeed() bool {
	return p.OwnerID == SeedUserID
}
