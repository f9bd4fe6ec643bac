// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// BackgroundSource tags where a design's background image came from.
type BackgroundSource string

const (
	BackgroundGenerated BackgroundSource = "GENERATED"
	BackgroundUnsplash  BackgroundSource = "UNSPLASH"
)

// BackgroundTransform positions a background image on the canvas.
type BackgroundTransform struct {
	Scale float64 `json:"scale"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	FlipH bool    `json:"flip_h"`
	FlipV bool    `json:"flip_v"`
}

// BackgroundImage is the full-bleed image behind a design's layers,
// with provenance and optional photographer attribution.
type BackgroundImage struct {
	URL         string              `json:"url"`
	Source      BackgroundSource    `json:"source"`
	Attribution *string             `json:"attribution,omitempty"`
	Transform   BackgroundTransform `json:"transform"`
}

// Overlay is a tint/gradient applied between the background image and
// the layer stack.
type Overlay struct {
	Type      string  `json:"type"`
	BlendMode string  `json:"blend_mode"`
	Intensity float64 `json:"intensity"`
}

// ProductImage carries an uploaded product photo used as the reference
// for image-to-image generation. Stored inline as base64 because it is
// transient input, not a managed asset.
type ProductImage struct {
	Data     string `json:"data"`
	MimeType string `json:"mime_type"`
}

// Design is one canvas composition belonging to a Profile. The layer
// sequence is ordered bottom-to-top and always starts with the single
// background layer.
type Design struct {
	ID              uuid.UUID        `json:"id"`
	ProfileID       uuid.UUID        `json:"profile_id"`
	Name            string           `json:"name"`
	Width           int              `json:"width"`
	Height          int              `json:"height"`
	AspectRatio     string           `json:"aspect_ratio"`
	BackgroundColor string           `json:"background_color"`
	Layers          []Layer          `json:"layers"`
	Tagline         string           `json:"tagline"`
	Headline        string           `json:"headline"`
	Body            string           `json:"body"`
	ButtonText      string           `json:"button_text"`
	BackgroundImage *BackgroundImage `json:"background_image,omitempty"`
	Overlay         *Overlay         `json:"overlay,omitempty"`
	ProductImage    *ProductImage    `json:"product_image,omitempty"`
	ThumbnailURL    *string          `json:"thumbnail_url,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}
