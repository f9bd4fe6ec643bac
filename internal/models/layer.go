// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// LayerKind discriminates the closed set of layer variants. Paint order
// is the position in the containing slice: index 0 is the bottom.
type LayerKind string

const (
	LayerBackground LayerKind = "background"
	LayerImage      LayerKind = "image"
	LayerRect       LayerKind = "rect"
	LayerText       LayerKind = "text"
	LayerLogo       LayerKind = "logo"
)

// Valid reports whether k is one of the five known layer kinds.
func (k LayerKind) Valid() bool {
	switch k {
	case LayerBackground, LayerImage, LayerRect, LayerText, LayerLogo:
		return true
	}
	return false
}

// LogoBackgroundShape is the optional backing shape rendered behind a
// logo layer.
type LogoBackgroundShape string

const (
	LogoShapeNone   LogoBackgroundShape = "none"
	LogoShapePill   LogoBackgroundShape = "pill"
	LogoShapeCircle LogoBackgroundShape = "circle"
	LogoShapeRect   LogoBackgroundShape = "rect"
)

// LogoBackground describes the backing shape behind a logo layer.
type LogoBackground struct {
	Shape   LogoBackgroundShape `json:"shape"`
	Color   string              `json:"color,omitempty"`
	Padding float64             `json:"padding,omitempty"`
}

// Layer is one visual element on a design's canvas, serialized as a flat
// object with a "kind" discriminant. The geometry fields are shared by
// every kind; the remaining fields are per-kind payload and are omitted
// from JSON when they do not apply.
//
// Per-kind payload:
//   - background/image/logo: Src, W, H, ScaleX, ScaleY
//   - rect: Fill, W, H
//   - text: Text, FontFamily, FontSize, FontWeight, Fill, Align,
//     LineHeight, MaxWidth
//   - logo additionally: IsVector, Tint, Background
type Layer struct {
	ID       string    `json:"id"`
	Kind     LayerKind `json:"kind"`
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	Rotation float64   `json:"rotation"`
	Opacity  float64   `json:"opacity"`
	Visible  bool      `json:"visible"`
	Locked   bool      `json:"locked"`

	// Image-like payload (background, image, logo).
	Src    string  `json:"src,omitempty"`
	W      float64 `json:"w,omitempty"`
	H      float64 `json:"h,omitempty"`
	ScaleX float64 `json:"scale_x,omitempty"`
	ScaleY float64 `json:"scale_y,omitempty"`

	// Rect and text fill color.
	Fill string `json:"fill,omitempty"`

	// Text payload.
	Text       string   `json:"text,omitempty"`
	FontFamily string   `json:"font_family,omitempty"`
	FontSize   float64  `json:"font_size,omitempty"`
	FontWeight int      `json:"font_weight,omitempty"`
	Align      string   `json:"align,omitempty"`
	LineHeight float64  `json:"line_height,omitempty"`
	MaxWidth   *float64 `json:"max_width,omitempty"`

	// Logo payload.
	IsVector   bool            `json:"is_vector,omitempty"`
	Tint       *string         `json:"tint,omitempty"`
	Background *LogoBackground `json:"background,omitempty"`
}

// IsBackground returns true for the protected background layer.
func (l *Layer) IsBackground() bool {
	return l.Kind == LayerBackground
}
