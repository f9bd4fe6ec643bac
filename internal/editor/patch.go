// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package editor

import "pixyo/internal/models"

// LayerPatch is a partial layer update: only non-nil fields are merged
// into the target layer. The layer's id and kind are never patchable.
type LayerPatch struct {
	X        *float64 `json:"x,omitempty"`
	Y        *float64 `json:"y,omitempty"`
	Rotation *float64 `json:"rotation,omitempty"`
	Opacity  *float64 `json:"opacity,omitempty"`
	Visible  *bool    `json:"visible,omitempty"`
	Locked   *bool    `json:"locked,omitempty"`

	Src    *string  `json:"src,omitempty"`
	W      *float64 `json:"w,omitempty"`
	H      *float64 `json:"h,omitempty"`
	ScaleX *float64 `json:"scale_x,omitempty"`
	ScaleY *float64 `json:"scale_y,omitempty"`

	Fill *string `json:"fill,omitempty"`

	Text       *string  `json:"text,omitempty"`
	FontFamily *string  `json:"font_family,omitempty"`
	FontSize   *float64 `json:"font_size,omitempty"`
	FontWeight *int     `json:"font_weight,omitempty"`
	Align      *string  `json:"align,omitempty"`
	LineHeight *float64 `json:"line_height,omitempty"`
	MaxWidth   *float64 `json:"max_width,omitempty"`

	IsVector   *bool                  `json:"is_vector,omitempty"`
	Tint       *string                `json:"tint,omitempty"`
	Background *models.LogoBackground `json:"background,omitempty"`
}

// apply merges the patch into l.
func (p LayerPatch) apply(l *models.Layer) {
	if p.X != nil {
		l.X = *p.X
	}
	if p.Y != nil {
		l.Y = *p.Y
	}
	if p.Rotation != nil {
		l.Rotation = *p.Rotation
	}
	if p.Opacity != nil {
		l.Opacity = *p.Opacity
	}
	if p.Visible != nil {
		l.Visible = *p.Visible
	}
	if p.Locked != nil {
		l.Locked = *p.Locked
	}
	if p.Src != nil {
		l.Src = *p.Src
	}
	if p.W != nil {
		l.W = *p.W
	}
	if p.H != nil {
		l.H = *p.H
	}
	if p.ScaleX != nil {
		l.ScaleX = *p.ScaleX
	}
	if p.ScaleY != nil {
		l.ScaleY = *p.ScaleY
	}
	if p.Fill != nil {
		l.Fill = *p.Fill
	}
	if p.Text != nil {
		l.Text = *p.Text
	}
	if p.FontFamily != nil {
		l.FontFamily = *p.FontFamily
	}
	if p.FontSize != nil {
		l.FontSize = *p.FontSize
	}
	if p.FontWeight != nil {
		l.FontWeight = *p.FontWeight
	}
	if p.Align != nil {
		l.Align = *p.Align
	}
	if p.LineHeight != nil {
		l.LineHeight = *p.LineHeight
	}
	if p.MaxWidth != nil {
		v := *p.MaxWidth
		l.MaxWidth = &v
	}
	if p.IsVector != nil {
		l.IsVector = *p.IsVector
	}
	if p.Tint != nil {
		v := *p.Tint
		l.Tint = &v
	}
	if p.Background != nil {
		v := *p.Background
		l.Background = &v
	}
}
