// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package editor

import "pixyo/internal/models"

// NewBackgroundLayer builds the protected bottom layer for a fresh
// canvas.
func NewBackgroundLayer(width, height float64) models.Layer {
	return models.Layer{
		ID:      NewLayerID(),
		Kind:    models.LayerBackground,
		Opacity: 1,
		Visible: true,
		Locked:  true,
		W:       width,
		H:       height,
		ScaleX:  1,
		ScaleY:  1,
	}
}

// DefaultLayers assembles the starting layer stack for a new design:
// the background plus headline and body text layers styled from the
// profile's brand fonts and colors.
func DefaultLayers(p *models.Profile, width, height float64) []models.Layer {
	s := New([]models.Layer{NewBackgroundLayer(width, height)})

	s.AddLayer(models.Layer{
		Kind:       models.LayerText,
		X:          float64(p.Layout.Padding),
		Y:          height * 0.35,
		Opacity:    1,
		Visible:    true,
		Text:       "Headline",
		FontFamily: p.FontHeadline.Family,
		FontSize:   float64(p.FontHeadline.Size),
		FontWeight: p.FontHeadline.Weight,
		Fill:       p.ColorLight,
		Align:      "left",
		LineHeight: 1.1,
	})
	s.AddLayer(models.Layer{
		Kind:       models.LayerText,
		X:          float64(p.Layout.Padding),
		Y:          height*0.35 + float64(p.FontHeadline.Size) + float64(p.Layout.Gap),
		Opacity:    0.9,
		Visible:    true,
		Text:       "Body copy",
		FontFamily: p.FontBody.Family,
		FontSize:   float64(p.FontBody.Size),
		FontWeight: p.FontBody.Weight,
		Fill:       p.ColorLight,
		Align:      "left",
		LineHeight: 1.4,
	})

	if p.LogoURL != nil && *p.LogoURL != "" {
		s.AddLayer(models.Layer{
			Kind:     models.LayerLogo,
			X:        float64(p.Layout.Padding),
			Y:        float64(p.Layout.Padding),
			Opacity:  1,
			Visible:  true,
			Src:      *p.LogoURL,
			ScaleX:   1,
			ScaleY:   1,
			IsVector: true,
		})
	}

	return s.Layers()
}

// Sanitize enforces the layer-sequence invariants before persistence:
// exactly one background layer, pinned to index 0, every layer with an
// id and a known kind. Client payloads that violate the invariants are
// repaired rather than rejected: a missing background is recreated and
// extra backgrounds are dropped.
func Sanitize(layers []models.Layer, width, height float64) []models.Layer {
	out := make([]models.Layer, 0, len(layers))
	var background *models.Layer

	for i := range layers {
		l := layers[i]
		if !l.Kind.Valid() {
			continue
		}
		if l.ID == "" {
			l.ID = NewLayerID()
		}
		if l.IsBackground() {
			if background == nil {
				background = &l
			}
			continue
		}
		out = append(out, l)
	}

	if background == nil {
		b := NewBackgroundLayer(width, height)
		background = &b
	}
	return append([]models.Layer{*background}, out...)
}
