// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"
)

// geminiProvider talks to the Gemini REST API
// (POST /v1beta/models/{model}:generateContent) for both text and image
// generation. Image calls use the separate ModelImage and a longer
// timeout since image models respond noticeably slower.
type geminiProvider struct {
	config    ProviderConfig
	client    *http.Client
	imgClient *http.Client
}

func newGemini(cfg ProviderConfig) *geminiProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com"
	}
	return &geminiProvider{
		config:    cfg,
		client:    &http.Client{Timeout: 60 * time.Second},
		imgClient: &http.Client{Timeout: 120 * time.Second},
	}
}

func (p *geminiProvider) Name() string  { return "gemini" }
func (p *geminiProvider) Model() string { return p.config.Model }

func (p *geminiProvider) endpoint(model string) string {
	return fmt.Sprintf("%s/v1beta/models/%s:generateContent", p.config.BaseURL, model)
}

func (p *geminiProvider) headers() map[string]string {
	return map[string]string{"x-goog-api-key": p.config.APIKey}
}

// Generate sends a text generateContent request and returns the first
// text part of the first candidate.
func (p *geminiProvider) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	in := geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: systemPrompt}}},
		Contents:          []geminiContent{{Parts: []geminiPart{{Text: userPrompt}}}},
	}

	var out geminiResponse
	if err := postJSON(ctx, p.client, "gemini", p.endpoint(p.config.Model), p.headers(), in, &out); err != nil {
		return "", err
	}

	if len(out.Candidates) == 0 {
		return "", fmt.Errorf("gemini: no candidates returned")
	}
	for _, part := range out.Candidates[0].Content.Parts {
		if part.Text != "" {
			return part.Text, nil
		}
	}
	return "", fmt.Errorf("gemini: no text in response")
}

// GenerateImage asks the image model for a render with
// responseModalities IMAGE. A reference photo, when present, is inlined
// as a second part which turns the call into image-to-image generation.
func (p *geminiProvider) GenerateImage(ctx context.Context, ir ImageRequest) (*ImageResult, error) {
	model := p.config.ModelImage
	if model == "" {
		return nil, fmt.Errorf("gemini: image generation requires GEMINI_MODEL_IMAGE to be set")
	}

	parts := []geminiPart{{Text: ir.Prompt}}
	if ir.ReferenceData != "" {
		parts = append(parts, geminiPart{
			InlineData: &geminiInlineData{MimeType: ir.ReferenceMime, Data: ir.ReferenceData},
		})
	}

	in := geminiImageRequest{
		Contents: []geminiContent{{Parts: parts}},
		GenerationConfig: geminiImageConfig{
			ResponseModalities: []string{"IMAGE", "TEXT"},
		},
	}

	var out geminiResponse
	if err := postJSON(ctx, p.imgClient, "gemini", p.endpoint(model), p.headers(), in, &out); err != nil {
		return nil, err
	}

	for _, c := range out.Candidates {
		for _, part := range c.Content.Parts {
			if part.InlineData == nil || part.InlineData.Data == "" {
				continue
			}
			raw, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
			if err != nil {
				return nil, fmt.Errorf("gemini image decode base64: %w", err)
			}
			contentType := part.InlineData.MimeType
			if contentType == "" {
				contentType = "image/png"
			}
			return &ImageResult{Data: raw, ContentType: contentType, Model: model}, nil
		}
	}
	return nil, fmt.Errorf("gemini image: no image data in response")
}

// --- Gemini API types ---

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
}

type geminiImageConfig struct {
	ResponseModalities []string `json:"responseModalities"`
}

type geminiImageRequest struct {
	Contents         []geminiContent   `json:"contents"`
	GenerationConfig geminiImageConfig `json:"generationConfig"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}
