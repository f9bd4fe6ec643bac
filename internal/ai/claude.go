// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const anthropicVersion = "2023-06-01"

// claudeProvider talks to the Anthropic Messages API. Claude only serves
// text generation; image requests route to Gemini via the registry.
type claudeProvider struct {
	config ProviderConfig
	client *http.Client
}

func newClaude(cfg ProviderConfig) *claudeProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.anthropic.com"
	}
	return &claudeProvider{
		config: cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *claudeProvider) Name() string  { return "claude" }
func (p *claudeProvider) Model() string { return p.config.Model }

// Generate sends one user turn to POST /v1/messages and returns the
// first text block of the reply.
func (p *claudeProvider) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	in := claudeRequest{
		Model:     p.config.Model,
		MaxTokens: 4096,
		System:    systemPrompt,
		Messages:  []claudeMessage{{Role: "user", Content: userPrompt}},
	}
	headers := map[string]string{
		"x-api-key":         p.config.APIKey,
		"anthropic-version": anthropicVersion,
	}

	var out claudeResponse
	if err := postJSON(ctx, p.client, "claude", p.config.BaseURL+"/v1/messages", headers, in, &out); err != nil {
		return "", err
	}

	for _, block := range out.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("claude: no text content in response")
}

// --- Anthropic Messages API types ---

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	System    string          `json:"system,omitempty"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type claudeResponse struct {
	Content []claudeContentBlock `json:"content"`
}
