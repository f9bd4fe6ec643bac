// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ai provides a unified interface for the LLM providers Pixyo
// proxies to (Gemini for text and image generation, Claude for text).
// Each provider implements the Provider interface, and the Registry
// selects the active one by name.
package ai

import (
	"context"
	"fmt"
	"sync"
)

// Provider defines the interface that all AI providers must implement.
// Each provider handles its own HTTP communication and response parsing.
type Provider interface {
	// Generate sends a prompt to the LLM and returns the generated text.
	// systemPrompt sets the model's behaviour; userPrompt is the user's request.
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// Name returns the provider identifier (e.g., "gemini", "claude").
	Name() string

	// Model returns the model identifier the provider is configured with,
	// recorded in the usage ledger.
	Model() string
}

// ImageProvider is implemented by providers that can generate images.
type ImageProvider interface {
	Provider

	// GenerateImage produces image bytes for a prompt. The optional
	// reference image (base64 data + mime type) turns the call into an
	// image-to-image generation.
	GenerateImage(ctx context.Context, req ImageRequest) (*ImageResult, error)
}

// ImageRequest is a single image generation request.
type ImageRequest struct {
	Prompt string

	// ReferenceData and ReferenceMime carry an optional product photo
	// for image-to-image generation (base64, no data-URL prefix).
	ReferenceData string
	ReferenceMime string

	// AspectRatio like "1:1" or "4:5"; provider-interpreted hint.
	AspectRatio string
}

// ImageResult is the generated image plus its metadata.
type ImageResult struct {
	Data        []byte
	ContentType string
	Model       string
}

// ProviderConfig holds the credentials and settings for a single provider.
type ProviderConfig struct {
	APIKey     string
	Model      string
	ModelImage string
	BaseURL    string
}

// Registry manages available AI providers and selects the active one.
// All methods are safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
	active    string
}

// NewRegistry creates a registry and initialises providers for every
// config that has a non-empty API key. Providers without keys are
// silently skipped.
func NewRegistry(active string, configs map[string]ProviderConfig) *Registry {
	r := &Registry{
		providers: make(map[string]Provider),
		active:    active,
	}

	for name, cfg := range configs {
		if cfg.APIKey == "" {
			continue
		}
		switch name {
		case "gemini":
			r.providers[name] = newGemini(cfg)
		case "claude":
			r.providers[name] = newClaude(cfg)
		}
	}

	return r
}

// Generate calls the active provider's Generate method.
func (r *Registry) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	p, err := r.Active()
	if err != nil {
		return "", err
	}
	return p.Generate(ctx, systemPrompt, userPrompt)
}

// GenerateImage calls the first configured provider capable of image
// generation, preferring the active one.
func (r *Registry) GenerateImage(ctx context.Context, req ImageRequest) (*ImageResult, error) {
	p, err := r.Active()
	if err == nil {
		if ip, ok := p.(ImageProvider); ok {
			return ip.GenerateImage(ctx, req)
		}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.providers {
		if ip, ok := p.(ImageProvider); ok {
			return ip.GenerateImage(ctx, req)
		}
	}
	return nil, fmt.Errorf("ai: no image-capable provider configured")
}

// SupportsImageGeneration reports whether any configured provider can
// generate images.
func (r *Registry) SupportsImageGeneration() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.providers {
		if _, ok := p.(ImageProvider); ok {
			return true
		}
	}
	return false
}

// Active returns the currently active provider.
func (r *Registry) Active() (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[r.active]
	if !ok {
		return nil, fmt.Errorf("ai: no provider configured for %q", r.active)
	}
	return p, nil
}

// SetActive switches the active provider at runtime. Returns an error if
// the named provider has no API key configured.
func (r *Registry) SetActive(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.providers[name]; !ok {
		return fmt.Errorf("ai: provider %q is not available (no API key?)", name)
	}
	r.active = name
	return nil
}

// ActiveName returns the name of the currently active provider.
func (r *Registry) ActiveName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.active
}

// Available returns the names of all providers that have valid API keys.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var names []string
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}

// Register adds or replaces a provider in the registry. This allows
// injecting custom providers at runtime (e.g. for testing).
func (r *Registry) Register(name string, p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = p
}

// HasProvider checks whether a named provider is configured and available.
func (r *Registry) HasProvider(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.providers[name]
	return ok
}
