// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"pixyo/internal/ai"
	"pixyo/internal/middleware"
	"pixyo/internal/models"
	"pixyo/internal/permissions"
	"pixyo/internal/session"
	"pixyo/internal/store"
)

// Modeled per-call costs in EUR, recorded in the usage ledger.
const (
	costImageEUR  = 0.04
	costPromptEUR = 0.004
)

// generateTimeout bounds the single provider call. There are no retries;
// a failed call surfaces immediately.
const generateTimeout = 120 * time.Second

// Generate groups the AI proxy handlers. Usage logging is fire-and-forget
// and generation logging is best-effort; neither can fail a response.
type Generate struct {
	registry  *ai.Registry
	usageLogs *store.UsageLogStore
	genLogs   *store.GenerationLogStore
}

// NewGenerate creates a new Generate handler group.
func NewGenerate(registry *ai.Registry, usageLogs *store.UsageLogStore, genLogs *store.GenerationLogStore) *Generate {
	return &Generate{registry: registry, usageLogs: usageLogs, genLogs: genLogs}
}

type generateImageRequest struct {
	Prompt       string               `json:"prompt"`
	AspectRatio  string               `json:"aspectRatio"`
	ProductImage *models.ProductImage `json:"productImage"`
	PromptSource models.PromptSource  `json:"promptSource"`

	// VariationSeed is accepted for schema stability but not consumed.
	VariationSeed *int64 `json:"variationSeed"`
}

type generateImageResponse struct {
	Data            string    `json:"data"` // base64 image bytes
	ContentType     string    `json:"contentType"`
	Model           string    `json:"model"`
	GenerationLogID uuid.UUID `json:"generationLogId"`
}

// Image proxies one image generation call.
func (h *Generate) Image(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	var req generateImageRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if ferr := validatePrompt(req.Prompt); !ferr.ok() {
		writeValidation(w, ferr.details())
		return
	}
	if !h.registry.SupportsImageGeneration() {
		writeError(w, http.StatusServiceUnavailable, "ai_unconfigured", "No image-capable AI provider is configured.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), generateTimeout)
	defer cancel()

	imgReq := ai.ImageRequest{
		Prompt:      req.Prompt,
		AspectRatio: req.AspectRatio,
	}
	if req.ProductImage != nil {
		imgReq.ReferenceData = req.ProductImage.Data
		imgReq.ReferenceMime = req.ProductImage.MimeType
	}

	result, err := h.registry.GenerateImage(ctx, imgReq)
	if err != nil {
		writeUpstream(w, err)
		return
	}

	h.logUsage(sess, "generate-image", costImageEUR, result.Model, map[string]string{
		"tool":         permissions.ToolSocialGraphics,
		"aspect_ratio": req.AspectRatio,
	})
	logID := h.logGeneration(r.Context(), sess, req.Prompt, req.PromptSource, map[string]string{
		"aspect_ratio": req.AspectRatio,
	})

	writeJSON(w, http.StatusOK, generateImageResponse{
		Data:            base64.StdEncoding.EncodeToString(result.Data),
		ContentType:     result.ContentType,
		Model:           result.Model,
		GenerationLogID: logID,
	})
}

type generatePromptRequest struct {
	Prompt       string `json:"prompt"`
	SystemPrompt string `json:"systemPrompt"`
}

type generatePromptResponse struct {
	Prompt          string    `json:"prompt"`
	Model           string    `json:"model"`
	GenerationLogID uuid.UUID `json:"generationLogId"`
}

// Prompt proxies one prompt improvement call to the active text provider.
func (h *Generate) Prompt(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	var req generatePromptRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if ferr := validatePrompt(req.Prompt); !ferr.ok() {
		writeValidation(w, ferr.details())
		return
	}

	provider, err := h.registry.Active()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "ai_unconfigured", "No AI provider is configured.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), generateTimeout)
	defer cancel()

	system := req.SystemPrompt
	if strings.TrimSpace(system) == "" {
		system = "Rewrite the user's idea into a vivid, specific image generation prompt. Reply with the prompt only."
	}

	improved, err := provider.Generate(ctx, system, req.Prompt)
	if err != nil {
		writeUpstream(w, err)
		return
	}

	improved = strings.TrimSpace(improved)

	h.logUsage(sess, "improve-prompt", costPromptEUR, provider.Model(), map[string]string{
		"tool": permissions.ToolSocialGraphics,
	})
	// The improved prompt is what the user will generate with, so that
	// is the prompt worth keeping, tagged as AI-produced.
	logID := h.logGeneration(r.Context(), sess, improved, models.PromptAIImproved, map[string]string{
		"operation": "improve-prompt",
	})

	writeJSON(w, http.StatusOK, generatePromptResponse{
		Prompt:          improved,
		Model:           provider.Model(),
		GenerationLogID: logID,
	})
}

// logUsage appends a ledger entry without blocking the response. A lost
// entry is logged and swallowed.
func (h *Generate) logUsage(sess *session.Data, operation string, cost float64, model string, meta map[string]string) {
	entry := &models.UsageLogEntry{
		UserID:    sess.UserID.String(),
		UserEmail: sess.Email,
		Operation: operation,
		CostEUR:   cost,
		Model:     model,
		Metadata:  meta,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := h.usageLogs.Append(ctx, entry); err != nil {
			slog.Error("usage log append failed", "operation", operation, "error", err)
		}
	}()
}

// logGeneration records the generation synchronously since its id rides
// in the response, but a failure degrades to a nil id instead of an
// error.
func (h *Generate) logGeneration(ctx context.Context, sess *session.Data, prompt string, source models.PromptSource, meta map[string]string) uuid.UUID {
	if source == "" {
		source = models.PromptUserDirect
	}
	id, err := h.genLogs.Create(ctx, &models.GenerationLog{
		UserID:       sess.UserID.String(),
		Tool:         permissions.ToolSocialGraphics,
		Prompt:       prompt,
		PromptSource: source,
		Metadata:     meta,
	})
	if err != nil {
		slog.Error("generation log create failed", "error", err)
		return uuid.Nil
	}
	return id
}
