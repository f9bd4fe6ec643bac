// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// UsageLogEntry is one append-only cost event for a billable AI
// operation. Rows are never mutated or deleted; the read side aggregates
// them by calendar day.
type UsageLogEntry struct {
	ID        uuid.UUID         `json:"id"`
	UserID    string            `json:"user_id"`
	UserEmail string            `json:"user_email"`
	Operation string            `json:"operation"`
	CostEUR   float64           `json:"cost_eur"`
	Model     string            `json:"model"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// PromptSource tags how the prompt for a generation was produced.
type PromptSource string

const (
	PromptAIImproved PromptSource = "ai-improved"
	PromptUserDirect PromptSource = "user-direct"
)

// GenerationLog records one AI generation call. The download flag is set
// at most once, when the user exports the result.
type GenerationLog struct {
	ID           uuid.UUID         `json:"id"`
	UserID       string            `json:"user_id"`
	Tool         string            `json:"tool"`
	Prompt       string            `json:"prompt"`
	PromptSource PromptSource      `json:"prompt_source"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	Downloaded   bool              `json:"downloaded"`
	DownloadedAt *time.Time        `json:"downloaded_at,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

// WaitlistEntry is a signup captured from the landing page, upserted by
// email so repeat submissions stay idempotent.
type WaitlistEntry struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
