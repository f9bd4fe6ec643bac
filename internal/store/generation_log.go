// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"pixyo/internal/models"
)

// GenerationLogStore records AI generation calls and their download
// conversions.
type GenerationLogStore struct {
	db *sql.DB
}

// NewGenerationLogStore creates a new GenerationLogStore with the given database connection.
func NewGenerationLogStore(db *sql.DB) *GenerationLogStore {
	return &GenerationLogStore{db: db}
}

// Create inserts a generation record and returns its id. The download
// flag starts false.
func (s *GenerationLogStore) Create(ctx context.Context, g *models.GenerationLog) (uuid.UUID, error) {
	var rawMeta []byte
	if len(g.Metadata) > 0 {
		var err error
		rawMeta, err = json.Marshal(g.Metadata)
		if err != nil {
			return uuid.Nil, fmt.Errorf("encode generation metadata: %w", err)
		}
	}

	var id uuid.UUID
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO generation_logs (user_id, tool, prompt, prompt_source, metadata)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, g.UserID, g.Tool, g.Prompt, g.PromptSource, rawMeta).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create generation log: %w", err)
	}
	return id, nil
}

// FindByID retrieves a generation record. Returns nil if not found.
func (s *GenerationLogStore) FindByID(ctx context.Context, id uuid.UUID) (*models.GenerationLog, error) {
	g := &models.GenerationLog{}
	var rawMeta []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, tool, prompt, prompt_source, metadata, downloaded, downloaded_at, created_at
		FROM generation_logs WHERE id = $1
	`, id).Scan(
		&g.ID, &g.UserID, &g.Tool, &g.Prompt, &g.PromptSource,
		&rawMeta, &g.Downloaded, &g.DownloadedAt, &g.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find generation log: %w", err)
	}
	if len(rawMeta) > 0 {
		if err := json.Unmarshal(rawMeta, &g.Metadata); err != nil {
			return nil, fmt.Errorf("decode generation metadata: %w", err)
		}
	}
	return g, nil
}

// MarkDownloaded flips the download flag, first write wins. The
// downloaded predicate in the WHERE clause makes repeat calls no-ops so
// the original timestamp is never overwritten. Returns whether this call
// performed the first flip.
func (s *GenerationLogStore) MarkDownloaded(ctx context.Context, id uuid.UUID, userID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE generation_logs
		SET downloaded = TRUE, downloaded_at = NOW()
		WHERE id = $1 AND user_id = $2 AND downloaded = FALSE
	`, id, userID)
	if err != nil {
		return false, fmt.Errorf("mark generation downloaded: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark generation downloaded: %w", err)
	}
	return n > 0, nil
}
