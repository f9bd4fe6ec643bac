// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"pixyo/internal/models"
)

const usageLogColumns = `id, user_id, user_email, operation, cost_eur, model, metadata, created_at`

// UsageLogStore appends and reads the immutable AI cost ledger. Rows are
// insert-only; there are no update or delete methods on purpose.
type UsageLogStore struct {
	db *sql.DB
}

// NewUsageLogStore creates a new UsageLogStore with the given database connection.
func NewUsageLogStore(db *sql.DB) *UsageLogStore {
	return &UsageLogStore{db: db}
}

// Append records one billable AI operation.
func (s *UsageLogStore) Append(ctx context.Context, e *models.UsageLogEntry) error {
	var rawMeta []byte
	if len(e.Metadata) > 0 {
		var err error
		rawMeta, err = json.Marshal(e.Metadata)
		if err != nil {
			return fmt.Errorf("encode usage metadata: %w", err)
		}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO usage_logs (user_id, user_email, operation, cost_eur, model, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, e.UserID, e.UserEmail, e.Operation, e.CostEUR, e.Model, rawMeta)
	if err != nil {
		return fmt.Errorf("append usage log: %w", err)
	}
	return nil
}

// ListSince returns all entries created at or after the given instant,
// oldest first. The aggregation layer groups them by calendar day.
func (s *UsageLogStore) ListSince(ctx context.Context, since time.Time) ([]models.UsageLogEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+usageLogColumns+` FROM usage_logs
		WHERE created_at >= $1
		ORDER BY created_at ASC
	`, since)
	if err != nil {
		return nil, fmt.Errorf("list usage logs: %w", err)
	}
	defer rows.Close()

	var entries []models.UsageLogEntry
	for rows.Next() {
		var e models.UsageLogEntry
		var rawMeta []byte
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.UserEmail, &e.Operation, &e.CostEUR,
			&e.Model, &rawMeta, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan usage log: %w", err)
		}
		if len(rawMeta) > 0 {
			if err := json.Unmarshal(rawMeta, &e.Metadata); err != nil {
				return nil, fmt.Errorf("decode usage metadata: %w", err)
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ListSinceForUser is ListSince narrowed to one user's entries.
func (s *UsageLogStore) ListSinceForUser(ctx context.Context, userID string, since time.Time) ([]models.UsageLogEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+usageLogColumns+` FROM usage_logs
		WHERE user_id = $1 AND created_at >= $2
		ORDER BY created_at ASC
	`, userID, since)
	if err != nil {
		return nil, fmt.Errorf("list user usage logs: %w", err)
	}
	defer rows.Close()

	var entries []models.UsageLogEntry
	for rows.Next() {
		var e models.UsageLogEntry
		var rawMeta []byte
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.UserEmail, &e.Operation, &e.CostEUR,
			&e.Model, &rawMeta, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan usage log: %w", err)
		}
		if len(rawMeta) > 0 {
			if err := json.Unmarshal(rawMeta, &e.Metadata); err != nil {
				return nil, fmt.Errorf("decode usage metadata: %w", err)
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
