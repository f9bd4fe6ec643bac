// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"pixyo/internal/models"
)

// WaitlistStore captures landing page signups.
type WaitlistStore struct {
	db *sql.DB
}

// NewWaitlistStore creates a new WaitlistStore with the given database connection.
func NewWaitlistStore(db *sql.DB) *WaitlistStore {
	return &WaitlistStore{db: db}
}

// Add upserts a signup by email, so submitting twice is harmless. The
// email is lowercased before storage.
func (s *WaitlistStore) Add(ctx context.Context, email string) (*models.WaitlistEntry, error) {
	e := &models.WaitlistEntry{}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO waitlist (email) VALUES ($1)
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING id, email, created_at
	`, strings.ToLower(strings.TrimSpace(email))).Scan(&e.ID, &e.Email, &e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("add waitlist entry: %w", err)
	}
	return e, nil
}

// List returns all signups, newest first.
func (s *WaitlistStore) List(ctx context.Context) ([]models.WaitlistEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, email, created_at FROM waitlist ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list waitlist: %w", err)
	}
	defer rows.Close()

	var entries []models.WaitlistEntry
	for rows.Next() {
		var e models.WaitlistEntry
		if err := rows.Scan(&e.ID, &e.Email, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan waitlist entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
