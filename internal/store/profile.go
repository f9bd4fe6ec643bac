// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"pixyo/internal/models"
	"pixyo/internal/slug"
)

const profileColumns = `id, owner_id, slug, name, logo_url, color_dark, color_light, color_accent,
	font_headline, font_body, layout, system_prompt, created_at, updated_at`

// ProfileWithCount is a profile joined with its design count, used by the
// admin overview.
type ProfileWithCount struct {
	models.Profile
	DesignCount int `json:"design_count"`
}

// ProfileStore handles brand profile persistence.
type ProfileStore struct {
	db *sql.DB
}

// NewProfileStore creates a new ProfileStore with the given database connection.
func NewProfileStore(db *sql.DB) *ProfileStore {
	return &ProfileStore{db: db}
}

func scanProfile(row interface{ Scan(...any) error }) (*models.Profile, error) {
	p := &models.Profile{}
	var fontHeadline, fontBody, layout []byte
	err := row.Scan(
		&p.ID, &p.OwnerID, &p.Slug, &p.Name, &p.LogoURL,
		&p.ColorDark, &p.ColorLight, &p.ColorAccent,
		&fontHeadline, &fontBody, &layout, &p.SystemPrompt,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(fontHeadline, &p.FontHeadline); err != nil {
		return nil, fmt.Errorf("decode headline font: %w", err)
	}
	if err := json.Unmarshal(fontBody, &p.FontBody); err != nil {
		return nil, fmt.Errorf("decode body font: %w", err)
	}
	if err := json.Unmarshal(layout, &p.Layout); err != nil {
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	return p, nil
}

// FindByID retrieves a profile by UUID. Returns nil if not found.
func (s *ProfileStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	p, err := scanProfile(s.db.QueryRowContext(ctx, `
		SELECT `+profileColumns+` FROM profiles WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find profile by id: %w", err)
	}
	return p, nil
}

// FindBySlug retrieves a profile by slug. Returns nil if not found.
func (s *ProfileStore) FindBySlug(ctx context.Context, sl string) (*models.Profile, error) {
	p, err := scanProfile(s.db.QueryRowContext(ctx, `
		SELECT `+profileColumns+` FROM profiles WHERE slug = $1
	`, sl))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find profile by slug: %w", err)
	}
	return p, nil
}

// ListVisibleTo returns the profiles the given identity can see: its own
// plus the shared seed profiles, newest first.
func (s *ProfileStore) ListVisibleTo(ctx context.Context, ownerID string) ([]models.Profile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+profileColumns+` FROM profiles
		WHERE owner_id = $1 OR owner_id = $2
		ORDER BY created_at DESC
	`, ownerID, models.SeedUserID)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

// ListAll returns every profile with its design count, newest first.
// Admin-only view.
func (s *ProfileStore) ListAll(ctx context.Context) ([]ProfileWithCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.owner_id, p.slug, p.name, p.logo_url, p.color_dark, p.color_light, p.color_accent,
			p.font_headline, p.font_body, p.layout, p.system_prompt, p.created_at, p.updated_at,
			COUNT(d.id) AS design_count
		FROM profiles p
		LEFT JOIN designs d ON d.profile_id = p.id
		GROUP BY p.id
		ORDER BY p.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list all profiles: %w", err)
	}
	defer rows.Close()

	var out []ProfileWithCount
	for rows.Next() {
		var pc ProfileWithCount
		var fontHeadline, fontBody, layout []byte
		err := rows.Scan(
			&pc.ID, &pc.OwnerID, &pc.Slug, &pc.Name, &pc.LogoURL,
			&pc.ColorDark, &pc.ColorLight, &pc.ColorAccent,
			&fontHeadline, &fontBody, &layout, &pc.SystemPrompt,
			&pc.CreatedAt, &pc.UpdatedAt, &pc.DesignCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		if err := json.Unmarshal(fontHeadline, &pc.FontHeadline); err != nil {
			return nil, fmt.Errorf("decode headline font: %w", err)
		}
		if err := json.Unmarshal(fontBody, &pc.FontBody); err != nil {
			return nil, fmt.Errorf("decode body font: %w", err)
		}
		if err := json.Unmarshal(layout, &pc.Layout); err != nil {
			return nil, fmt.Errorf("decode layout: %w", err)
		}
		out = append(out, pc)
	}
	return out, rows.Err()
}

// Create inserts a profile, deriving the slug from the name. The slug
// column is UNIQUE, so the insert itself arbitrates name reuse: the
// first writer gets the plain slug and a loser retries once with a
// unix timestamp suffix. There is no pre-check, so concurrent creates
// cannot both claim the plain slug.
func (s *ProfileStore) Create(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	fontHeadline, fontBody, layout, err := encodeProfileSpecs(p)
	if err != nil {
		return nil, err
	}

	sl := slug.Generate(p.Name)
	created, err := s.insert(ctx, p, sl, fontHeadline, fontBody, layout)
	if isSlugConflict(err) {
		created, err = s.insert(ctx, p, slug.WithTimestampSuffix(sl), fontHeadline, fontBody, layout)
	}
	if err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return created, nil
}

func (s *ProfileStore) insert(ctx context.Context, p *models.Profile, sl string, fontHeadline, fontBody, layout []byte) (*models.Profile, error) {
	return scanProfile(s.db.QueryRowContext(ctx, `
		INSERT INTO profiles (owner_id, slug, name, logo_url, color_dark, color_light, color_accent,
			font_headline, font_body, layout, system_prompt)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+profileColumns+`
	`, p.OwnerID, sl, p.Name, p.LogoURL, p.ColorDark, p.ColorLight, p.ColorAccent,
		fontHeadline, fontBody, layout, p.SystemPrompt))
}

// isSlugConflict reports whether err is a unique violation on the
// profiles slug constraint.
func isSlugConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == "23505" &&
		strings.Contains(pgErr.ConstraintName, "slug")
}

// Update saves the mutable profile fields. The slug is stable after
// creation so renames don't break stored references.
func (s *ProfileStore) Update(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	fontHeadline, fontBody, layout, err := encodeProfileSpecs(p)
	if err != nil {
		return nil, err
	}

	updated, err := scanProfile(s.db.QueryRowContext(ctx, `
		UPDATE profiles
		SET name = $1, logo_url = $2, color_dark = $3, color_light = $4, color_accent = $5,
			font_headline = $6, font_body = $7, layout = $8, system_prompt = $9, updated_at = NOW()
		WHERE id = $10
		RETURNING `+profileColumns+`
	`, p.Name, p.LogoURL, p.ColorDark, p.ColorLight, p.ColorAccent,
		fontHeadline, fontBody, layout, p.SystemPrompt, p.ID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return updated, nil
}

// UpdateLogoURL sets or clears the profile's logo URL.
func (s *ProfileStore) UpdateLogoURL(ctx context.Context, id uuid.UUID, logoURL *string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE profiles SET logo_url = $1, updated_at = NOW() WHERE id = $2
	`, logoURL, id)
	if err != nil {
		return fmt.Errorf("update profile logo: %w", err)
	}
	return nil
}

// Delete removes a profile. Designs cascade at the database level.
func (s *ProfileStore) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

func encodeProfileSpecs(p *models.Profile) (fontHeadline, fontBody, layout []byte, err error) {
	if fontHeadline, err = json.Marshal(p.FontHeadline); err != nil {
		return nil, nil, nil, fmt.Errorf("encode headline font: %w", err)
	}
	if fontBody, err = json.Marshal(p.FontBody); err != nil {
		return nil, nil, nil, fmt.Errorf("encode body font: %w", err)
	}
	if layout, err = json.Marshal(p.Layout); err != nil {
		return nil, nil, nil, fmt.Errorf("encode layout: %w", err)
	}
	return fontHeadline, fontBody, layout, nil
}
