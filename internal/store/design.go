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

	"pixyo/internal/editor"
	"pixyo/internal/models"
)

const designColumns = `id, profile_id, name, width, height, aspect_ratio, background_color,
	layers, tagline, headline, body, button_text, background_image, overlay, product_image,
	thumbnail_url, created_at, updated_at`

// DesignStore handles canvas design persistence. Layer stacks pass
// through editor.Sanitize on every write so a stored design always has
// exactly one background layer at the bottom.
type DesignStore struct {
	db *sql.DB
}

// NewDesignStore creates a new DesignStore with the given database connection.
func NewDesignStore(db *sql.DB) *DesignStore {
	return &DesignStore{db: db}
}

func scanDesign(row interface{ Scan(...any) error }) (*models.Design, error) {
	d := &models.Design{}
	var layers []byte
	var bgImage, overlay, productImage []byte
	err := row.Scan(
		&d.ID, &d.ProfileID, &d.Name, &d.Width, &d.Height, &d.AspectRatio, &d.BackgroundColor,
		&layers, &d.Tagline, &d.Headline, &d.Body, &d.ButtonText,
		&bgImage, &overlay, &productImage, &d.ThumbnailURL,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(layers, &d.Layers); err != nil {
		return nil, fmt.Errorf("decode layers: %w", err)
	}
	if len(bgImage) > 0 {
		d.BackgroundImage = &models.BackgroundImage{}
		if err := json.Unmarshal(bgImage, d.BackgroundImage); err != nil {
			return nil, fmt.Errorf("decode background image: %w", err)
		}
	}
	if len(overlay) > 0 {
		d.Overlay = &models.Overlay{}
		if err := json.Unmarshal(overlay, d.Overlay); err != nil {
			return nil, fmt.Errorf("decode overlay: %w", err)
		}
	}
	if len(productImage) > 0 {
		d.ProductImage = &models.ProductImage{}
		if err := json.Unmarshal(productImage, d.ProductImage); err != nil {
			return nil, fmt.Errorf("decode product image: %w", err)
		}
	}
	return d, nil
}

// FindByID retrieves a design by UUID. Returns nil if not found.
func (s *DesignStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Design, error) {
	d, err := scanDesign(s.db.QueryRowContext(ctx, `
		SELECT `+designColumns+` FROM designs WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find design by id: %w", err)
	}
	return d, nil
}

// ListByProfile returns all designs of a profile, newest first.
func (s *DesignStore) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]models.Design, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+designColumns+` FROM designs
		WHERE profile_id = $1
		ORDER BY created_at DESC
	`, profileID)
	if err != nil {
		return nil, fmt.Errorf("list designs: %w", err)
	}
	defer rows.Close()

	var designs []models.Design
	for rows.Next() {
		d, err := scanDesign(rows)
		if err != nil {
			return nil, fmt.Errorf("scan design: %w", err)
		}
		designs = append(designs, *d)
	}
	return designs, rows.Err()
}

// Create inserts a design. The layer stack is sanitized first.
func (s *DesignStore) Create(ctx context.Context, d *models.Design) (*models.Design, error) {
	d.Layers = editor.Sanitize(d.Layers, float64(d.Width), float64(d.Height))

	layers, bgImage, overlay, productImage, err := encodeDesignBlobs(d)
	if err != nil {
		return nil, err
	}

	created, err := scanDesign(s.db.QueryRowContext(ctx, `
		INSERT INTO designs (profile_id, name, width, height, aspect_ratio, background_color,
			layers, tagline, headline, body, button_text, background_image, overlay, product_image, thumbnail_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING `+designColumns+`
	`, d.ProfileID, d.Name, d.Width, d.Height, d.AspectRatio, d.BackgroundColor,
		layers, d.Tagline, d.Headline, d.Body, d.ButtonText,
		bgImage, overlay, productImage, d.ThumbnailURL))
	if err != nil {
		return nil, fmt.Errorf("create design: %w", err)
	}
	return created, nil
}

// Update saves a design's full editable state. The layer stack is
// sanitized first. Returns nil if the design no longer exists.
func (s *DesignStore) Update(ctx context.Context, d *models.Design) (*models.Design, error) {
	d.Layers = editor.Sanitize(d.Layers, float64(d.Width), float64(d.Height))

	layers, bgImage, overlay, productImage, err := encodeDesignBlobs(d)
	if err != nil {
		return nil, err
	}

	updated, err := scanDesign(s.db.QueryRowContext(ctx, `
		UPDATE designs
		SET name = $1, width = $2, height = $3, aspect_ratio = $4, background_color = $5,
			layers = $6, tagline = $7, headline = $8, body = $9, button_text = $10,
			background_image = $11, overlay = $12, product_image = $13, updated_at = NOW()
		WHERE id = $14
		RETURNING `+designColumns+`
	`, d.Name, d.Width, d.Height, d.AspectRatio, d.BackgroundColor,
		layers, d.Tagline, d.Headline, d.Body, d.ButtonText,
		bgImage, overlay, productImage, d.ID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update design: %w", err)
	}
	return updated, nil
}

// Duplicate copies a design into a new row under the same profile. The
// thumbnail is NOT carried over since the copy has never been rendered.
func (s *DesignStore) Duplicate(ctx context.Context, src *models.Design, name string) (*models.Design, error) {
	copied := *src
	copied.Name = name
	copied.ThumbnailURL = nil
	copied.Layers = editor.CloneLayers(src.Layers)
	return s.Create(ctx, &copied)
}

// UpdateThumbnail sets or clears the rendered preview URL.
func (s *DesignStore) UpdateThumbnail(ctx context.Context, id uuid.UUID, thumbnailURL *string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE designs SET thumbnail_url = $1, updated_at = NOW() WHERE id = $2
	`, thumbnailURL, id)
	if err != nil {
		return fmt.Errorf("update design thumbnail: %w", err)
	}
	return nil
}

// UpdateBackgroundImage sets or clears the full-bleed background image.
func (s *DesignStore) UpdateBackgroundImage(ctx context.Context, id uuid.UUID, bg *models.BackgroundImage) error {
	var raw []byte
	if bg != nil {
		var err error
		raw, err = json.Marshal(bg)
		if err != nil {
			return fmt.Errorf("encode background image: %w", err)
		}
	}
	_, err := s.db.ExecContext(ctx, `
		UPDATE designs SET background_image = $1, updated_at = NOW() WHERE id = $2
	`, raw, id)
	if err != nil {
		return fmt.Errorf("update design background: %w", err)
	}
	return nil
}

// Delete removes a design by ID.
func (s *DesignStore) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM designs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete design: %w", err)
	}
	return nil
}

func encodeDesignBlobs(d *models.Design) (layers, bgImage, overlay, productImage []byte, err error) {
	if layers, err = json.Marshal(d.Layers); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("encode layers: %w", err)
	}
	if d.BackgroundImage != nil {
		if bgImage, err = json.Marshal(d.BackgroundImage); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("encode background image: %w", err)
		}
	}
	if d.Overlay != nil {
		if overlay, err = json.Marshal(d.Overlay); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("encode overlay: %w", err)
		}
	}
	if d.ProductImage != nil {
		if productImage, err = json.Marshal(d.ProductImage); err != nil {
			return nil, nil, nil, nil, fmt.Errorf("encode product image: %w", err)
		}
	}
	return layers, bgImage, overlay, productImage, nil
}
