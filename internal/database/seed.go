package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"pixyo/internal/editor"
	"pixyo/internal/models"
)

// Seed populates the database with initial development data: a default
// admin user and a shared demo brand owned by the seed identity. The
// admin will be prompted to set up 2FA on first login (totp_enabled =
// false). Demo resources are visible and editable by every account.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	meta, err := json.Marshal(models.UserMetadata{Role: models.RoleAdmin})
	if err != nil {
		return fmt.Errorf("seed encode metadata: %w", err)
	}

	// 2FA is not enabled: the admin must set it up on first login.
	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, display_name, metadata, totp_enabled)
		VALUES ($1, $2, $3, $4, $5)
	`, "admin@pixyo.local", string(hash), "Admin", meta, false)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	if err := seedDemoBrand(db); err != nil {
		return err
	}

	slog.Info("database seeded with default admin user",
		"email", "admin@pixyo.local",
		"password", "admin",
	)

	return nil
}

// seedDemoBrand inserts the shared demo profile and a starter design so
// a fresh install has something to open in the editor.
func seedDemoBrand(db *sql.DB) error {
	demo := models.Profile{
		OwnerID:      models.SeedUserID,
		Slug:         "demo-roastery",
		Name:         "Demo Roastery",
		ColorDark:    "#2b2118",
		ColorLight:   "#f7f1e8",
		ColorAccent:  "#c8742f",
		FontHeadline: models.FontSpec{Family: "Fraunces", Weight: 700, Size: 56},
		FontBody:     models.FontSpec{Family: "Inter", Weight: 400, Size: 18},
		Layout:       models.LayoutSpec{Padding: 48, Gap: 24, ButtonShape: "pill"},
		SystemPrompt: "Specialty coffee roastery. Warm, craft-focused tone. Earthy photography, never neon.",
	}

	fontHeadline, _ := json.Marshal(demo.FontHeadline)
	fontBody, _ := json.Marshal(demo.FontBody)
	layout, _ := json.Marshal(demo.Layout)

	var profileID string
	err := db.QueryRow(`
		INSERT INTO profiles (owner_id, slug, name, color_dark, color_light, color_accent,
			font_headline, font_body, layout, system_prompt)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`, demo.OwnerID, demo.Slug, demo.Name, demo.ColorDark, demo.ColorLight, demo.ColorAccent,
		fontHeadline, fontBody, layout, demo.SystemPrompt).Scan(&profileID)
	if err != nil {
		return fmt.Errorf("seed insert demo profile: %w", err)
	}

	const w, h = 1080, 1080
	layers, err := json.Marshal(editor.DefaultLayers(&demo, w, h))
	if err != nil {
		return fmt.Errorf("seed encode demo layers: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO designs (profile_id, name, width, height, aspect_ratio, background_color,
			layers, tagline, headline, body, button_text)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, profileID, "Welcome Post", w, h, "1:1", demo.ColorDark,
		layers, "Freshly roasted", "Meet your new morning ritual",
		"Single-origin beans, roasted this week and shipped to your door.", "Shop beans")
	if err != nil {
		return fmt.Errorf("seed insert demo design: %w", err)
	}

	return nil
}
