// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"pixyo/internal/models"
)

func testProfile(ownerID, name string) *models.Profile {
	return &models.Profile{
		OwnerID:      ownerID,
		Name:         name,
		ColorDark:    "#1a1a2e",
		ColorLight:   "#f5f5f5",
		ColorAccent:  "#e94560",
		FontHeadline: models.FontSpec{Family: "Inter", Weight: 700, Size: 48},
		FontBody:     models.FontSpec{Family: "Inter", Weight: 400, Size: 16},
		Layout:       models.LayoutSpec{Padding: 48, Gap: 24, ButtonShape: "pill"},
		SystemPrompt: "Warm, direct, no exclamation marks.",
	}
}

func TestProfileStoreCreate(t *testing.T) {
	db := testDB(t)
	s := NewProfileStore(db)
	ctx := context.Background()

	owner := "test-owner-" + uuid.NewString()
	t.Cleanup(func() { cleanProfiles(t, db, "acme-coffee-roasters") })

	p, err := s.Create(ctx, testProfile(owner, "Acme Coffee Roasters"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if p.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}
	if p.Slug != "acme-coffee-roasters" {
		t.Errorf("slug: got %q, want %q", p.Slug, "acme-coffee-roasters")
	}
	if p.FontHeadline.Weight != 700 {
		t.Errorf("headline weight: got %d, want 700", p.FontHeadline.Weight)
	}
	if p.Layout.ButtonShape != "pill" {
		t.Errorf("button shape: got %q, want %q", p.Layout.ButtonShape, "pill")
	}
}

func TestProfileStoreSlugCollision(t *testing.T) {
	db := testDB(t)
	s := NewProfileStore(db)
	ctx := context.Background()

	owner := "test-owner-" + uuid.NewString()
	t.Cleanup(func() { cleanProfiles(t, db, "collision-brand") })

	first, err := s.Create(ctx, testProfile(owner, "Collision Brand"))
	if err != nil {
		t.Fatalf("first Create: %v", err)
	}

	// The second create must survive the unique violation on the plain
	// slug and come back suffixed, not as an error.
	second, err := s.Create(ctx, testProfile(owner, "Collision Brand"))
	if err != nil {
		t.Fatalf("second Create: %v", err)
	}

	if second.Slug == first.Slug {
		t.Errorf("expected distinct slugs, both got %q", first.Slug)
	}
	if !strings.HasPrefix(second.Slug, "collision-brand-") {
		t.Errorf("expected timestamp-suffixed slug, got %q", second.Slug)
	}
}

func TestProfileStoreListVisibleTo(t *testing.T) {
	db := testDB(t)
	s := NewProfileStore(db)
	ctx := context.Background()

	owner := "test-owner-" + uuid.NewString()
	other := "test-owner-" + uuid.NewString()
	t.Cleanup(func() {
		cleanProfiles(t, db, "visible-own", "visible-seed", "visible-foreign")
	})

	if _, err := s.Create(ctx, testProfile(owner, "Visible Own")); err != nil {
		t.Fatalf("Create own: %v", err)
	}
	if _, err := s.Create(ctx, testProfile(models.SeedUserID, "Visible Seed")); err != nil {
		t.Fatalf("Create seed: %v", err)
	}
	if _, err := s.Create(ctx, testProfile(other, "Visible Foreign")); err != nil {
		t.Fatalf("Create foreign: %v", err)
	}

	profiles, err := s.ListVisibleTo(ctx, owner)
	if err != nil {
		t.Fatalf("ListVisibleTo: %v", err)
	}

	var sawOwn, sawSeed bool
	for _, p := range profiles {
		switch p.Slug {
		case "visible-own":
			sawOwn = true
		case "visible-seed":
			sawSeed = true
		case "visible-foreign":
			t.Error("foreign profile leaked into listing")
		}
	}
	if !sawOwn || !sawSeed {
		t.Errorf("missing expected profiles: own=%v seed=%v", sawOwn, sawSeed)
	}
}

func TestProfileStoreUpdate(t *testing.T) {
	db := testDB(t)
	s := NewProfileStore(db)
	ctx := context.Background()

	owner := "test-owner-" + uuid.NewString()
	t.Cleanup(func() { cleanProfiles(t, db, "update-brand") })

	p, err := s.Create(ctx, testProfile(owner, "Update Brand"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	p.Name = "Renamed Brand"
	p.ColorAccent = "#00ff88"
	p.Layout.ButtonShape = "sharp"
	updated, err := s.Update(ctx, p)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.Name != "Renamed Brand" {
		t.Errorf("name: got %q", updated.Name)
	}
	if updated.ColorAccent != "#00ff88" {
		t.Errorf("accent: got %q", updated.ColorAccent)
	}
	if updated.Layout.ButtonShape != "sharp" {
		t.Errorf("button shape: got %q", updated.Layout.ButtonShape)
	}
	// Slug stays stable across renames.
	if updated.Slug != p.Slug {
		t.Errorf("slug changed on rename: %q -> %q", p.Slug, updated.Slug)
	}

	// Updating a vanished profile returns nil, nil.
	ghost := testProfile(owner, "Ghost")
	ghost.ID = uuid.New()
	got, err := s.Update(ctx, ghost)
	if err != nil {
		t.Fatalf("Update (ghost): %v", err)
	}
	if got != nil {
		t.Error("expected nil for update of missing profile")
	}
}

func TestProfileStoreLogoURL(t *testing.T) {
	db := testDB(t)
	s := NewProfileStore(db)
	ctx := context.Background()

	owner := "test-owner-" + uuid.NewString()
	t.Cleanup(func() { cleanProfiles(t, db, "logo-brand") })

	p, _ := s.Create(ctx, testProfile(owner, "Logo Brand"))
	if p.LogoURL != nil {
		t.Error("expected no logo initially")
	}

	url := "https://cdn.example.com/pixyo/logos/abc.svg"
	if err := s.UpdateLogoURL(ctx, p.ID, &url); err != nil {
		t.Fatalf("UpdateLogoURL: %v", err)
	}
	found, _ := s.FindByID(ctx, p.ID)
	if found.LogoURL == nil || *found.LogoURL != url {
		t.Errorf("logo url: got %v, want %q", found.LogoURL, url)
	}

	if err := s.UpdateLogoURL(ctx, p.ID, nil); err != nil {
		t.Fatalf("UpdateLogoURL (clear): %v", err)
	}
	found, _ = s.FindByID(ctx, p.ID)
	if found.LogoURL != nil {
		t.Error("expected logo cleared")
	}
}

func TestProfileStoreDelete(t *testing.T) {
	db := testDB(t)
	s := NewProfileStore(db)
	ctx := context.Background()

	owner := "test-owner-" + uuid.NewString()

	p, _ := s.Create(ctx, testProfile(owner, "Delete Brand"))
	if err := s.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	found, _ := s.FindByID(ctx, p.ID)
	if found != nil {
		t.Error("expected nil after delete")
	}
}

func TestIsSlugConflict(t *testing.T) {
	slugViolation := &pgconn.PgError{Code: "23505", ConstraintName: "profiles_slug_key"}

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"slug unique violation", slugViolation, true},
		{"wrapped violation", fmt.Errorf("create profile: %w", slugViolation), true},
		{"unique violation on another constraint", &pgconn.PgError{Code: "23505", ConstraintName: "profiles_pkey"}, false},
		{"different pg error", &pgconn.PgError{Code: "23503", ConstraintName: "profiles_slug_key"}, false},
		{"plain error", errors.New("connection reset"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isSlugConflict(tt.err); got != tt.want {
				t.Errorf("isSlugConflict(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
