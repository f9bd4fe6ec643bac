// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pixyo/internal/models"
	"pixyo/internal/store"
)

func TestAdminCreateProfileDefaultsToSeedOwner(t *testing.T) {
	env := newTestEnv(t)
	h := NewAdmin(env.Users, env.Profiles, nil)

	body := `{"name":"Admin Made Brand","colorDark":"#101010"}`
	r := httptest.NewRequest("POST", "/api/admin/profiles", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.CreateProfile(w, r)

	if w.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201; body %s", w.Code, w.Body)
	}
	var created models.Profile
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	t.Cleanup(func() { env.DB.Exec("DELETE FROM profiles WHERE id = $1", created.ID) })

	if created.OwnerID != models.SeedUserID {
		t.Errorf("owner: got %q, want %q", created.OwnerID, models.SeedUserID)
	}
}

func TestAdminListProfilesIncludesCounts(t *testing.T) {
	env := newTestEnv(t)
	h := NewAdmin(env.Users, env.Profiles, nil)
	u := seedTestUser(t, env, "counted@pixyo.test", "correct-horse", nil)
	p := seedTestProfile(t, env, u.ID.String(), "Counted Brand")

	for range 2 {
		if _, err := env.Designs.Create(t.Context(), &models.Design{
			ProfileID: p.ID, Name: "D", Width: 1080, Height: 1080,
		}); err != nil {
			t.Fatalf("seed design: %v", err)
		}
	}

	r := httptest.NewRequest("GET", "/api/admin/profiles", nil)
	w := httptest.NewRecorder()
	h.ListProfiles(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	var list []store.ProfileWithCount
	if err := json.NewDecoder(w.Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}

	var found bool
	for _, pc := range list {
		if pc.ID == p.ID {
			found = true
			if pc.DesignCount != 2 {
				t.Errorf("design count: got %d, want 2", pc.DesignCount)
			}
		}
	}
	if !found {
		t.Error("seeded profile missing from admin list")
	}
}

func TestAdminUpdateUserMetadata(t *testing.T) {
	env := newTestEnv(t)
	h := NewAdmin(env.Users, env.Profiles, nil)
	u := seedTestUser(t, env, "tooled@pixyo.test", "correct-horse", nil)

	body := `{"metadata":{"allowedTools":["social-graphics"]}}`
	r := withURLParam(httptest.NewRequest("PUT", "/api/admin/users/"+u.ID.String(), strings.NewReader(body)),
		"id", u.ID.String())
	w := httptest.NewRecorder()
	h.UpdateUser(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200; body %s", w.Code, w.Body)
	}

	meta, err := env.Users.MetadataByID(t.Context(), u.ID)
	if err != nil {
		t.Fatalf("reload metadata: %v", err)
	}
	if meta == nil || meta.AllowedTools == nil {
		t.Fatal("allow-list should be persisted")
	}
	if got := *meta.AllowedTools; len(got) != 1 || got[0] != "social-graphics" {
		t.Errorf("allow-list: got %v", got)
	}

	// Null metadata clears every restriction.
	r = withURLParam(httptest.NewRequest("PUT", "/api/admin/users/"+u.ID.String(),
		strings.NewReader(`{"metadata":null}`)), "id", u.ID.String())
	w = httptest.NewRecorder()
	h.UpdateUser(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("clear status: got %d, want 200", w.Code)
	}

	meta, err = env.Users.MetadataByID(t.Context(), u.ID)
	if err != nil {
		t.Fatalf("reload metadata: %v", err)
	}
	if meta != nil {
		t.Errorf("metadata should be cleared, got %+v", meta)
	}
}

func TestAdminUpdateUnknownUser(t *testing.T) {
	env := newTestEnv(t)
	h := NewAdmin(env.Users, env.Profiles, nil)

	r := withURLParam(httptest.NewRequest("PUT", "/api/admin/users/not-a-uuid",
		strings.NewReader(`{}`)), "id", "not-a-uuid")
	w := httptest.NewRecorder()
	h.UpdateUser(w, r)

	if w.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", w.Code)
	}
}

func TestIsSVG(t *testing.T) {
	if !isSVG("image/svg+xml", nil) {
		t.Error("declared svg content type should pass")
	}
	if !isSVG("application/octet-stream", []byte(`<?xml version="1.0"?><svg xmlns="...">`)) {
		t.Error("sniffed svg markup should pass")
	}
	if isSVG("image/png", []byte{0x89, 'P', 'N', 'G'}) {
		t.Error("png must not pass the svg check")
	}
}
