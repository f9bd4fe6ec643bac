// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"pixyo/internal/models"
)

func TestProfilesCreateAndGet(t *testing.T) {
	env := newTestEnv(t)
	u := seedTestUser(t, env, "brands@pixyo.test", "correct-horse", nil)
	sess := testSession(u.ID, u.Email, "", true)

	body := `{"name":"Test Roastery","colorDark":"#1a1a2e","colorAccent":"#e94560"}`
	r := withSession(httptest.NewRequest("POST", "/api/profiles", strings.NewReader(body)), sess)
	w := httptest.NewRecorder()
	env.ProfilesH.Create(w, r)

	if w.Code != http.StatusCreated {
		t.Fatalf("create status: got %d, want 201; body %s", w.Code, w.Body)
	}
	var created models.Profile
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	t.Cleanup(func() { env.DB.Exec("DELETE FROM profiles WHERE id = $1", created.ID) })

	if created.OwnerID != u.ID.String() {
		t.Errorf("owner: got %q, want %q", created.OwnerID, u.ID)
	}
	if created.Slug == "" {
		t.Error("expected a generated slug")
	}

	r = withURLParamAndSession(httptest.NewRequest("GET", "/api/profiles/"+created.ID.String(), nil),
		"id", created.ID.String(), sess)
	w = httptest.NewRecorder()
	env.ProfilesH.Get(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("get status: got %d, want 200", w.Code)
	}
}

func TestProfilesCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	u := seedTestUser(t, env, "brands@pixyo.test", "correct-horse", nil)
	sess := testSession(u.ID, u.Email, "", true)

	body := `{"name":"Bad Colors","colorDark":"red"}`
	r := withSession(httptest.NewRequest("POST", "/api/profiles", strings.NewReader(body)), sess)
	w := httptest.NewRecorder()
	env.ProfilesH.Create(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", w.Code)
	}
	var resp struct {
		Details map[string]string `json:"details"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := resp.Details["colorDark"]; !ok {
		t.Errorf("expected a colorDark detail, got %v", resp.Details)
	}
}

func TestProfilesForeignIsForbidden(t *testing.T) {
	env := newTestEnv(t)
	owner := seedTestUser(t, env, "owner@pixyo.test", "correct-horse", nil)
	other := seedTestUser(t, env, "other@pixyo.test", "correct-horse", nil)
	p := seedTestProfile(t, env, owner.ID.String(), "Private Brand")

	r := withURLParamAndSession(httptest.NewRequest("GET", "/api/profiles/"+p.ID.String(), nil),
		"id", p.ID.String(), testSession(other.ID, other.Email, "", true))
	w := httptest.NewRecorder()
	env.ProfilesH.Get(w, r)

	if w.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want 403", w.Code)
	}
}

func TestProfilesSeedIsReadable(t *testing.T) {
	env := newTestEnv(t)
	u := seedTestUser(t, env, "reader@pixyo.test", "correct-horse", nil)
	p := seedTestProfile(t, env, models.SeedUserID, "Shared Demo Brand")

	r := withURLParamAndSession(httptest.NewRequest("GET", "/api/profiles/"+p.ID.String(), nil),
		"id", p.ID.String(), testSession(u.ID, u.Email, "", true))
	w := httptest.NewRecorder()
	env.ProfilesH.Get(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", w.Code)
	}
}

func TestProfilesUnknownAndMalformedID(t *testing.T) {
	env := newTestEnv(t)
	u := seedTestUser(t, env, "reader@pixyo.test", "correct-horse", nil)
	sess := testSession(u.ID, u.Email, "", true)

	for _, id := range []string{uuid.NewString(), "not-a-uuid"} {
		r := withURLParamAndSession(httptest.NewRequest("GET", "/api/profiles/"+id, nil), "id", id, sess)
		w := httptest.NewRecorder()
		env.ProfilesH.Get(w, r)
		if w.Code != http.StatusNotFound {
			t.Errorf("id %q: got %d, want 404", id, w.Code)
		}
	}
}

func TestProfilesUpdateKeepsSlug(t *testing.T) {
	env := newTestEnv(t)
	u := seedTestUser(t, env, "rename@pixyo.test", "correct-horse", nil)
	sess := testSession(u.ID, u.Email, "", true)
	p := seedTestProfile(t, env, u.ID.String(), "Before Rename")

	body := `{"name":"After Rename","colorDark":"#000000"}`
	r := withURLParamAndSession(httptest.NewRequest("PUT", "/api/profiles/"+p.ID.String(), strings.NewReader(body)),
		"id", p.ID.String(), sess)
	w := httptest.NewRecorder()
	env.ProfilesH.Update(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200; body %s", w.Code, w.Body)
	}
	var updated models.Profile
	if err := json.NewDecoder(w.Body).Decode(&updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated.Name != "After Rename" {
		t.Errorf("name: got %q", updated.Name)
	}
	if updated.Slug != p.Slug {
		t.Errorf("slug changed on rename: %q -> %q", p.Slug, updated.Slug)
	}
}

func TestProfilesDeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	u := seedTestUser(t, env, "delete@pixyo.test", "correct-horse", nil)
	sess := testSession(u.ID, u.Email, "", true)
	p := seedTestProfile(t, env, u.ID.String(), "Doomed Brand")

	d, err := env.Designs.Create(context.Background(), &models.Design{
		ProfileID: p.ID, Name: "Doomed Design", Width: 1080, Height: 1080,
	})
	if err != nil {
		t.Fatalf("seed design: %v", err)
	}

	r := withURLParamAndSession(httptest.NewRequest("DELETE", "/api/profiles/"+p.ID.String(), nil),
		"id", p.ID.String(), sess)
	w := httptest.NewRecorder()
	env.ProfilesH.Delete(w, r)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status: got %d, want 204", w.Code)
	}
	gone, err := env.Designs.FindByID(context.Background(), d.ID)
	if err != nil {
		t.Fatalf("reload design: %v", err)
	}
	if gone != nil {
		t.Error("design should be cascade-deleted with its profile")
	}
}

func TestProfilesListIncludesSeed(t *testing.T) {
	env := newTestEnv(t)
	u := seedTestUser(t, env, "list@pixyo.test", "correct-horse", nil)
	mine := seedTestProfile(t, env, u.ID.String(), "Mine Alone")
	shared := seedTestProfile(t, env, models.SeedUserID, "Everyone Sees This")
	foreignOwner := seedTestUser(t, env, "stranger@pixyo.test", "correct-horse", nil)
	foreign := seedTestProfile(t, env, foreignOwner.ID.String(), "Not Yours")

	r := withSession(httptest.NewRequest("GET", "/api/profiles", nil),
		testSession(u.ID, u.Email, "", true))
	w := httptest.NewRecorder()
	env.ProfilesH.List(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	var list []models.Profile
	if err := json.NewDecoder(w.Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}

	seen := map[uuid.UUID]bool{}
	for _, p := range list {
		seen[p.ID] = true
	}
	if !seen[mine.ID] || !seen[shared.ID] {
		t.Error("list should include own and seed profiles")
	}
	if seen[foreign.ID] {
		t.Error("list must not include foreign profiles")
	}
}
