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
)

func TestWaitlistJoinRejectsBadEmail(t *testing.T) {
	env := newTestEnv(t)

	r := httptest.NewRequest("POST", "/api/waitlist", strings.NewReader(`{"email":"not-an-email"}`))
	w := httptest.NewRecorder()
	env.WaitlistH.Join(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", w.Code)
	}
}

func TestWaitlistJoinIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	t.Cleanup(func() { env.DB.Exec("DELETE FROM waitlist WHERE email = $1", "eager@pixyo.test") })

	join := func() models.WaitlistEntry {
		t.Helper()
		r := httptest.NewRequest("POST", "/api/waitlist", strings.NewReader(`{"email":"Eager@Pixyo.Test "}`))
		w := httptest.NewRecorder()
		env.WaitlistH.Join(w, r)
		if w.Code != http.StatusOK {
			t.Fatalf("status: got %d, want 200; body %s", w.Code, w.Body)
		}
		var entry models.WaitlistEntry
		if err := json.NewDecoder(w.Body).Decode(&entry); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return entry
	}

	first := join()
	if first.Email != "eager@pixyo.test" {
		t.Errorf("email should be normalized: got %q", first.Email)
	}

	second := join()
	if second.ID != first.ID {
		t.Error("repeat signup should return the same row")
	}
}
