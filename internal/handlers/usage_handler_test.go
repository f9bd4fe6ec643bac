// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pixyo/internal/models"
	"pixyo/internal/usage"
)

func TestUsageMe(t *testing.T) {
	env := newTestEnv(t)
	u := seedTestUser(t, env, "spender@pixyo.test", "correct-horse", nil)
	other := seedTestUser(t, env, "otherspender@pixyo.test", "correct-horse", nil)
	t.Cleanup(func() {
		env.DB.Exec("DELETE FROM usage_logs WHERE user_id IN ($1, $2)", u.ID.String(), other.ID.String())
	})

	for _, e := range []models.UsageLogEntry{
		{UserID: u.ID.String(), UserEmail: u.Email, Operation: "generate-image", CostEUR: 0.04, Model: "m"},
		{UserID: u.ID.String(), UserEmail: u.Email, Operation: "improve-prompt", CostEUR: 0.004, Model: "m"},
		{UserID: other.ID.String(), UserEmail: other.Email, Operation: "generate-image", CostEUR: 0.04, Model: "m"},
	} {
		if err := env.UsageLog.Append(t.Context(), &e); err != nil {
			t.Fatalf("seed ledger: %v", err)
		}
	}

	r := withSession(httptest.NewRequest("GET", "/api/usage/me", nil),
		testSession(u.ID, u.Email, "", true))
	w := httptest.NewRecorder()
	env.UsageH.Me(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	var summary usage.Summary
	if err := json.NewDecoder(w.Body).Decode(&summary); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if summary.TotalCalls != 2 {
		t.Errorf("total calls: got %d, want 2 (other users' entries must not leak)", summary.TotalCalls)
	}
	if summary.TotalEUR < 0.043 || summary.TotalEUR > 0.045 {
		t.Errorf("total cost: got %f, want ~0.044", summary.TotalEUR)
	}
}

func TestUsageAdminGroupsByUser(t *testing.T) {
	env := newTestEnv(t)
	a := seedTestUser(t, env, "usera@pixyo.test", "correct-horse", nil)
	b := seedTestUser(t, env, "userb@pixyo.test", "correct-horse", nil)
	t.Cleanup(func() {
		env.DB.Exec("DELETE FROM usage_logs WHERE user_id IN ($1, $2)", a.ID.String(), b.ID.String())
	})

	for _, e := range []models.UsageLogEntry{
		{UserID: a.ID.String(), UserEmail: a.Email, Operation: "generate-image", CostEUR: 0.04, Model: "m"},
		{UserID: a.ID.String(), UserEmail: a.Email, Operation: "generate-image", CostEUR: 0.04, Model: "m"},
		{UserID: b.ID.String(), UserEmail: b.Email, Operation: "improve-prompt", CostEUR: 0.004, Model: "m"},
	} {
		if err := env.UsageLog.Append(t.Context(), &e); err != nil {
			t.Fatalf("seed ledger: %v", err)
		}
	}

	r := httptest.NewRequest("GET", "/api/admin/usage", nil)
	w := httptest.NewRecorder()
	env.UsageH.Admin(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	var resp struct {
		Users []adminUsageRow `json:"users"`
		Since string          `json:"since"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Since == "" {
		t.Error("expected a since date")
	}

	var gotA, gotB *adminUsageRow
	for i := range resp.Users {
		switch resp.Users[i].UserID {
		case a.ID.String():
			gotA = &resp.Users[i]
		case b.ID.String():
			gotB = &resp.Users[i]
		}
	}
	if gotA == nil || gotB == nil {
		t.Fatalf("missing rows for seeded users: %+v", resp.Users)
	}
	if gotA.Calls != 2 || gotA.TotalEUR < 0.079 || gotA.TotalEUR > 0.081 {
		t.Errorf("user a rollup wrong: %+v", gotA)
	}
	if gotB.Calls != 1 {
		t.Errorf("user b rollup wrong: %+v", gotB)
	}
}
