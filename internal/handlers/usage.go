// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"time"

	"pixyo/internal/middleware"
	"pixyo/internal/store"
	"pixyo/internal/usage"
)

// Usage serves the AI cost ledger aggregations.
type Usage struct {
	usageLogs *store.UsageLogStore
}

// NewUsage creates a new Usage handler group.
func NewUsage(usageLogs *store.UsageLogStore) *Usage {
	return &Usage{usageLogs: usageLogs}
}

// Me returns the caller's last 90 days of usage, aggregated by UTC day,
// most recent day first. Days without entries are omitted.
func (h *Usage) Me(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	since := usage.WindowStart(time.Now())
	entries, err := h.usageLogs.ListSinceForUser(r.Context(), sess.UserID.String(), since)
	if err != nil {
		writeInternal(w, "load usage failed", err)
		return
	}

	writeJSON(w, http.StatusOK, usage.Aggregate(entries))
}

// adminUsageRow is one user's aggregate in the admin overview.
type adminUsageRow struct {
	UserID    string  `json:"userId"`
	UserEmail string  `json:"userEmail"`
	TotalEUR  float64 `json:"totalEur"`
	Calls     int     `json:"calls"`
}

// Admin returns per-user totals over the same 90 day window for the
// admin dashboard.
func (h *Usage) Admin(w http.ResponseWriter, r *http.Request) {
	since := usage.WindowStart(time.Now())
	entries, err := h.usageLogs.ListSince(r.Context(), since)
	if err != nil {
		writeInternal(w, "load usage failed", err)
		return
	}

	byUser := make(map[string]*adminUsageRow)
	order := []string{}
	for _, e := range entries {
		row, ok := byUser[e.UserID]
		if !ok {
			row = &adminUsageRow{UserID: e.UserID, UserEmail: e.UserEmail}
			byUser[e.UserID] = row
			order = append(order, e.UserID)
		}
		row.TotalEUR += e.CostEUR
		row.Calls++
	}

	rows := make([]adminUsageRow, 0, len(order))
	for _, id := range order {
		rows = append(rows, *byUser[id])
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"users": rows,
		"since": since.Format("2006-01-02"),
	})
}
