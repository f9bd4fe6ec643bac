// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"pixyo/internal/store"
)

// Waitlist captures landing page signups. The only unauthenticated
// write endpoint in the API.
type Waitlist struct {
	waitlist *store.WaitlistStore
}

// NewWaitlist creates a new Waitlist handler group.
func NewWaitlist(waitlist *store.WaitlistStore) *Waitlist {
	return &Waitlist{waitlist: waitlist}
}

type waitlistRequest struct {
	Email string `json:"email"`
}

// Join upserts a signup by email; repeat submissions return the same row.
func (h *Waitlist) Join(w http.ResponseWriter, r *http.Request) {
	var req waitlistRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if ferr := validateEmail(req.Email); !ferr.ok() {
		writeValidation(w, ferr.details())
		return
	}

	entry, err := h.waitlist.Add(r.Context(), req.Email)
	if err != nil {
		writeInternal(w, "waitlist add failed", err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
