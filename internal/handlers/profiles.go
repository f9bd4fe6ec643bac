// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"pixyo/internal/middleware"
	"pixyo/internal/models"
	"pixyo/internal/permissions"
	"pixyo/internal/storage"
	"pixyo/internal/store"
)

// Profiles groups the brand profile HTTP handlers.
type Profiles struct {
	profiles *store.ProfileStore
	blobs    *storage.Client // nil when storage is not configured
}

// NewProfiles creates a new Profiles handler group.
func NewProfiles(profiles *store.ProfileStore, blobs *storage.Client) *Profiles {
	return &Profiles{profiles: profiles, blobs: blobs}
}

type profileRequest struct {
	Name         string            `json:"name"`
	LogoURL      *string           `json:"logoUrl"`
	ColorDark    string            `json:"colorDark"`
	ColorLight   string            `json:"colorLight"`
	ColorAccent  string            `json:"colorAccent"`
	FontHeadline models.FontSpec   `json:"fontHeadline"`
	FontBody     models.FontSpec   `json:"fontBody"`
	Layout       models.LayoutSpec `json:"layout"`
	SystemPrompt string            `json:"systemPrompt"`
}

func (req *profileRequest) apply(p *models.Profile) {
	p.Name = req.Name
	p.LogoURL = req.LogoURL
	p.ColorDark = req.ColorDark
	p.ColorLight = req.ColorLight
	p.ColorAccent = req.ColorAccent
	p.FontHeadline = req.FontHeadline
	p.FontBody = req.FontBody
	p.Layout = req.Layout
	p.SystemPrompt = req.SystemPrompt
}

// List returns the caller's profiles plus the shared demo profiles.
func (h *Profiles) List(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	profiles, err := h.profiles.ListVisibleTo(r.Context(), sess.UserID.String())
	if err != nil {
		writeInternal(w, "list profiles failed", err)
		return
	}
	if profiles == nil {
		profiles = []models.Profile{}
	}
	writeJSON(w, http.StatusOK, profiles)
}

// Create inserts a profile owned by the caller.
func (h *Profiles) Create(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	var req profileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if ferr := validateProfileInput(req.Name, req.ColorDark, req.ColorLight, req.ColorAccent, req.SystemPrompt); !ferr.ok() {
		writeValidation(w, ferr.details())
		return
	}

	p := &models.Profile{OwnerID: sess.UserID.String()}
	req.apply(p)

	created, err := h.profiles.Create(r.Context(), p)
	if err != nil {
		writeInternal(w, "create profile failed", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Get returns one profile, ownership-or-seed gated.
func (h *Profiles) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadGuarded(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Update replaces the mutable profile fields.
func (h *Profiles) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadGuarded(w, r)
	if !ok {
		return
	}

	var req profileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if ferr := validateProfileInput(req.Name, req.ColorDark, req.ColorLight, req.ColorAccent, req.SystemPrompt); !ferr.ok() {
		writeValidation(w, ferr.details())
		return
	}

	req.apply(p)
	updated, err := h.profiles.Update(r.Context(), p)
	if err != nil {
		writeInternal(w, "update profile failed", err)
		return
	}
	if updated == nil {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete removes a profile and its designs. The stored logo blob is
// cleaned up best-effort when it lives in our storage.
func (h *Profiles) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadGuarded(w, r)
	if !ok {
		return
	}

	if err := h.profiles.Delete(r.Context(), p.ID); err != nil {
		writeInternal(w, "delete profile failed", err)
		return
	}

	if p.LogoURL != nil {
		deleteOwnBlob(r.Context(), h.blobs, *p.LogoURL)
	}

	w.WriteHeader(http.StatusNoContent)
}

// loadGuarded fetches the {id} profile and applies the ownership guard.
// NotFound is reported before Forbidden so foreign ids and absent ids
// are indistinguishable.
func (h *Profiles) loadGuarded(w http.ResponseWriter, r *http.Request) (*models.Profile, bool) {
	sess := middleware.SessionFromCtx(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeNotFound(w)
		return nil, false
	}

	p, err := h.profiles.FindByID(r.Context(), id)
	if err != nil {
		writeInternal(w, "load profile failed", err)
		return nil, false
	}
	if p == nil {
		writeNotFound(w)
		return nil, false
	}
	if permissions.CheckOwnership(p.OwnerID, sess.UserID.String()) != permissions.Allowed {
		writeForbidden(w)
		return nil, false
	}
	return p, true
}

// deleteOwnBlob removes a blob when the URL maps back to our storage.
// Failures are logged and swallowed; cleanup never fails a request.
func deleteOwnBlob(ctx context.Context, blobs *storage.Client, url string) {
	if blobs == nil {
		return
	}
	key, ok := blobs.ExtractKey(url)
	if !ok {
		return
	}
	if err := blobs.Delete(ctx, key); err != nil {
		slog.Warn("blob cleanup failed", "key", key, "error", err)
	}
}
