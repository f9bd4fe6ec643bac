// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"pixyo/internal/models"
	"pixyo/internal/storage"
	"pixyo/internal/store"
)

// Admin groups the admin-only HTTP handlers. All routes behind it sit
// behind RequireAdmin + Require2FA; ownership checks are bypassed.
type Admin struct {
	users    *store.UserStore
	profiles *store.ProfileStore
	blobs    *storage.Client // nil when storage is not configured
}

// NewAdmin creates a new Admin handler group.
func NewAdmin(users *store.UserStore, profiles *store.ProfileStore, blobs *storage.Client) *Admin {
	return &Admin{users: users, profiles: profiles, blobs: blobs}
}

// ListProfiles returns every profile with design counts.
func (h *Admin) ListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profiles.ListAll(r.Context())
	if err != nil {
		writeInternal(w, "admin list profiles failed", err)
		return
	}
	if profiles == nil {
		profiles = []store.ProfileWithCount{}
	}
	writeJSON(w, http.StatusOK, profiles)
}

type adminProfileRequest struct {
	profileRequest
	// OwnerID may be a user UUID string or the seed sentinel; empty
	// defaults to the seed identity so admin-created brands are shared.
	OwnerID string `json:"ownerId"`
}

// CreateProfile inserts a profile with an explicit owner.
func (h *Admin) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req adminProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if ferr := validateProfileInput(req.Name, req.ColorDark, req.ColorLight, req.ColorAccent, req.SystemPrompt); !ferr.ok() {
		writeValidation(w, ferr.details())
		return
	}

	owner := strings.TrimSpace(req.OwnerID)
	if owner == "" {
		owner = models.SeedUserID
	}

	p := &models.Profile{OwnerID: owner}
	req.apply(p)

	created, err := h.profiles.Create(r.Context(), p)
	if err != nil {
		writeInternal(w, "admin create profile failed", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UploadLogo stores an SVG logo for any profile, no ownership check.
func (h *Admin) UploadLogo(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadProfile(w, r)
	if !ok {
		return
	}
	if h.blobs == nil {
		writeError(w, http.StatusServiceUnavailable, "storage_unconfigured", "Object storage is not configured.")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeValidation(w, map[string]string{"file": "A multipart file field is required."})
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		writeInternal(w, "read logo upload failed", err)
		return
	}
	if !isSVG(header.Header.Get("Content-Type"), raw) {
		writeValidation(w, map[string]string{"file": "Logo must be an SVG file."})
		return
	}

	key := fmt.Sprintf("%s/%s.svg", storage.PrefixLogos, p.ID)
	url, err := h.blobs.Upload(r.Context(), key, "image/svg+xml", bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		writeInternal(w, "logo upload failed", err)
		return
	}

	prior := p.LogoURL
	if err := h.profiles.UpdateLogoURL(r.Context(), p.ID, &url); err != nil {
		writeInternal(w, "save logo url failed", err)
		return
	}
	if prior != nil && *prior != url {
		deleteOwnBlob(r.Context(), h.blobs, *prior)
	}

	writeJSON(w, http.StatusOK, map[string]string{"logoUrl": url})
}

// DeleteLogo removes a profile's logo reference and blob.
func (h *Admin) DeleteLogo(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadProfile(w, r)
	if !ok {
		return
	}

	if err := h.profiles.UpdateLogoURL(r.Context(), p.ID, nil); err != nil {
		writeInternal(w, "clear logo url failed", err)
		return
	}
	if p.LogoURL != nil {
		deleteOwnBlob(r.Context(), h.blobs, *p.LogoURL)
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListUsers returns all accounts for the admin dashboard.
func (h *Admin) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeInternal(w, "admin list users failed", err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

type updateUserRequest struct {
	Metadata *models.UserMetadata `json:"metadata"`
}

// UpdateUser replaces a user's metadata (role and tool allow-list).
// Passing null metadata clears all restrictions.
func (h *Admin) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeNotFound(w)
		return
	}
	user, err := h.users.FindByID(r.Context(), id)
	if err != nil {
		writeInternal(w, "load user failed", err)
		return
	}
	if user == nil {
		writeNotFound(w)
		return
	}

	var req updateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.users.UpdateMetadata(r.Context(), id, req.Metadata); err != nil {
		writeInternal(w, "update user metadata failed", err)
		return
	}

	user.Metadata = req.Metadata
	writeJSON(w, http.StatusOK, user)
}

func (h *Admin) loadProfile(w http.ResponseWriter, r *http.Request) (*models.Profile, bool) {
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
	return p, true
}

// isSVG accepts either a declared SVG content type or sniffable SVG
// markup; browsers are inconsistent about the former.
func isSVG(contentType string, raw []byte) bool {
	if strings.Contains(contentType, "svg") {
		return true
	}
	head := bytes.TrimSpace(raw)
	if len(head) > 512 {
		head = head[:512]
	}
	return bytes.Contains(head, []byte("<svg"))
}
