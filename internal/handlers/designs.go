// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"pixyo/internal/editor"
	"pixyo/internal/imaging"
	"pixyo/internal/middleware"
	"pixyo/internal/models"
	"pixyo/internal/permissions"
	"pixyo/internal/storage"
	"pixyo/internal/store"
)

// maxUploadSize bounds thumbnail and background uploads.
const maxUploadSize = 15 << 20

// Designs groups the canvas design HTTP handlers.
type Designs struct {
	designs  *store.DesignStore
	profiles *store.ProfileStore
	blobs    *storage.Client // nil when storage is not configured
}

// NewDesigns creates a new Designs handler group.
func NewDesigns(designs *store.DesignStore, profiles *store.ProfileStore, blobs *storage.Client) *Designs {
	return &Designs{designs: designs, profiles: profiles, blobs: blobs}
}

type designRequest struct {
	ProfileID       uuid.UUID               `json:"profileId"`
	Name            string                  `json:"name"`
	Width           int                     `json:"width"`
	Height          int                     `json:"height"`
	AspectRatio     string                  `json:"aspectRatio"`
	BackgroundColor string                  `json:"backgroundColor"`
	Layers          []models.Layer          `json:"layers"`
	Tagline         string                  `json:"tagline"`
	Headline        string                  `json:"headline"`
	Body            string                  `json:"body"`
	ButtonText      string                  `json:"buttonText"`
	BackgroundImage *models.BackgroundImage `json:"backgroundImage"`
	Overlay         *models.Overlay         `json:"overlay"`
	ProductImage    *models.ProductImage    `json:"productImage"`
}

// List returns the designs of ?profileId=, newest first.
func (h *Designs) List(w http.ResponseWriter, r *http.Request) {
	profileID, err := uuid.Parse(r.URL.Query().Get("profileId"))
	if err != nil {
		writeValidation(w, map[string]string{"profileId": "A valid profileId query parameter is required."})
		return
	}

	if _, ok := h.guardProfile(w, r, profileID); !ok {
		return
	}

	designs, err := h.designs.ListByProfile(r.Context(), profileID)
	if err != nil {
		writeInternal(w, "list designs failed", err)
		return
	}
	if designs == nil {
		designs = []models.Design{}
	}
	writeJSON(w, http.StatusOK, designs)
}

// Create inserts a design under an accessible profile. An empty layer
// stack is filled with the brand's starter layers.
func (h *Designs) Create(w http.ResponseWriter, r *http.Request) {
	var req designRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if ferr := validateDesignInput(req.Name, req.Width, req.Height); !ferr.ok() {
		writeValidation(w, ferr.details())
		return
	}

	profile, ok := h.guardProfile(w, r, req.ProfileID)
	if !ok {
		return
	}

	d := &models.Design{
		ProfileID:       profile.ID,
		Name:            req.Name,
		Width:           req.Width,
		Height:          req.Height,
		AspectRatio:     req.AspectRatio,
		BackgroundColor: req.BackgroundColor,
		Layers:          req.Layers,
		Tagline:         req.Tagline,
		Headline:        req.Headline,
		Body:            req.Body,
		ButtonText:      req.ButtonText,
		BackgroundImage: req.BackgroundImage,
		Overlay:         req.Overlay,
		ProductImage:    req.ProductImage,
	}
	if len(d.Layers) == 0 {
		d.Layers = editor.DefaultLayers(profile, float64(d.Width), float64(d.Height))
	}

	created, err := h.designs.Create(r.Context(), d)
	if err != nil {
		writeInternal(w, "create design failed", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Get returns one design.
func (h *Designs) Get(w http.ResponseWriter, r *http.Request) {
	d, ok := h.loadGuarded(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// Update replaces a design's editable state.
func (h *Designs) Update(w http.ResponseWriter, r *http.Request) {
	d, ok := h.loadGuarded(w, r)
	if !ok {
		return
	}

	var req designRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if ferr := validateDesignInput(req.Name, req.Width, req.Height); !ferr.ok() {
		writeValidation(w, ferr.details())
		return
	}

	d.Name = req.Name
	d.Width = req.Width
	d.Height = req.Height
	d.AspectRatio = req.AspectRatio
	d.BackgroundColor = req.BackgroundColor
	d.Layers = req.Layers
	d.Tagline = req.Tagline
	d.Headline = req.Headline
	d.Body = req.Body
	d.ButtonText = req.ButtonText
	d.BackgroundImage = req.BackgroundImage
	d.Overlay = req.Overlay
	d.ProductImage = req.ProductImage

	updated, err := h.designs.Update(r.Context(), d)
	if err != nil {
		writeInternal(w, "update design failed", err)
		return
	}
	if updated == nil {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete removes a design and cleans up its blobs best-effort.
func (h *Designs) Delete(w http.ResponseWriter, r *http.Request) {
	d, ok := h.loadGuarded(w, r)
	if !ok {
		return
	}

	if err := h.designs.Delete(r.Context(), d.ID); err != nil {
		writeInternal(w, "delete design failed", err)
		return
	}

	if d.ThumbnailURL != nil {
		deleteOwnBlob(r.Context(), h.blobs, *d.ThumbnailURL)
	}
	if d.BackgroundImage != nil {
		deleteOwnBlob(r.Context(), h.blobs, d.BackgroundImage.URL)
	}

	w.WriteHeader(http.StatusNoContent)
}

type duplicateRequest struct {
	Name string `json:"name"`
}

// Duplicate clones a design. The thumbnail is never carried over.
func (h *Designs) Duplicate(w http.ResponseWriter, r *http.Request) {
	d, ok := h.loadGuarded(w, r)
	if !ok {
		return
	}

	// Body is optional; an empty or absent body falls back to "<name> (copy)".
	var req duplicateRequest
	if raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize)); err == nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json", "Request body must be valid JSON.")
			return
		}
	}
	if strings.TrimSpace(req.Name) == "" {
		req.Name = d.Name + " (copy)"
	}

	dupe, err := h.designs.Duplicate(r.Context(), d, req.Name)
	if err != nil {
		writeInternal(w, "duplicate design failed", err)
		return
	}
	writeJSON(w, http.StatusCreated, dupe)
}

// Thumbnail accepts a multipart preview upload, downscales it, uploads
// the JPEG to storage, and replaces the prior blob.
func (h *Designs) Thumbnail(w http.ResponseWriter, r *http.Request) {
	d, ok := h.loadGuarded(w, r)
	if !ok {
		return
	}
	if h.blobs == nil {
		writeError(w, http.StatusServiceUnavailable, "storage_unconfigured", "Object storage is not configured.")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		writeValidation(w, map[string]string{"file": "A multipart file field is required."})
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		writeInternal(w, "read thumbnail upload failed", err)
		return
	}

	thumb, err := imaging.Thumbnail(raw, imaging.ThumbMaxWidth)
	if err != nil {
		writeValidation(w, map[string]string{"file": "File must be a decodable image."})
		return
	}

	key := fmt.Sprintf("%s/%s.jpg", storage.PrefixThumbnails, d.ID)
	url, err := h.blobs.Upload(r.Context(), key, "image/jpeg", bytes.NewReader(thumb), int64(len(thumb)))
	if err != nil {
		writeInternal(w, "thumbnail upload failed", err)
		return
	}

	prior := d.ThumbnailURL
	if err := h.designs.UpdateThumbnail(r.Context(), d.ID, &url); err != nil {
		writeInternal(w, "save thumbnail url failed", err)
		return
	}
	if prior != nil && *prior != url {
		deleteOwnBlob(r.Context(), h.blobs, *prior)
	}

	writeJSON(w, http.StatusOK, map[string]string{"thumbnailUrl": url})
}

type backgroundRequest struct {
	// Data is either a data URL ("data:image/jpeg;base64,...") or bare
	// base64, in which case MimeType is consulted.
	Data        string                     `json:"data"`
	MimeType    string                     `json:"mimeType"`
	Source      models.BackgroundSource    `json:"source"`
	Attribution *string                    `json:"attribution"`
	Transform   models.BackgroundTransform `json:"transform"`
}

// Background decodes a base64 or data-URL image, stores it, points the
// design at the new URL, and deletes the prior blob when it was hosted
// in our storage. Foreign-hosted priors are left alone.
func (h *Designs) Background(w http.ResponseWriter, r *http.Request) {
	d, ok := h.loadGuarded(w, r)
	if !ok {
		return
	}
	if h.blobs == nil {
		writeError(w, http.StatusServiceUnavailable, "storage_unconfigured", "Object storage is not configured.")
		return
	}

	var req backgroundRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	raw, mime, ferr := decodeImagePayload(req.Data, req.MimeType)
	if !ferr.ok() {
		writeValidation(w, ferr.details())
		return
	}

	source := req.Source
	if source == "" {
		source = models.BackgroundGenerated
	}

	key := fmt.Sprintf("%s/%s-%s%s", storage.PrefixBackgrounds, d.ID, editor.NewLayerID(), extensionFor(mime))
	url, err := h.blobs.Upload(r.Context(), key, mime, bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		writeInternal(w, "background upload failed", err)
		return
	}

	bg := &models.BackgroundImage{
		URL:         url,
		Source:      source,
		Attribution: req.Attribution,
		Transform:   req.Transform,
	}
	prior := d.BackgroundImage
	if err := h.designs.UpdateBackgroundImage(r.Context(), d.ID, bg); err != nil {
		writeInternal(w, "save background failed", err)
		return
	}
	if prior != nil && prior.URL != url {
		deleteOwnBlob(r.Context(), h.blobs, prior.URL)
	}

	writeJSON(w, http.StatusOK, bg)
}

// decodeImagePayload handles both payload forms. Data URLs carry their
// own mime type; bare base64 requires an explicit one.
func decodeImagePayload(data, mimeType string) ([]byte, string, fieldError) {
	if strings.TrimSpace(data) == "" {
		return nil, "", fieldError{"data", "Image data is required."}
	}

	if strings.HasPrefix(data, "data:") {
		rest, found := strings.CutPrefix(data, "data:")
		meta, payload, ok := strings.Cut(rest, ",")
		if !found || !ok {
			return nil, "", fieldError{"data", "Malformed data URL."}
		}
		mimeType = strings.TrimSuffix(meta, ";base64")
		data = payload
	}

	if !strings.HasPrefix(mimeType, "image/") {
		return nil, "", fieldError{"mimeType", "An image mime type is required."}
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, "", fieldError{"data", "Image data must be valid base64."}
	}
	return raw, mimeType, fieldError{}
}

// extensionFor maps a mime type to a file extension, jpeg shortened to
// the conventional .jpg.
func extensionFor(mime string) string {
	switch mime {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	case "image/svg+xml":
		return ".svg"
	default:
		return ".bin"
	}
}

// guardProfile applies the ownership guard through a design's owning
// profile. NotFound before Forbidden, as everywhere.
func (h *Designs) guardProfile(w http.ResponseWriter, r *http.Request, profileID uuid.UUID) (*models.Profile, bool) {
	sess := middleware.SessionFromCtx(r.Context())

	profile, err := h.profiles.FindByID(r.Context(), profileID)
	if err != nil {
		writeInternal(w, "load profile failed", err)
		return nil, false
	}
	if profile == nil {
		writeNotFound(w)
		return nil, false
	}
	if permissions.CheckOwnership(profile.OwnerID, sess.UserID.String()) != permissions.Allowed {
		writeForbidden(w)
		return nil, false
	}
	return profile, true
}

// loadGuarded fetches the {id} design and guards it via its profile.
func (h *Designs) loadGuarded(w http.ResponseWriter, r *http.Request) (*models.Design, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeNotFound(w)
		return nil, false
	}

	d, err := h.designs.FindByID(r.Context(), id)
	if err != nil {
		writeInternal(w, "load design failed", err)
		return nil, false
	}
	if d == nil {
		writeNotFound(w)
		return nil, false
	}
	if _, ok := h.guardProfile(w, r, d.ProfileID); !ok {
		return nil, false
	}
	return d, true
}
