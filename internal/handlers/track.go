// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"pixyo/internal/middleware"
	"pixyo/internal/store"
)

// Track marks generation downloads.
type Track struct {
	genLogs *store.GenerationLogStore
}

// NewTrack creates a new Track handler group.
func NewTrack(genLogs *store.GenerationLogStore) *Track {
	return &Track{genLogs: genLogs}
}

type trackDownloadRequest struct {
	GenerationLogID uuid.UUID `json:"generationLogId"`
}

type trackDownloadResponse struct {
	// Updated is true only on the call that flipped the flag; repeats
	// report false.
	Updated bool `json:"updated"`
}

// Download flips a generation's downloaded flag exactly once. Only the
// generation's own user can mark it; an unknown id reports 404.
func (h *Track) Download(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	var req trackDownloadRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.GenerationLogID == uuid.Nil {
		writeValidation(w, map[string]string{"generationLogId": "A generation log id is required."})
		return
	}

	updated, err := h.genLogs.MarkDownloaded(r.Context(), req.GenerationLogID, sess.UserID.String())
	if err != nil {
		writeInternal(w, "mark download failed", err)
		return
	}

	if !updated {
		// Distinguish "already downloaded" from "no such row".
		g, err := h.genLogs.FindByID(r.Context(), req.GenerationLogID)
		if err != nil {
			writeInternal(w, "load generation log failed", err)
			return
		}
		if g == nil || g.UserID != sess.UserID.String() {
			writeNotFound(w)
			return
		}
	}

	writeJSON(w, http.StatusOK, trackDownloadResponse{Updated: updated})
}
