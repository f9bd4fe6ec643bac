// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the JSON route handlers for the Pixyo API.
// Handler groups are structs constructed with their dependencies; every
// response, success or failure, is JSON.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"pixyo/internal/ai"
)

// apiError is the shared error body. Message, code and details are
// optional; error always carries the HTTP status text.
type apiError struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Code    string            `json:"code,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// maxBodySize bounds JSON request bodies. Product images ride inline as
// base64 so the ceiling is generous.
const maxBodySize = 25 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write json response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{
		Error:   http.StatusText(status),
		Code:    code,
		Message: message,
	})
}

// writeValidation emits a 400 with per-field messages.
func writeValidation(w http.ResponseWriter, details map[string]string) {
	writeJSON(w, http.StatusBadRequest, apiError{
		Error:   http.StatusText(http.StatusBadRequest),
		Code:    "validation",
		Message: "Request validation failed.",
		Details: details,
	})
}

func writeNotFound(w http.ResponseWriter) {
	writeError(w, http.StatusNotFound, "not_found", "Resource not found.")
}

func writeForbidden(w http.ResponseWriter) {
	writeError(w, http.StatusForbidden, "forbidden", "You don't have access to this resource.")
}

func writeInternal(w http.ResponseWriter, context string, err error) {
	slog.Error(context, "error", err)
	writeError(w, http.StatusInternalServerError, "internal", "An unexpected error occurred.")
}

// writeUpstream maps a provider failure onto the response. A non-2xx
// provider status is forwarded where meaningful; transport errors
// collapse to 500.
func writeUpstream(w http.ResponseWriter, err error) {
	var upstream *ai.UpstreamError
	if errors.As(err, &upstream) {
		status := upstream.Status
		if status < 400 || status > 599 {
			status = http.StatusInternalServerError
		}
		slog.Error("upstream provider error", "provider", upstream.Provider, "status", upstream.Status)
		writeError(w, status, "upstream", "The upstream provider rejected the request.")
		return
	}
	slog.Error("upstream provider call failed", "error", err)
	writeError(w, http.StatusInternalServerError, "upstream", "The upstream provider could not be reached.")
}

// decodeJSON reads and decodes a bounded JSON body. Returns false after
// writing a 400 when the body is malformed.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodySize)
	defer io.Copy(io.Discard, body)

	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "Request body must be valid JSON.")
		return false
	}
	return true
}
