// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"pixyo/internal/models"
	"pixyo/internal/permissions"
	"pixyo/internal/session"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// SessionKey is the context key for the session data.
	SessionKey contextKey = "session"
)

// MetadataLoader resolves a user's stored metadata for permission
// checks. Implemented by store.UserStore.
type MetadataLoader interface {
	MetadataByID(ctx context.Context, id uuid.UUID) (*models.UserMetadata, error)
}

// LoadSession retrieves the session from Valkey and stores it in the
// request context. Downstream handlers can access it via SessionFromCtx().
// This middleware does NOT enforce authentication: it just loads the
// session if one exists.
func LoadSession(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data, err := store.Get(r.Context(), r)
			if err != nil {
				// Log but don't block: treat as unauthenticated.
				next.ServeHTTP(w, r)
				return
			}

			if data != nil {
				ctx := context.WithValue(r.Context(), SessionKey, data)
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth rejects unauthenticated requests with a 401 JSON payload.
// Must be applied after LoadSession in the middleware chain.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFromCtx(r.Context())
		if sess == nil {
			writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required.")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Require2FA rejects admin accounts that haven't completed 2FA
// enrollment. Must be applied after RequireAuth.
func Require2FA(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFromCtx(r.Context())
		if sess != nil && sess.Role == models.RoleAdmin && !sess.TwoFADone {
			writeError(w, http.StatusForbidden, "two_fa_required", "Complete 2FA setup first.")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireAdmin returns 403 if the authenticated user is not an admin.
// The role is re-checked against fresh metadata, not just the session
// snapshot, so a revoked admin loses access on their next request.
// Must be applied after RequireAuth.
func RequireAdmin(users MetadataLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := SessionFromCtx(r.Context())
			if sess == nil {
				writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required.")
				return
			}

			meta, err := users.MetadataByID(r.Context(), sess.UserID)
			if err != nil || !permissions.IsAdmin(meta) {
				writeError(w, http.StatusForbidden, "forbidden", "Admin access required.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireTool gates a route on the per-user tool allow-list. Metadata is
// loaded per request; absent metadata or an absent allow-list keeps the
// tool open for accounts that predate the permission system.
func RequireTool(users MetadataLoader, toolID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := SessionFromCtx(r.Context())
			if sess == nil {
				writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required.")
				return
			}

			meta, err := users.MetadataByID(r.Context(), sess.UserID)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "internal", "Could not resolve permissions.")
				return
			}
			if !permissions.HasToolAccess(meta, toolID) {
				writeError(w, http.StatusForbidden, "tool_forbidden", "You don't have access to this tool.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// SessionFromCtx extracts the session data from the request context.
// Returns nil if no session is loaded (user is not authenticated).
func SessionFromCtx(ctx context.Context) *session.Data {
	data, _ := ctx.Value(SessionKey).(*session.Data)
	return data
}

// writeError emits the shared API error shape from middleware.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   http.StatusText(status),
		"code":    code,
		"message": message,
	})
}
