// Package router sets up all HTTP routes and middleware chains for the
// Pixyo API. Routes are grouped by the access level they require:
// public, authenticated, tool-gated, and admin.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pixyo/internal/handlers"
	"pixyo/internal/middleware"
	"pixyo/internal/permissions"
	"pixyo/internal/session"
	"pixyo/internal/store"
)

// Deps carries the constructed handler groups and shared services the
// route tree wires together.
type Deps struct {
	Sessions *session.Store
	Users    *store.UserStore

	Auth     *handlers.Auth
	Profiles *handlers.Profiles
	Designs  *handlers.Designs
	Generate *handlers.Generate
	Usage    *handlers.Usage
	Track    *handlers.Track
	Waitlist *handlers.Waitlist
	Unsplash *handlers.Unsplash
	Admin    *handlers.Admin
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware: applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(d.Sessions))

	// Health check: no auth.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		// Public: landing page signup and login.
		r.Post("/waitlist", d.Waitlist.Join)
		r.Post("/auth/login", d.Auth.Login)
		r.Post("/auth/logout", d.Auth.Logout)

		// Authenticated surface.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Get("/auth/me", d.Auth.Me)

			// 2FA enrollment happens before Require2FA opens admin routes.
			r.Post("/auth/2fa/setup", d.Auth.TwoFASetup)
			r.Post("/auth/2fa/verify", d.Auth.TwoFAVerify)

			r.Route("/profiles", func(r chi.Router) {
				r.Get("/", d.Profiles.List)
				r.Post("/", d.Profiles.Create)
				r.Get("/{id}", d.Profiles.Get)
				r.Put("/{id}", d.Profiles.Update)
				r.Delete("/{id}", d.Profiles.Delete)
			})

			r.Route("/designs", func(r chi.Router) {
				r.Get("/", d.Designs.List)
				r.Post("/", d.Designs.Create)
				r.Get("/{id}", d.Designs.Get)
				r.Put("/{id}", d.Designs.Update)
				r.Delete("/{id}", d.Designs.Delete)
				r.Post("/{id}/duplicate", d.Designs.Duplicate)
				r.Post("/{id}/thumbnail", d.Designs.Thumbnail)
				r.Post("/{id}/background", d.Designs.Background)
			})

			// AI endpoints are tool-gated and rate limited on top of auth.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireTool(d.Users, permissions.ToolSocialGraphics))
				r.Use(middleware.NewRateLimiter(30, time.Minute).Middleware)

				r.Post("/generate-image", d.Generate.Image)
				r.Post("/generate-prompt", d.Generate.Prompt)
			})

			r.Post("/track-download", d.Track.Download)
			r.Get("/usage/me", d.Usage.Me)
			r.Get("/unsplash/search", d.Unsplash.Search)

			// Admin-only surface: fresh role check plus completed 2FA.
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireAdmin(d.Users))
				r.Use(middleware.Require2FA)

				r.Get("/profiles", d.Admin.ListProfiles)
				r.Post("/profiles", d.Admin.CreateProfile)
				r.Post("/profiles/{id}/logo", d.Admin.UploadLogo)
				r.Delete("/profiles/{id}/logo", d.Admin.DeleteLogo)

				r.Get("/users", d.Admin.ListUsers)
				r.Put("/users/{id}", d.Admin.UpdateUser)

				r.Get("/usage", d.Usage.Admin)
			})
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
