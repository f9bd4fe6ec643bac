// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// RoleAdmin is the role tag in user metadata that grants access to the
// admin surface.
const RoleAdmin = "admin"

// UserMetadata holds server-side per-user settings. Both fields are
// optional: accounts created before tool gating existed have no metadata
// at all, and accounts created before the allow-list rollout have no
// AllowedTools entry.
type UserMetadata struct {
	Role         string    `json:"role,omitempty"`
	AllowedTools *[]string `json:"allowedTools,omitempty"`
}

// User represents a Pixyo account with authentication and 2FA fields.
type User struct {
	ID           uuid.UUID     `json:"id"`
	Email        string        `json:"email"`
	PasswordHash string        `json:"-"` // Never serialize the hash
	DisplayName  string        `json:"display_name"`
	Metadata     *UserMetadata `json:"metadata,omitempty"`
	TOTPSecret   *string       `json:"-"` // Nullable; set during 2FA setup
	TOTPEnabled  bool          `json:"totp_enabled"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Needs2FASetup returns true if the user has not completed 2FA enrollment.
// Admin accounts must set up 2FA on their first login.
func (u *User) Needs2FASetup() bool {
	return !u.TOTPEnabled
}
