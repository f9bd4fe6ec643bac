// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package permissions resolves what a user may do from their stored
// metadata, and decides whether a requester may touch an owned resource.
// Everything here is pure; handlers own the HTTP mapping.
package permissions

import "pixyo/internal/models"

// Tool identifiers gated by the per-user allow-list.
const (
	ToolSocialGraphics = "social-graphics"
	ToolProductScenes  = "product-scenes"
)

// HasToolAccess reports whether the user may use the given tool.
//
// Accounts that predate the permission system have no metadata, and
// accounts that predate the allow-list rollout have metadata without an
// AllowedTools entry: both stay fully open. A present but empty
// allow-list denies every tool; that is a deliberate lockout, not a
// legacy account.
func HasToolAccess(meta *models.UserMetadata, toolID string) bool {
	if meta == nil || meta.AllowedTools == nil {
		return true
	}
	for _, t := range *meta.AllowedTools {
		if t == toolID {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the metadata carries the admin role.
func IsAdmin(meta *models.UserMetadata) bool {
	return meta != nil && meta.Role == models.RoleAdmin
}
