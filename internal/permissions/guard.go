// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package permissions

import "pixyo/internal/models"

// Decision is the outcome of a resource ownership check.
type Decision int

const (
	// Allowed means the requester owns the resource, or the resource
	// belongs to the shared seed identity.
	Allowed Decision = iota
	// Forbidden means the resource exists but belongs to a different
	// non-seed identity.
	Forbidden
)

// CheckOwnership decides whether requesterID may read or mutate a
// resource owned by ownerID. Handlers must return 404 before calling
// this when the resource row is absent, so that probing ids never
// reveals whether they exist.
func CheckOwnership(ownerID, requesterID string) Decision {
	if ownerID == requesterID || ownerID == models.SeedUserID {
		return Allowed
	}
	return Forbidden
}
