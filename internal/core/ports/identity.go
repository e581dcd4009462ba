package ports

import (
	"context"

	"broker/internal/core/domain/model/kernel"
)

// Role classifies an authenticated principal.
type Role string

const (
	RoleClient  Role = "client"
	RoleCourier Role = "courier"
	RoleAdmin   Role = "admin"
)

// Principal is an authenticated caller: a stable identifier plus a role.
// How the credentials were verified is not this system's business.
type Principal struct {
	ID   kernel.UUID
	Role Role
}

// IsAdmin reports whether the principal holds the administrative role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// IdentityProvider verifies inbound credentials and resolves them to a
// principal. Implementations live outside the core; a failure to
// authenticate must be surfaced as an error, never as a zero Principal.
type IdentityProvider interface {
	Authenticate(ctx context.Context, credentials string) (Principal, error)
}
