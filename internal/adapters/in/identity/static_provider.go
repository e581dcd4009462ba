// Package identity carries the built-in credential resolver. Real token
// verification lives behind the ports.IdentityProvider interface so a JWT or
// session backed implementation can replace this one without touching the
// transport adapters.
package identity

import (
	"context"
	"strings"

	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/ports"
	"broker/internal/pkg/errs"
)

// StaticProvider resolves credentials of the form "<role>:<uuid>", with an
// optional "Bearer " prefix. It performs no cryptographic verification and
// exists so the service can run against trusted upstream gateways and in
// local development.
type StaticProvider struct{}

// NewStaticProvider creates the credential-parsing identity provider.
func NewStaticProvider() StaticProvider {
	return StaticProvider{}
}

func roles() map[string]ports.Role {
	return map[string]ports.Role{
		"client":  ports.RoleClient,
		"courier": ports.RoleCourier,
		"admin":   ports.RoleAdmin,
	}
}

// Authenticate parses the credential string into a principal.
func (p StaticProvider) Authenticate(_ context.Context, credentials string) (ports.Principal, error) {
	credentials = strings.TrimPrefix(credentials, "Bearer ")

	roleName, rawID, found := strings.Cut(credentials, ":")
	if !found {
		return ports.Principal{}, errs.NewUnauthorizedError("malformed credentials")
	}

	role, ok := roles()[roleName]
	if !ok {
		return ports.Principal{}, errs.NewUnauthorizedError("unknown role")
	}

	id, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return ports.Principal{}, errs.NewUnauthorizedError("malformed principal id")
	}

	return ports.Principal{ID: id, Role: role}, nil
}
