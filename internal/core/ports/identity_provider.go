package ports

import (
	"context"

	"github.com/vendorhub/supplier-portal/internal/core/domain"
)

// LoginPayload is what actually reaches the identity service on login.
type LoginPayload struct {
	Username string
	Password string
}

// RegisterPayload is what actually reaches the identity service on
// registration. It deliberately has no confirmation field: the confirmation
// check happens before dispatch and the value is discarded.
type RegisterPayload struct {
	Username    string
	Password    string
	DisplayName string
	Email       string
	Role        string
	Company     string
}

// IdentityProvider is the identity backend consumed by the session service.
// Two implementations exist, the upstream HTTP client and the in-process
// demo directory, chosen once at composition time. Consumers never learn
// which one they hold.
type IdentityProvider interface {
	// Probe verifies an existing upstream session. An empty token is the
	// first-contact probe: the upstream client answers ErrUnauthenticated
	// without a round-trip, the demo directory answers its default
	// identity. A non-empty token that no longer maps to an identity also
	// yields ErrUnauthenticated; any other error means the probe did not
	// settle.
	Probe(ctx context.Context, token string) (*domain.Identity, error)

	// Login exchanges credentials for an identity and an access token.
	Login(ctx context.Context, in LoginPayload) (*domain.Identity, string, error)

	// Register creates an account and signs it in, returning the new
	// identity and its access token.
	Register(ctx context.Context, in RegisterPayload) (*domain.Identity, string, error)

	// Logout ends the upstream session for the given token. An empty token
	// is a no-op.
	Logout(ctx context.Context, token string) error
}

// RoleSwitcher is the demo-only extension: swap the active identity for the
// predefined identity holding the given role. The router registers the
// switch endpoint only when the composed provider implements this.
type RoleSwitcher interface {
	SwitchRole(ctx context.Context, role string) (*domain.Identity, string, error)
}
