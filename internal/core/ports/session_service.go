package ports

import (
	"context"

	"github.com/vendorhub/supplier-portal/internal/core/domain"
	"github.com/vendorhub/supplier-portal/internal/notify"
)

// LoginInput carries a login attempt from the transport layer.
type LoginInput struct {
	SID        string // current sid, if any; the session is rotated on success
	Username   string
	Password   string
	RemoteAddr string
}

// RegisterInput carries a registration attempt. ConfirmPassword never leaves
// the service: it is checked locally and stripped from the provider payload.
type RegisterInput struct {
	SID             string
	Username        string
	Password        string
	ConfirmPassword string
	DisplayName     string
	Email           string
	Role            string
	Company         string
	RemoteAddr      string
}

// LogoutInput identifies the session to end.
type LogoutInput struct {
	SID        string
	RemoteAddr string
}

// SwitchRoleInput carries a demo role-switch request.
type SwitchRoleInput struct {
	SID        string
	Role       string
	RemoteAddr string
}

// SessionService owns every write to session state. Handlers and the session
// middleware consume it; nothing else mutates sessions.
type SessionService interface {
	// Resolve turns a presented sid into the current session. All failure
	// modes fold into the returned session's state (including unresolved
	// with a retained error); Resolve itself never fails. The returned SID
	// may differ from the presented one when a session was established
	// during resolution (demo first contact).
	Resolve(ctx context.Context, sid string) *domain.Session

	// Login validates locally, dispatches to the provider, and on success
	// stores the returned identity in a freshly rotated session without a
	// second probe. Exactly one notice is published per call.
	Login(ctx context.Context, in LoginInput) (*domain.Session, notify.Notice, error)

	// Register behaves like Login after the local confirmation check.
	Register(ctx context.Context, in RegisterInput) (*domain.Session, notify.Notice, error)

	// Logout dispatches upstream unconditionally and always destroys the
	// local session, which is why it cannot fail: an upstream refusal only
	// turns the returned notice into a failure notice.
	Logout(ctx context.Context, in LogoutInput) notify.Notice

	// SwitchRole swaps the active identity for the predefined identity of
	// the given role. Fails without touching state when the role is
	// unknown or the provider cannot switch.
	SwitchRole(ctx context.Context, in SwitchRoleInput) (*domain.Session, notify.Notice, error)
}
