package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/vendorhub/supplier-portal/internal/core/domain"
)

// ctxSession extracts the session record injected by the Session middleware.
// A missing record means the middleware is not mounted on this route, which
// is a wiring bug, so it fails fast instead of limping along anonymously.
func ctxSession(c echo.Context) *domain.Session {
	sess, ok := c.Get("session").(*domain.Session)
	if !ok {
		panic("handler: session missing from context, mount the Session middleware")
	}
	return sess
}

// ctxIdentity extracts the authenticated identity behind a guarded route.
// Reaching it without an identity means the route skipped the guard, which
// is a programming error, not a user-facing one.
func ctxIdentity(c echo.Context) *domain.Identity {
	sess := ctxSession(c)
	if !sess.Authenticated() {
		panic("handler: identity read on an unauthenticated session, guard the route")
	}
	return sess.Identity
}
