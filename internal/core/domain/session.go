package domain

import (
	"errors"
	"time"
)

// SessionState classifies a browser session's authentication status.
// Exactly one state holds at any time.
type SessionState string

const (
	// StateUnresolved means the identity probe has not settled: either it
	// is still owed, or the last attempt failed and the error is retained
	// on the session. No navigation decision may be made from this state.
	StateUnresolved SessionState = "unresolved"
	// StateAuthenticated means the session holds a verified Identity.
	StateAuthenticated SessionState = "authenticated"
	// StateUnauthenticated is the explicit absence of an identity, distinct
	// from unresolved.
	StateUnauthenticated SessionState = "unauthenticated"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is the per-browser session record. It is the single owned mutable
// cell of the authentication state: only the session service writes it, all
// other components read.
//
// JSON tags serve the session store; the transport layer maps sessions to
// its own response types and never exposes AccessToken or the raw record.
type Session struct {
	SID         string       `json:"sid"`
	State       SessionState `json:"state"`
	Identity    *Identity    `json:"identity,omitempty"`
	AccessToken string       `json:"access_token,omitempty"`
	ProbeError  string       `json:"probe_error,omitempty"`
	ResolvedAt  time.Time    `json:"resolved_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	ExpiresAt   time.Time    `json:"expires_at"`
}

// Anonymous returns the unauthenticated session used for requests that carry
// no usable session cookie. It has no SID and is never persisted.
func Anonymous() *Session {
	return &Session{State: StateUnauthenticated}
}

// Authenticated reports whether the session currently holds an identity.
func (s *Session) Authenticated() bool {
	return s != nil && s.State == StateAuthenticated && s.Identity != nil
}

// Expired reports whether the session record itself has outlived its TTL.
func (s *Session) Expired(now time.Time) bool {
	if s == nil {
		return true
	}
	return !s.ExpiresAt.IsZero() && !s.ExpiresAt.After(now)
}

// Stale reports whether the cached identity is older than the freshness
// window and must be re-verified against the identity service.
func (s *Session) Stale(now time.Time, freshness time.Duration) bool {
	if s == nil || s.ResolvedAt.IsZero() {
		return true
	}
	return now.Sub(s.ResolvedAt) >= freshness
}

// MarkAuthenticated records a verified identity. Clears any retained probe
// error so the tri-state invariant holds.
func (s *Session) MarkAuthenticated(id *Identity, token string, now time.Time) {
	s.State = StateAuthenticated
	s.Identity = id.Clone()
	if token != "" {
		s.AccessToken = token
	}
	s.ProbeError = ""
	s.ResolvedAt = now
}

// MarkUnauthenticated destroys the identity. The record may live on as an
// anonymous session; the access token is dropped with the identity.
func (s *Session) MarkUnauthenticated() {
	s.State = StateUnauthenticated
	s.Identity = nil
	s.AccessToken = ""
	s.ProbeError = ""
}

// MarkUnresolved records a probe failure. The access token is kept so the
// next request can retry; the identity is no longer trusted.
func (s *Session) MarkUnresolved(probeErr error) {
	s.State = StateUnresolved
	s.Identity = nil
	if probeErr != nil {
		s.ProbeError = probeErr.Error()
	}
}

// Clone returns a deep copy of the session record.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.Identity = s.Identity.Clone()
	return &c
}
