package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vendorhub/supplier-portal/internal/api/metrics"
	"github.com/vendorhub/supplier-portal/internal/core/domain"
	"github.com/vendorhub/supplier-portal/internal/core/ports"
	"github.com/vendorhub/supplier-portal/internal/notify"
)

// SessionService owns the session records: it resolves the session behind
// each request and performs every credential operation against the composed
// identity provider. No other component writes session state.
type SessionService struct {
	provider    ports.IdentityProvider
	sessions    ports.SessionRepository
	activity    ports.ActivityRepository
	notices     notify.Publisher
	sessionTTL  time.Duration
	identityTTL time.Duration
	logger      zerolog.Logger
}

func NewSessionService(
	provider ports.IdentityProvider,
	sessions ports.SessionRepository,
	activity ports.ActivityRepository,
	notices notify.Publisher,
	sessionTTL time.Duration,
	identityTTL time.Duration,
	logger zerolog.Logger,
) *SessionService {
	if sessionTTL <= 0 {
		sessionTTL = 12 * time.Hour
	}
	if identityTTL <= 0 {
		identityTTL = 5 * time.Minute
	}
	return &SessionService{
		provider:    provider,
		sessions:    sessions,
		activity:    activity,
		notices:     notices,
		sessionTTL:  sessionTTL,
		identityTTL: identityTTL,
		logger:      logger,
	}
}

// Resolve turns a presented sid into the current session record. Every
// failure mode folds into the record's state; Resolve itself never fails.
func (s *SessionService) Resolve(ctx context.Context, sid string) *domain.Session {
	now := time.Now().UTC()

	if sid == "" {
		return s.establish(ctx, now)
	}

	sess, err := s.sessions.Find(ctx, sid)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			// The cookie outlived its record (store eviction). Start over.
			return s.establish(ctx, now)
		}
		// The store itself is unreachable. Minting a replacement would
		// orphan a session that may still exist, so the request rides out
		// the outage as unresolved and the sid stays put.
		s.logger.Error().Err(err).Str("sid", sid).Msg("session lookup failed")
		broken := &domain.Session{SID: sid}
		broken.MarkUnresolved(err)
		return broken
	}

	if sess.Expired(now) {
		if sess.Authenticated() {
			metrics.ActiveSessions.Dec()
		}
		if derr := s.sessions.Delete(ctx, sid); derr != nil && !errors.Is(derr, domain.ErrSessionNotFound) {
			s.logger.Warn().Err(derr).Str("sid", sid).Msg("expired session delete failed")
		}
		return s.establish(ctx, now)
	}

	// An unresolved record retries its probe on every contact until it
	// settles. An authenticated one re-verifies only once its cached
	// identity goes stale. Explicit unauthenticated is terminal until a
	// credential operation changes it.
	switch {
	case sess.State == domain.StateUnresolved:
	case sess.State == domain.StateAuthenticated && sess.Stale(now, s.identityTTL):
	default:
		return sess
	}

	s.probe(ctx, sess, now)
	s.persist(ctx, sess)
	return sess
}

// establish mints a session for a browser we have not seen before and runs
// the first-contact probe. With the upstream provider that probe settles
// unauthenticated without a round trip; the demo provider answers its
// default identity, so demo sessions start signed in.
func (s *SessionService) establish(ctx context.Context, now time.Time) *domain.Session {
	sess := &domain.Session{
		SID:       uuid.NewString(),
		State:     domain.StateUnresolved,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	s.probe(ctx, sess, now)
	s.persist(ctx, sess)
	return sess
}

// probe asks the provider who the session's token belongs to and folds the
// answer into the record. A 401-equivalent answer is a normal terminal
// state; anything else leaves the record unresolved with the error retained
// and the token kept for the next retry.
func (s *SessionService) probe(ctx context.Context, sess *domain.Session, now time.Time) {
	wasAuthenticated := sess.Authenticated()

	start := time.Now()
	id, err := s.provider.Probe(ctx, sess.AccessToken)
	metrics.ProviderRequestDuration.WithLabelValues("probe").Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		sess.MarkAuthenticated(id, "", now)
		metrics.ProbeResultsTotal.WithLabelValues("authenticated").Inc()
		if !wasAuthenticated {
			metrics.ActiveSessions.Inc()
		}
	case errors.Is(err, domain.ErrUnauthenticated):
		sess.MarkUnauthenticated()
		metrics.ProbeResultsTotal.WithLabelValues("unauthenticated").Inc()
		if wasAuthenticated {
			metrics.ActiveSessions.Dec()
		}
	default:
		sess.MarkUnresolved(err)
		metrics.ProbeResultsTotal.WithLabelValues("error").Inc()
		if wasAuthenticated {
			metrics.ActiveSessions.Dec()
		}
		s.logger.Warn().Err(err).Str("sid", sess.SID).Msg("identity probe did not settle")
	}
}

// Login validates locally, exchanges the credentials upstream, and on
// success rotates the caller onto a fresh session already holding the
// returned identity. No second probe is performed.
func (s *SessionService) Login(ctx context.Context, in ports.LoginInput) (*domain.Session, notify.Notice, error) {
	if in.Username == "" || in.Password == "" {
		n := s.publishFailure(ctx, in.SID, domain.ActivityLogin, in.Username, in.RemoteAddr, "Username and password are required")
		return nil, n, fmt.Errorf("%w: username and password are required", domain.ErrValidation)
	}

	start := time.Now()
	id, token, err := s.provider.Login(ctx, ports.LoginPayload{Username: in.Username, Password: in.Password})
	metrics.ProviderRequestDuration.WithLabelValues("login").Observe(time.Since(start).Seconds())
	if err != nil {
		n := s.publishFailure(ctx, in.SID, domain.ActivityLogin, in.Username, in.RemoteAddr, err.Error())
		return nil, n, err
	}

	sess := s.rotate(ctx, in.SID, id, token)
	s.logger.Info().Str("sid", sess.SID).Str("username", id.Username).Str("role", string(id.Role)).Msg("signed in")

	n := s.publishSuccess(ctx, sess.SID, domain.ActivityLogin, id.Username, in.RemoteAddr, "Welcome back, "+id.DisplayName)
	return sess, n, nil
}

// Register checks the confirmation secret locally, strips it, and forwards
// the rest. A successful registration signs the new account in exactly like
// a login.
func (s *SessionService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Session, notify.Notice, error) {
	if in.Username == "" || in.Password == "" {
		n := s.publishFailure(ctx, in.SID, domain.ActivityRegister, in.Username, in.RemoteAddr, "Username and password are required")
		return nil, n, fmt.Errorf("%w: username and password are required", domain.ErrValidation)
	}
	if in.ConfirmPassword != in.Password {
		n := s.publishFailure(ctx, in.SID, domain.ActivityRegister, in.Username, in.RemoteAddr, "Passwords do not match")
		return nil, n, fmt.Errorf("%w: passwords do not match", domain.ErrValidation)
	}

	payload := ports.RegisterPayload{
		Username:    in.Username,
		Password:    in.Password,
		DisplayName: in.DisplayName,
		Email:       in.Email,
		Role:        in.Role,
		Company:     in.Company,
	}

	start := time.Now()
	id, token, err := s.provider.Register(ctx, payload)
	metrics.ProviderRequestDuration.WithLabelValues("register").Observe(time.Since(start).Seconds())
	if err != nil {
		n := s.publishFailure(ctx, in.SID, domain.ActivityRegister, in.Username, in.RemoteAddr, err.Error())
		return nil, n, err
	}

	sess := s.rotate(ctx, in.SID, id, token)
	s.logger.Info().Str("sid", sess.SID).Str("username", id.Username).Str("role", string(id.Role)).Msg("account registered")

	n := s.publishSuccess(ctx, sess.SID, domain.ActivityRegister, id.Username, in.RemoteAddr, "Welcome, "+id.DisplayName)
	return sess, n, nil
}

// Logout ends the upstream session and always destroys the local one. An
// upstream failure cannot resurrect the local session; it only turns the
// notice into a failure notice.
func (s *SessionService) Logout(ctx context.Context, in ports.LogoutInput) notify.Notice {
	var token, actor string
	var wasAuthenticated bool
	if in.SID != "" {
		if sess, err := s.sessions.Find(ctx, in.SID); err == nil {
			token = sess.AccessToken
			wasAuthenticated = sess.Authenticated()
			if sess.Identity != nil {
				actor = sess.Identity.Username
			}
		}
	}

	start := time.Now()
	err := s.provider.Logout(ctx, token)
	metrics.ProviderRequestDuration.WithLabelValues("logout").Observe(time.Since(start).Seconds())

	if in.SID != "" {
		if derr := s.sessions.Delete(ctx, in.SID); derr != nil && !errors.Is(derr, domain.ErrSessionNotFound) {
			s.logger.Error().Err(derr).Str("sid", in.SID).Msg("session delete failed")
		}
	}
	if wasAuthenticated {
		metrics.ActiveSessions.Dec()
	}

	if err != nil {
		s.logger.Warn().Err(err).Str("sid", in.SID).Msg("upstream logout failed, local session destroyed anyway")
		return s.publishFailure(ctx, in.SID, domain.ActivityLogout, actor, in.RemoteAddr, "Signed out locally, upstream sign-out failed: "+err.Error())
	}

	s.logger.Info().Str("sid", in.SID).Str("username", actor).Msg("signed out")
	return s.publishSuccess(ctx, in.SID, domain.ActivityLogout, actor, in.RemoteAddr, "Signed out")
}

// SwitchRole swaps the current session's identity for the predefined
// identity of the given role. Unknown roles and provider refusals leave the
// session untouched.
func (s *SessionService) SwitchRole(ctx context.Context, in ports.SwitchRoleInput) (*domain.Session, notify.Notice, error) {
	switcher, ok := s.provider.(ports.RoleSwitcher)
	if !ok {
		return nil, notify.Notice{}, domain.ErrRoleSwitchUnsupported
	}

	role, err := domain.ParseRole(in.Role)
	if err != nil {
		n := s.publishFailure(ctx, in.SID, domain.ActivityRoleSwitch, "", in.RemoteAddr, "Invalid role: "+in.Role)
		return nil, n, err
	}

	start := time.Now()
	id, token, err := switcher.SwitchRole(ctx, string(role))
	metrics.ProviderRequestDuration.WithLabelValues("role_switch").Observe(time.Since(start).Seconds())
	if err != nil {
		n := s.publishFailure(ctx, in.SID, domain.ActivityRoleSwitch, "", in.RemoteAddr, err.Error())
		return nil, n, err
	}

	now := time.Now().UTC()
	sess, ferr := s.sessions.Find(ctx, in.SID)
	if ferr != nil {
		sess = &domain.Session{
			SID:       uuid.NewString(),
			CreatedAt: now,
			ExpiresAt: now.Add(s.sessionTTL),
		}
	}
	wasAuthenticated := sess.Authenticated()
	sess.MarkAuthenticated(id, token, now)
	if !wasAuthenticated {
		metrics.ActiveSessions.Inc()
	}
	s.persist(ctx, sess)

	s.logger.Info().Str("sid", sess.SID).Str("username", id.Username).Str("role", string(id.Role)).Msg("role switched")

	n := s.publishSuccess(ctx, sess.SID, domain.ActivityRoleSwitch, id.Username, in.RemoteAddr, "Now browsing as "+id.DisplayName)
	return sess, n, nil
}

// rotate replaces the caller's session with a fresh record holding the
// signed-in identity. The previous sid stops working immediately.
func (s *SessionService) rotate(ctx context.Context, oldSID string, id *domain.Identity, token string) *domain.Session {
	now := time.Now().UTC()

	if oldSID != "" {
		if old, err := s.sessions.Find(ctx, oldSID); err == nil && old.Authenticated() {
			metrics.ActiveSessions.Dec()
		}
		if err := s.sessions.Delete(ctx, oldSID); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
			s.logger.Warn().Err(err).Str("sid", oldSID).Msg("previous session delete failed")
		}
	}

	sess := &domain.Session{
		SID:       uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	sess.MarkAuthenticated(id, token, now)
	metrics.ActiveSessions.Inc()
	s.persist(ctx, sess)
	return sess
}

func (s *SessionService) persist(ctx context.Context, sess *domain.Session) {
	if err := s.sessions.Save(ctx, sess); err != nil {
		s.logger.Error().Err(err).Str("sid", sess.SID).Msg("session save failed")
	}
}

// publishSuccess emits the single success notice for one credential
// operation and records it in the activity trail.
func (s *SessionService) publishSuccess(ctx context.Context, sid, op, actor, remoteAddr, message string) notify.Notice {
	metrics.CredentialOpsTotal.WithLabelValues(op, "ok").Inc()
	n := notify.Success(sid, message)
	s.notices.Publish(n)
	s.appendActivity(ctx, sid, actor, op, domain.ActivityOK, "", remoteAddr)
	return n
}

// publishFailure is the failure counterpart; the message reaches the user
// verbatim, so provider messages pass through untouched.
func (s *SessionService) publishFailure(ctx context.Context, sid, op, actor, remoteAddr, message string) notify.Notice {
	metrics.CredentialOpsTotal.WithLabelValues(op, "failed").Inc()
	n := notify.Failure(sid, message)
	s.notices.Publish(n)
	s.appendActivity(ctx, sid, actor, op, domain.ActivityFailed, message, remoteAddr)
	return n
}

// appendActivity is best-effort: a broken trail never fails the operation
// that produced the entry.
func (s *SessionService) appendActivity(ctx context.Context, sid, actor, op, result, detail, remoteAddr string) {
	entry := &domain.ActivityEntry{
		At:         time.Now().UTC(),
		SID:        sid,
		Actor:      actor,
		Operation:  op,
		Result:     result,
		Detail:     detail,
		RemoteAddr: remoteAddr,
	}
	if err := s.activity.Append(ctx, entry); err != nil {
		s.logger.Warn().Err(err).Str("operation", op).Msg("activity append failed")
	}
}
