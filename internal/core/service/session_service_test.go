package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/vendorhub/supplier-portal/internal/core/domain"
	"github.com/vendorhub/supplier-portal/internal/core/ports"
	"github.com/vendorhub/supplier-portal/internal/notify"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubProvider struct {
	probeID     *domain.Identity
	probeErr    error
	probeCalls  int
	probeTokens []string

	loginID    *domain.Identity
	loginToken string
	loginErr   error
	loginCalls int

	registerID       *domain.Identity
	registerToken    string
	registerErr      error
	registerCalls    int
	registerPayloads []ports.RegisterPayload

	logoutErr    error
	logoutCalls  int
	logoutTokens []string
}

func (p *stubProvider) Probe(_ context.Context, token string) (*domain.Identity, error) {
	p.probeCalls++
	p.probeTokens = append(p.probeTokens, token)
	if p.probeErr != nil {
		return nil, p.probeErr
	}
	return p.probeID, nil
}

func (p *stubProvider) Login(_ context.Context, _ ports.LoginPayload) (*domain.Identity, string, error) {
	p.loginCalls++
	if p.loginErr != nil {
		return nil, "", p.loginErr
	}
	return p.loginID, p.loginToken, nil
}

func (p *stubProvider) Register(_ context.Context, in ports.RegisterPayload) (*domain.Identity, string, error) {
	p.registerCalls++
	p.registerPayloads = append(p.registerPayloads, in)
	if p.registerErr != nil {
		return nil, "", p.registerErr
	}
	return p.registerID, p.registerToken, nil
}

func (p *stubProvider) Logout(_ context.Context, token string) error {
	p.logoutCalls++
	p.logoutTokens = append(p.logoutTokens, token)
	return p.logoutErr
}

// stubSwitchProvider adds the role-switcher capability on top of stubProvider.
type stubSwitchProvider struct {
	stubProvider
	switchID    *domain.Identity
	switchToken string
	switchErr   error
	switchCalls int
	switchRoles []string
}

func (p *stubSwitchProvider) SwitchRole(_ context.Context, role string) (*domain.Identity, string, error) {
	p.switchCalls++
	p.switchRoles = append(p.switchRoles, role)
	if p.switchErr != nil {
		return nil, "", p.switchErr
	}
	return p.switchID, p.switchToken, nil
}

type stubSessionRepo struct {
	records map[string]*domain.Session
	findErr error
	saved   []string
	deleted []string
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{records: make(map[string]*domain.Session)}
}

func (r *stubSessionRepo) Find(_ context.Context, sid string) (*domain.Session, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	sess, ok := r.records[sid]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess.Clone(), nil
}

func (r *stubSessionRepo) Save(_ context.Context, sess *domain.Session) error {
	r.records[sess.SID] = sess.Clone()
	r.saved = append(r.saved, sess.SID)
	return nil
}

func (r *stubSessionRepo) Delete(_ context.Context, sid string) error {
	if _, ok := r.records[sid]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(r.records, sid)
	r.deleted = append(r.deleted, sid)
	return nil
}

type stubActivityRepo struct {
	entries []*domain.ActivityEntry
}

func (r *stubActivityRepo) Append(_ context.Context, e *domain.ActivityEntry) error {
	r.entries = append(r.entries, e)
	return nil
}

func (r *stubActivityRepo) List(_ context.Context, limit int) ([]*domain.ActivityEntry, error) {
	return r.entries, nil
}

type stubPublisher struct {
	published []notify.Notice
}

func (p *stubPublisher) Publish(n notify.Notice) {
	p.published = append(p.published, n)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newSessionSvc(p ports.IdentityProvider, repo *stubSessionRepo, act *stubActivityRepo, pub *stubPublisher) *SessionService {
	return NewSessionService(p, repo, act, pub, 12*time.Hour, 5*time.Minute, zerolog.Nop())
}

func purchasingIdentity() *domain.Identity {
	return &domain.Identity{
		ID:          2,
		Username:    "pmercer",
		DisplayName: "Priya Mercer",
		Email:       "pmercer@vendorhub.example",
		Role:        domain.RolePurchasing,
	}
}

func seedSession(repo *stubSessionRepo, sid string, id *domain.Identity, token string, resolvedAt time.Time) {
	now := time.Now().UTC()
	repo.records[sid] = &domain.Session{
		SID:         sid,
		State:       domain.StateAuthenticated,
		Identity:    id,
		AccessToken: token,
		ResolvedAt:  resolvedAt,
		CreatedAt:   now.Add(-time.Hour),
		ExpiresAt:   now.Add(11 * time.Hour),
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestSessionService_Login_EmptyFieldsNeverContactProvider(t *testing.T) {
	provider := &stubProvider{}
	pub := &stubPublisher{}
	svc := newSessionSvc(provider, newStubSessionRepo(), &stubActivityRepo{}, pub)

	for _, in := range []ports.LoginInput{
		{Username: "", Password: "secret"},
		{Username: "pmercer", Password: ""},
		{Username: "", Password: ""},
	} {
		_, _, err := svc.Login(context.Background(), in)
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("expected ErrValidation, got: %v", err)
		}
	}

	if provider.loginCalls != 0 {
		t.Errorf("provider contacted %d times, want 0", provider.loginCalls)
	}
	if len(pub.published) != 3 {
		t.Fatalf("notices = %d, want 3 (one failure per attempt)", len(pub.published))
	}
	for _, n := range pub.published {
		if n.Level != notify.LevelError {
			t.Errorf("notice level = %q, want error", n.Level)
		}
	}
}

func TestSessionService_Login_SuccessStoresIdentityWithoutProbe(t *testing.T) {
	provider := &stubProvider{loginID: purchasingIdentity(), loginToken: "tok-123"}
	repo := newStubSessionRepo()
	seedSession(repo, "old-sid", nil, "", time.Now().UTC())
	repo.records["old-sid"].State = domain.StateUnauthenticated
	pub := &stubPublisher{}
	svc := newSessionSvc(provider, repo, &stubActivityRepo{}, pub)

	sess, n, err := svc.Login(context.Background(), ports.LoginInput{
		SID:      "old-sid",
		Username: "pmercer",
		Password: "secret",
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sess.Authenticated() {
		t.Fatal("expected authenticated session")
	}
	if sess.Identity.Username != "pmercer" || sess.Identity.Role != domain.RolePurchasing {
		t.Errorf("stored identity = %+v", sess.Identity)
	}
	if sess.AccessToken != "tok-123" {
		t.Errorf("access token = %q, want tok-123", sess.AccessToken)
	}
	if provider.probeCalls != 0 {
		t.Errorf("probe performed %d times after login, want 0", provider.probeCalls)
	}
	if sess.SID == "old-sid" {
		t.Error("expected sid rotation on login")
	}
	if _, ok := repo.records["old-sid"]; ok {
		t.Error("previous session should be deleted after rotation")
	}
	if len(pub.published) != 1 {
		t.Fatalf("notices = %d, want exactly 1", len(pub.published))
	}
	if n.Level != notify.LevelSuccess || n.Message != "Welcome back, Priya Mercer" {
		t.Errorf("notice = %+v", n)
	}
}

func TestSessionService_Login_ProviderFailureVerbatimMessage(t *testing.T) {
	provider := &stubProvider{loginErr: &domain.ProviderError{
		Err:     domain.ErrInvalidCredentials,
		Message: "Invalid username or password",
	}}
	repo := newStubSessionRepo()
	pub := &stubPublisher{}
	svc := newSessionSvc(provider, repo, &stubActivityRepo{}, pub)

	sess, n, err := svc.Login(context.Background(), ports.LoginInput{
		Username: "pmercer",
		Password: "wrong",
	})

	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got: %v", err)
	}
	if sess != nil {
		t.Error("expected no session on failed login")
	}
	if n.Level != notify.LevelError || n.Message != "Invalid username or password" {
		t.Errorf("notice should carry the provider message verbatim, got: %+v", n)
	}
	if len(repo.saved) != 0 {
		t.Error("no session should be persisted on failed login")
	}
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestSessionService_Register_ConfirmMismatchNeverContactsProvider(t *testing.T) {
	provider := &stubProvider{}
	pub := &stubPublisher{}
	svc := newSessionSvc(provider, newStubSessionRepo(), &stubActivityRepo{}, pub)

	_, n, err := svc.Register(context.Background(), ports.RegisterInput{
		Username:        "svega",
		Password:        "secret",
		ConfirmPassword: "different",
		Role:            "supplier",
		Company:         "Vega Industrial Supplies",
	})

	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got: %v", err)
	}
	if provider.registerCalls != 0 {
		t.Errorf("provider contacted %d times, want 0", provider.registerCalls)
	}
	if n.Level != notify.LevelError {
		t.Errorf("notice level = %q, want error", n.Level)
	}
}

func TestSessionService_Register_SuccessSignsIn(t *testing.T) {
	created := &domain.Identity{
		ID:          7,
		Username:    "svega",
		DisplayName: "Sofia Vega",
		Role:        domain.RoleSupplier,
		Company:     "Vega Industrial Supplies",
	}
	provider := &stubProvider{registerID: created, registerToken: "tok-reg"}
	repo := newStubSessionRepo()
	pub := &stubPublisher{}
	svc := newSessionSvc(provider, repo, &stubActivityRepo{}, pub)

	sess, n, err := svc.Register(context.Background(), ports.RegisterInput{
		Username:        "svega",
		Password:        "secret",
		ConfirmPassword: "secret",
		DisplayName:     "Sofia Vega",
		Role:            "supplier",
		Company:         "Vega Industrial Supplies",
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sess.Authenticated() || sess.Identity.Role != domain.RoleSupplier {
		t.Errorf("session = %+v", sess)
	}
	if provider.probeCalls != 0 {
		t.Error("registration must not trigger a probe")
	}
	if n.Message != "Welcome, Sofia Vega" {
		t.Errorf("notice message = %q", n.Message)
	}
}

// ---------------------------------------------------------------------------
// Logout
// ---------------------------------------------------------------------------

func TestSessionService_Logout_ClearsSession(t *testing.T) {
	provider := &stubProvider{}
	repo := newStubSessionRepo()
	seedSession(repo, "sid-1", purchasingIdentity(), "tok-123", time.Now().UTC())
	pub := &stubPublisher{}
	svc := newSessionSvc(provider, repo, &stubActivityRepo{}, pub)

	n := svc.Logout(context.Background(), ports.LogoutInput{SID: "sid-1"})

	if _, ok := repo.records["sid-1"]; ok {
		t.Error("session record should be deleted")
	}
	if provider.logoutCalls != 1 || provider.logoutTokens[0] != "tok-123" {
		t.Errorf("upstream logout calls = %d tokens = %v", provider.logoutCalls, provider.logoutTokens)
	}
	if n.Level != notify.LevelSuccess {
		t.Errorf("notice level = %q, want success", n.Level)
	}
}

func TestSessionService_Logout_UpstreamFailureStillClears(t *testing.T) {
	provider := &stubProvider{logoutErr: errors.New("upstream timeout")}
	repo := newStubSessionRepo()
	seedSession(repo, "sid-1", purchasingIdentity(), "tok-123", time.Now().UTC())
	pub := &stubPublisher{}
	svc := newSessionSvc(provider, repo, &stubActivityRepo{}, pub)

	n := svc.Logout(context.Background(), ports.LogoutInput{SID: "sid-1"})

	if _, ok := repo.records["sid-1"]; ok {
		t.Error("local session must be destroyed even when upstream logout fails")
	}
	if n.Level != notify.LevelError {
		t.Errorf("notice level = %q, want error", n.Level)
	}
	if len(pub.published) != 1 {
		t.Errorf("notices = %d, want exactly 1", len(pub.published))
	}
}

// ---------------------------------------------------------------------------
// Resolve
// ---------------------------------------------------------------------------

func TestSessionService_Resolve_FirstContactUnauthenticated(t *testing.T) {
	provider := &stubProvider{probeErr: domain.ErrUnauthenticated}
	repo := newStubSessionRepo()
	svc := newSessionSvc(provider, repo, &stubActivityRepo{}, &stubPublisher{})

	sess := svc.Resolve(context.Background(), "")

	if sess.State != domain.StateUnauthenticated {
		t.Errorf("state = %q, want unauthenticated", sess.State)
	}
	if sess.SID == "" {
		t.Error("expected a minted sid")
	}
	if provider.probeTokens[0] != "" {
		t.Errorf("first contact should probe with an empty token, got %q", provider.probeTokens[0])
	}
	if _, ok := repo.records[sess.SID]; !ok {
		t.Error("first-contact session should be persisted")
	}
}

func TestSessionService_Resolve_FreshIdentitySkipsProbe(t *testing.T) {
	provider := &stubProvider{}
	repo := newStubSessionRepo()
	seedSession(repo, "sid-1", purchasingIdentity(), "tok-123", time.Now().UTC())
	svc := newSessionSvc(provider, repo, &stubActivityRepo{}, &stubPublisher{})

	sess := svc.Resolve(context.Background(), "sid-1")

	if !sess.Authenticated() {
		t.Fatal("expected authenticated session")
	}
	if provider.probeCalls != 0 {
		t.Errorf("probe calls = %d, want 0 while identity is fresh", provider.probeCalls)
	}
}

func TestSessionService_Resolve_StaleIdentityReprobes(t *testing.T) {
	refreshed := purchasingIdentity()
	refreshed.DisplayName = "Priya Mercer-Lund"
	provider := &stubProvider{probeID: refreshed}
	repo := newStubSessionRepo()
	seedSession(repo, "sid-1", purchasingIdentity(), "tok-123", time.Now().UTC().Add(-10*time.Minute))
	svc := newSessionSvc(provider, repo, &stubActivityRepo{}, &stubPublisher{})

	sess := svc.Resolve(context.Background(), "sid-1")

	if provider.probeCalls != 1 || provider.probeTokens[0] != "tok-123" {
		t.Fatalf("probe calls = %d tokens = %v", provider.probeCalls, provider.probeTokens)
	}
	if sess.Identity.DisplayName != "Priya Mercer-Lund" {
		t.Errorf("identity not refreshed: %+v", sess.Identity)
	}
	if sess.AccessToken != "tok-123" {
		t.Errorf("token should survive a probe, got %q", sess.AccessToken)
	}
}

func TestSessionService_Resolve_ProbeRejectionDestroysIdentity(t *testing.T) {
	provider := &stubProvider{probeErr: domain.ErrUnauthenticated}
	repo := newStubSessionRepo()
	seedSession(repo, "sid-1", purchasingIdentity(), "tok-123", time.Now().UTC().Add(-10*time.Minute))
	svc := newSessionSvc(provider, repo, &stubActivityRepo{}, &stubPublisher{})

	sess := svc.Resolve(context.Background(), "sid-1")

	if sess.State != domain.StateUnauthenticated {
		t.Errorf("state = %q, want unauthenticated", sess.State)
	}
	if sess.Identity != nil {
		t.Error("identity should be destroyed on probe rejection")
	}
	if sess.ProbeError != "" {
		t.Errorf("a 401-equivalent probe is not an error, got %q", sess.ProbeError)
	}
}

func TestSessionService_Resolve_ProbeFailureLeavesUnresolved(t *testing.T) {
	provider := &stubProvider{probeErr: &domain.ProviderError{
		Err:     domain.ErrProviderUnavailable,
		Message: "identity service unreachable",
	}}
	repo := newStubSessionRepo()
	seedSession(repo, "sid-1", purchasingIdentity(), "tok-123", time.Now().UTC().Add(-10*time.Minute))
	svc := newSessionSvc(provider, repo, &stubActivityRepo{}, &stubPublisher{})

	sess := svc.Resolve(context.Background(), "sid-1")

	if sess.State != domain.StateUnresolved {
		t.Errorf("state = %q, want unresolved", sess.State)
	}
	if sess.ProbeError == "" {
		t.Error("probe error should be retained on the record")
	}
	if sess.AccessToken != "tok-123" {
		t.Error("token must be kept so the next request can retry")
	}
}

func TestSessionService_Resolve_UnresolvedRetriesAndSettles(t *testing.T) {
	provider := &stubProvider{probeID: purchasingIdentity()}
	repo := newStubSessionRepo()
	now := time.Now().UTC()
	repo.records["sid-1"] = &domain.Session{
		SID:         "sid-1",
		State:       domain.StateUnresolved,
		AccessToken: "tok-123",
		ProbeError:  "identity service unreachable",
		CreatedAt:   now.Add(-time.Minute),
		ExpiresAt:   now.Add(time.Hour),
	}
	svc := newSessionSvc(provider, repo, &stubActivityRepo{}, &stubPublisher{})

	sess := svc.Resolve(context.Background(), "sid-1")

	if !sess.Authenticated() {
		t.Fatalf("expected session to settle authenticated, state = %q", sess.State)
	}
	if sess.ProbeError != "" {
		t.Errorf("probe error should clear once settled, got %q", sess.ProbeError)
	}
}

func TestSessionService_Resolve_ExpiredRecordStartsOver(t *testing.T) {
	provider := &stubProvider{probeErr: domain.ErrUnauthenticated}
	repo := newStubSessionRepo()
	now := time.Now().UTC()
	repo.records["sid-1"] = &domain.Session{
		SID:       "sid-1",
		State:     domain.StateAuthenticated,
		Identity:  purchasingIdentity(),
		CreatedAt: now.Add(-13 * time.Hour),
		ExpiresAt: now.Add(-time.Hour),
	}
	svc := newSessionSvc(provider, repo, &stubActivityRepo{}, &stubPublisher{})

	sess := svc.Resolve(context.Background(), "sid-1")

	if sess.SID == "sid-1" {
		t.Error("expired session should be replaced with a fresh sid")
	}
	if _, ok := repo.records["sid-1"]; ok {
		t.Error("expired record should be deleted")
	}
}

func TestSessionService_Resolve_StoreFailureRidesOutAsUnresolved(t *testing.T) {
	provider := &stubProvider{}
	repo := newStubSessionRepo()
	repo.findErr = errors.New("store unreachable")
	svc := newSessionSvc(provider, repo, &stubActivityRepo{}, &stubPublisher{})

	sess := svc.Resolve(context.Background(), "sid-1")

	if sess.State != domain.StateUnresolved {
		t.Errorf("state = %q, want unresolved", sess.State)
	}
	if sess.SID != "sid-1" {
		t.Errorf("sid = %q, want the presented sid kept", sess.SID)
	}
	if provider.probeCalls != 0 {
		t.Error("no probe should run while the store is unreachable")
	}
}

// ---------------------------------------------------------------------------
// SwitchRole
// ---------------------------------------------------------------------------

func TestSessionService_SwitchRole_UnknownRoleLeavesIdentity(t *testing.T) {
	provider := &stubSwitchProvider{}
	repo := newStubSessionRepo()
	seedSession(repo, "sid-1", purchasingIdentity(), "demo:pmercer", time.Now().UTC())
	pub := &stubPublisher{}
	svc := newSessionSvc(provider, repo, &stubActivityRepo{}, pub)

	sess, n, err := svc.SwitchRole(context.Background(), ports.SwitchRoleInput{SID: "sid-1", Role: "superadmin"})

	if !errors.Is(err, domain.ErrUnknownRole) {
		t.Errorf("expected ErrUnknownRole, got: %v", err)
	}
	if sess != nil {
		t.Error("expected no session on failed switch")
	}
	if provider.switchCalls != 0 {
		t.Errorf("provider consulted %d times for an unknown role, want 0", provider.switchCalls)
	}
	if got := repo.records["sid-1"].Identity.Role; got != domain.RolePurchasing {
		t.Errorf("stored identity role = %q, want unchanged purchasing", got)
	}
	if n.Level != notify.LevelError {
		t.Errorf("notice level = %q, want error", n.Level)
	}
}

func TestSessionService_SwitchRole_SuccessSwapsInPlace(t *testing.T) {
	ops := &domain.Identity{ID: 3, Username: "odiaz", DisplayName: "Omar Diaz", Role: domain.RoleOperations}
	provider := &stubSwitchProvider{switchID: ops, switchToken: "demo:odiaz"}
	repo := newStubSessionRepo()
	seedSession(repo, "sid-1", purchasingIdentity(), "demo:pmercer", time.Now().UTC())
	pub := &stubPublisher{}
	svc := newSessionSvc(provider, repo, &stubActivityRepo{}, pub)

	sess, n, err := svc.SwitchRole(context.Background(), ports.SwitchRoleInput{SID: "sid-1", Role: "operations"})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.SID != "sid-1" {
		t.Errorf("switch must not rotate the sid, got %q", sess.SID)
	}
	if sess.Identity.Role != domain.RoleOperations {
		t.Errorf("identity role = %q, want operations", sess.Identity.Role)
	}
	if sess.AccessToken != "demo:odiaz" {
		t.Errorf("token = %q, want the switched token", sess.AccessToken)
	}
	if len(pub.published) != 1 {
		t.Fatalf("notices = %d, want exactly 1", len(pub.published))
	}
	if n.Level != notify.LevelSuccess {
		t.Errorf("notice level = %q, want success", n.Level)
	}
}

func TestSessionService_SwitchRole_UnsupportedProvider(t *testing.T) {
	provider := &stubProvider{} // no RoleSwitcher
	pub := &stubPublisher{}
	svc := newSessionSvc(provider, newStubSessionRepo(), &stubActivityRepo{}, pub)

	_, _, err := svc.SwitchRole(context.Background(), ports.SwitchRoleInput{Role: "operations"})

	if !errors.Is(err, domain.ErrRoleSwitchUnsupported) {
		t.Errorf("expected ErrRoleSwitchUnsupported, got: %v", err)
	}
	if len(pub.published) != 0 {
		t.Errorf("notices = %d, want 0 for an unsupported provider", len(pub.published))
	}
}

// ---------------------------------------------------------------------------
// Activity trail
// ---------------------------------------------------------------------------

func TestSessionService_ActivityTrailRecordsOperations(t *testing.T) {
	provider := &stubProvider{loginID: purchasingIdentity(), loginToken: "tok-123"}
	repo := newStubSessionRepo()
	act := &stubActivityRepo{}
	svc := newSessionSvc(provider, repo, act, &stubPublisher{})

	_, _, err := svc.Login(context.Background(), ports.LoginInput{
		Username:   "pmercer",
		Password:   "secret",
		RemoteAddr: "203.0.113.9",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(act.entries) != 1 {
		t.Fatalf("trail entries = %d, want 1", len(act.entries))
	}
	e := act.entries[0]
	if e.Operation != domain.ActivityLogin || e.Result != domain.ActivityOK {
		t.Errorf("entry = %+v", e)
	}
	if e.Actor != "pmercer" || e.RemoteAddr != "203.0.113.9" {
		t.Errorf("entry attribution = %+v", e)
	}
}

func TestSessionService_ActivityTrailFailureIsNonFatal(t *testing.T) {
	provider := &stubProvider{loginID: purchasingIdentity(), loginToken: "tok-123"}
	repo := newStubSessionRepo()
	act := &failingActivityRepo{}
	svc := NewSessionService(provider, repo, act, &stubPublisher{}, 0, 0, zerolog.Nop())

	sess, _, err := svc.Login(context.Background(), ports.LoginInput{Username: "pmercer", Password: "secret"})

	if err != nil {
		t.Fatalf("trail failure must not fail the operation, got: %v", err)
	}
	if !sess.Authenticated() {
		t.Error("expected authenticated session despite trail failure")
	}
}

type failingActivityRepo struct{}

func (r *failingActivityRepo) Append(_ context.Context, _ *domain.ActivityEntry) error {
	return errors.New("mongo unavailable")
}

func (r *failingActivityRepo) List(_ context.Context, _ int) ([]*domain.ActivityEntry, error) {
	return nil, errors.New("mongo unavailable")
}
