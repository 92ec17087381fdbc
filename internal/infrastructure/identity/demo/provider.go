// Package demo is the in-process identity backend used for demonstrations
// and UI testing. It keeps a fixed directory of sample accounts with
// plaintext secrets, never talks to the network, and simulates the upstream
// round trip with a fixed delay so loading states stay exercisable. The
// plaintext matching is acceptable here and only here.
package demo

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/vendorhub/supplier-portal/internal/core/domain"
	"github.com/vendorhub/supplier-portal/internal/core/ports"
)

const (
	defaultDelay = 500 * time.Millisecond
	tokenPrefix  = "demo:"
)

// account pairs a sample identity with its demo secret. The secret lives
// only in this package and has no JSON representation anywhere.
type account struct {
	identity domain.Identity
	secret   string
}

// Provider implements ports.IdentityProvider and ports.RoleSwitcher over the
// fixed directory. The default identity is signed in from first contact.
type Provider struct {
	mu       sync.Mutex
	accounts []*account
	byRole   map[domain.Role]*account
	delay    time.Duration
	nextID   int64
}

// NewProvider builds the directory. If delay <= 0, the standard 500ms
// simulated latency is used.
func NewProvider(delay time.Duration) *Provider {
	if delay <= 0 {
		delay = defaultDelay
	}
	p := &Provider{
		byRole: make(map[domain.Role]*account),
		delay:  delay,
		nextID: 1,
	}
	p.seed("admin", "Adriana Solis", "admin@vendorhub.example", domain.RoleManagement, "", "admin123")
	p.seed("pmercer", "Priya Mercer", "pmercer@vendorhub.example", domain.RolePurchasing, "", "demo123")
	p.seed("odiaz", "Omar Diaz", "odiaz@vendorhub.example", domain.RoleOperations, "", "demo123")
	p.seed("achen", "Alice Chen", "achen@vendorhub.example", domain.RoleAccounting, "", "demo123")
	p.seed("lnovak", "Lena Novak", "lnovak@vendorhub.example", domain.RoleLegal, "", "demo123")
	p.seed("svega", "Sofia Vega", "svega@vendorhub.example", domain.RoleSupplier, "Vega Industrial Supplies", "demo123")
	return p
}

func (p *Provider) seed(username, displayName, email string, role domain.Role, company, secret string) {
	acc := &account{
		identity: domain.Identity{
			ID:          p.nextID,
			Username:    username,
			DisplayName: displayName,
			Email:       email,
			Role:        role,
			Company:     company,
		},
		secret: secret,
	}
	p.nextID++
	p.accounts = append(p.accounts, acc)
	p.byRole[role] = acc
}

// Probe answers immediately: the demo never keeps the UI waiting on first
// contact. An empty token maps to the default identity so a brand-new
// session starts signed in.
func (p *Provider) Probe(_ context.Context, token string) (*domain.Identity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if token == "" {
		return p.byRole[domain.RoleManagement].identity.Clone(), nil
	}
	username, ok := strings.CutPrefix(token, tokenPrefix)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	if acc := p.findByUsername(username); acc != nil {
		return acc.identity.Clone(), nil
	}
	return nil, domain.ErrUnauthenticated
}

// Login matches username and secret against the directory by linear scan.
func (p *Provider) Login(ctx context.Context, in ports.LoginPayload) (*domain.Identity, string, error) {
	if err := p.simulateLatency(ctx); err != nil {
		return nil, "", err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, acc := range p.accounts {
		if acc.identity.Username == in.Username && acc.secret == in.Password {
			return acc.identity.Clone(), tokenFor(&acc.identity), nil
		}
	}
	return nil, "", &domain.ProviderError{
		Err:     domain.ErrInvalidCredentials,
		Message: "Invalid username or password",
	}
}

// Register adds an account to the directory and signs it in. Registered
// accounts can log in and be probed but never become role-switch targets;
// those stay the predefined six.
func (p *Provider) Register(ctx context.Context, in ports.RegisterPayload) (*domain.Identity, string, error) {
	if err := p.simulateLatency(ctx); err != nil {
		return nil, "", err
	}

	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, "", &domain.ProviderError{Err: err, Message: "Invalid role: " + in.Role}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.findByUsername(in.Username) != nil {
		return nil, "", &domain.ProviderError{
			Err:     domain.ErrUserExists,
			Message: "Username " + in.Username + " is already taken",
		}
	}

	acc := &account{
		identity: domain.Identity{
			ID:          p.nextID,
			Username:    in.Username,
			DisplayName: in.DisplayName,
			Email:       in.Email,
			Role:        role,
			Company:     in.Company,
		},
		secret: in.Password,
	}
	if err := acc.identity.Validate(); err != nil {
		return nil, "", &domain.ProviderError{Err: domain.ErrValidation, Message: err.Error()}
	}
	p.nextID++
	p.accounts = append(p.accounts, acc)

	return acc.identity.Clone(), tokenFor(&acc.identity), nil
}

// Logout only burns the simulated latency; the directory holds no session
// state to clear.
func (p *Provider) Logout(ctx context.Context, _ string) error {
	return p.simulateLatency(ctx)
}

// SwitchRole swaps to the predefined identity holding the given role.
func (p *Provider) SwitchRole(ctx context.Context, role string) (*domain.Identity, string, error) {
	if err := p.simulateLatency(ctx); err != nil {
		return nil, "", err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	acc, ok := p.byRole[domain.Role(role)]
	if !ok {
		return nil, "", &domain.ProviderError{
			Err:     domain.ErrUnknownRole,
			Message: "Invalid role: " + role,
		}
	}
	return acc.identity.Clone(), tokenFor(&acc.identity), nil
}

func (p *Provider) findByUsername(username string) *account {
	for _, acc := range p.accounts {
		if acc.identity.Username == username {
			return acc
		}
	}
	return nil
}

// simulateLatency blocks for the configured delay or until ctx is done.
func (p *Provider) simulateLatency(ctx context.Context) error {
	timer := time.NewTimer(p.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// tokenFor derives the demo bearer token. Probing it later maps back to the
// same account, so a switched role survives identity refreshes.
func tokenFor(id *domain.Identity) string {
	return tokenPrefix + id.Username
}
