// Package upstream is the networked identity backend: a thin client for the
// portal's identity service. It owns the wire format and translates HTTP
// outcomes into the domain's error taxonomy; the one rule that matters is
// that a 401 on probe is a normal answer, not a failure.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/vendorhub/supplier-portal/internal/core/domain"
	"github.com/vendorhub/supplier-portal/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Client calls the identity service's auth endpoints.
type Client struct {
	base   string
	client *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		base:   strings.TrimRight(baseURL, "/"),
		client: &http.Client{Timeout: timeout},
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email,omitempty"`
	Role        string `json:"role"`
	Company     string `json:"company,omitempty"`
}

// authEnvelope is the identity service's response shape for every auth
// endpoint; Error is set on non-2xx answers.
type authEnvelope struct {
	User  *domain.Identity `json:"user"`
	Token string           `json:"token"`
	Error string           `json:"error"`
}

// Probe verifies the bearer token against /v1/auth/me. An empty token is
// first contact: nothing to verify, answered locally without a round trip.
func (c *Client) Probe(ctx context.Context, token string) (*domain.Identity, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/v1/auth/me", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, unreachable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, domain.ErrUnauthenticated
	}
	if resp.StatusCode >= 300 {
		return nil, errorFrom(resp, domain.ErrUnauthenticated)
	}

	var body authEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, malformed(err)
	}
	if body.User == nil {
		return nil, malformed(errors.New("missing user in probe response"))
	}
	return body.User, nil
}

// Login exchanges credentials for an identity and a bearer token.
func (c *Client) Login(ctx context.Context, in ports.LoginPayload) (*domain.Identity, string, error) {
	return c.authenticate(ctx, "/v1/auth/login", loginRequest{
		Username: in.Username,
		Password: in.Password,
	})
}

// Register creates the account and signs it in. The payload type has no
// confirmation field, so nothing confirmation-shaped can ever reach the
// wire.
func (c *Client) Register(ctx context.Context, in ports.RegisterPayload) (*domain.Identity, string, error) {
	return c.authenticate(ctx, "/v1/auth/register", registerRequest{
		Username:    in.Username,
		Password:    in.Password,
		DisplayName: in.DisplayName,
		Email:       in.Email,
		Role:        in.Role,
		Company:     in.Company,
	})
}

// Logout ends the upstream session. A 401 means the session is already dead
// upstream, which is the outcome logout wants.
func (c *Client) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/v1/auth/logout", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return unreachable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil
	}
	if resp.StatusCode >= 300 {
		return errorFrom(resp, domain.ErrUnauthenticated)
	}
	return nil
}

func (c *Client) authenticate(ctx context.Context, path string, payload any) (*domain.Identity, string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(raw))
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", unreachable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, "", errorFrom(resp, domain.ErrInvalidCredentials)
	}

	var body authEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, "", malformed(err)
	}
	if body.User == nil || body.Token == "" {
		return nil, "", malformed(errors.New("incomplete auth response"))
	}
	return body.User, body.Token, nil
}

// errorFrom classifies a non-2xx answer and carries the identity service's
// own message through verbatim. on401 names the sentinel a 401 maps to for
// the calling endpoint.
func errorFrom(resp *http.Response, on401 error) error {
	var body authEnvelope
	msg := ""
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		msg = body.Error
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	var sentinel error
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		sentinel = on401
	case http.StatusConflict:
		sentinel = domain.ErrUserExists
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		sentinel = domain.ErrValidation
	default:
		sentinel = domain.ErrProviderUnavailable
	}

	return &domain.ProviderError{
		Err:     fmt.Errorf("%w: status %d", sentinel, resp.StatusCode),
		Message: msg,
	}
}

func unreachable(err error) error {
	return &domain.ProviderError{
		Err:     fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err),
		Message: "Identity service is unreachable",
	}
}

func malformed(err error) error {
	return &domain.ProviderError{
		Err:     fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err),
		Message: "Identity service returned an unreadable response",
	}
}
