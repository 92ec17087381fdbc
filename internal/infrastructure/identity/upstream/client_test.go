package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vendorhub/supplier-portal/internal/core/domain"
	"github.com/vendorhub/supplier-portal/internal/core/ports"
)

func testClient(url string) *Client {
	return NewClient(url, 2*time.Second)
}

func TestClient_Probe_EmptyTokenShortCircuits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("first contact must not reach the identity service")
	}))
	defer server.Close()

	_, err := testClient(server.URL).Probe(context.Background(), "")

	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got: %v", err)
	}
}

func TestClient_Probe_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/v1/auth/me" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer tok-123" {
			t.Errorf("authorization = %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"user":{"id":2,"username":"pmercer","display_name":"Priya Mercer","role":"purchasing"}}`))
	}))
	defer server.Close()

	id, err := testClient(server.URL).Probe(context.Background(), "tok-123")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.Username != "pmercer" || id.Role != domain.RolePurchasing {
		t.Errorf("identity = %+v", id)
	}
}

func TestClient_Probe_401IsNormalNotError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(401)
		w.Write([]byte(`{"error":"session expired"}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).Probe(context.Background(), "tok-dead")

	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got: %v", err)
	}
	if errors.Is(err, domain.ErrProviderUnavailable) {
		t.Error("a probe 401 must not classify as a provider failure")
	}
}

func TestClient_Probe_ServerErrorRetainsMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(503)
		w.Write([]byte(`{"error":"scheduled maintenance"}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).Probe(context.Background(), "tok-123")

	if !errors.Is(err, domain.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got: %v", err)
	}
	if err.Error() != "scheduled maintenance" {
		t.Errorf("message = %q, want the service's own wording", err.Error())
	}
}

func TestClient_Probe_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listening anymore

	_, err := testClient(server.URL).Probe(context.Background(), "tok-123")

	if !errors.Is(err, domain.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got: %v", err)
	}
}

func TestClient_Login_Success(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/auth/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &received)
		w.Write([]byte(`{"user":{"id":2,"username":"pmercer","display_name":"Priya Mercer","role":"purchasing"},"token":"tok-123"}`))
	}))
	defer server.Close()

	id, token, err := testClient(server.URL).Login(context.Background(), ports.LoginPayload{
		Username: "pmercer",
		Password: "secret",
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if received["username"] != "pmercer" || received["password"] != "secret" {
		t.Errorf("wire payload = %v", received)
	}
	if id.DisplayName != "Priya Mercer" || token != "tok-123" {
		t.Errorf("identity = %+v token = %q", id, token)
	}
}

func TestClient_Login_RejectionVerbatimMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(401)
		w.Write([]byte(`{"error":"Invalid username or password"}`))
	}))
	defer server.Close()

	_, _, err := testClient(server.URL).Login(context.Background(), ports.LoginPayload{
		Username: "pmercer",
		Password: "wrong",
	})

	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got: %v", err)
	}
	if err.Error() != "Invalid username or password" {
		t.Errorf("message = %q, want the service's wording verbatim", err.Error())
	}
}

func TestClient_Register_WireCarriesNoConfirmation(t *testing.T) {
	var raw []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/auth/register" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		raw, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"user":{"id":7,"username":"svega","display_name":"Sofia Vega","role":"supplier","company":"Vega Industrial Supplies"},"token":"tok-reg"}`))
	}))
	defer server.Close()

	id, token, err := testClient(server.URL).Register(context.Background(), ports.RegisterPayload{
		Username:    "svega",
		Password:    "secret",
		DisplayName: "Sofia Vega",
		Role:        "supplier",
		Company:     "Vega Industrial Supplies",
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(strings.ToLower(string(raw)), "confirm") {
		t.Errorf("wire payload leaks a confirmation field: %s", raw)
	}
	if id.Company != "Vega Industrial Supplies" || token != "tok-reg" {
		t.Errorf("identity = %+v token = %q", id, token)
	}
}

func TestClient_Register_Conflict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(409)
		w.Write([]byte(`{"error":"Username svega is already taken"}`))
	}))
	defer server.Close()

	_, _, err := testClient(server.URL).Register(context.Background(), ports.RegisterPayload{
		Username: "svega",
		Password: "secret",
		Role:     "supplier",
		Company:  "Vega Industrial Supplies",
	})

	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got: %v", err)
	}
}

func TestClient_Logout(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.Method != http.MethodPost || r.URL.Path != "/v1/auth/logout" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer tok-123" {
			t.Errorf("authorization = %q", r.Header.Get("Authorization"))
		}
		w.WriteHeader(204)
	}))
	defer server.Close()

	if err := testClient(server.URL).Logout(context.Background(), "tok-123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("logout calls = %d, want 1", calls)
	}
}

func TestClient_Logout_EmptyTokenNoop(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("empty-token logout must not reach the identity service")
	}))
	defer server.Close()

	if err := testClient(server.URL).Logout(context.Background(), ""); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestClient_Logout_AlreadyDeadSessionIsSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(401)
	}))
	defer server.Close()

	if err := testClient(server.URL).Logout(context.Background(), "tok-dead"); err != nil {
		t.Errorf("a 401 logout should count as signed out, got: %v", err)
	}
}

func TestClient_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"user": not-json`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).Probe(context.Background(), "tok-123")

	if !errors.Is(err, domain.ErrProviderUnavailable) {
		t.Errorf("expected ErrProviderUnavailable for malformed body, got: %v", err)
	}
}
