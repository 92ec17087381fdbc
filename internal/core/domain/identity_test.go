package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestParseRole(t *testing.T) {
	for _, role := range Roles() {
		parsed, err := ParseRole(string(role))
		if err != nil {
			t.Fatalf("ParseRole(%s): %v", role, err)
		}
		if parsed != role {
			t.Fatalf("expected %s, got %s", role, parsed)
		}
	}

	for _, raw := range []string{"superuser", "", "Purchasing", "supplier "} {
		if _, err := ParseRole(raw); !errors.Is(err, ErrUnknownRole) {
			t.Fatalf("ParseRole(%q): expected ErrUnknownRole, got %v", raw, err)
		}
	}
}

func TestRoles_DeclarationOrder(t *testing.T) {
	want := []Role{RolePurchasing, RoleOperations, RoleAccounting, RoleLegal, RoleManagement, RoleSupplier}
	got := Roles()
	if len(got) != len(want) {
		t.Fatalf("expected %d roles, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("role %d: expected %s, got %s", i, want[i], got[i])
		}
	}

	// Roles hands out a copy, not the package slice.
	got[0] = Role("mutated")
	if Roles()[0] != RolePurchasing {
		t.Fatalf("mutating the returned slice leaked into the package")
	}
}

func TestIdentity_Validate(t *testing.T) {
	cases := []struct {
		name    string
		id      *Identity
		wantErr bool
	}{
		{"nil identity", nil, true},
		{"plain staff identity", &Identity{Username: "odiaz", Role: RoleOperations}, false},
		{"supplier with company", &Identity{Username: "svega", Role: RoleSupplier, Company: "Vega Industrial Supplies"}, false},
		{"supplier missing company", &Identity{Username: "svega", Role: RoleSupplier}, true},
		{"company on staff identity", &Identity{Username: "odiaz", Role: RoleOperations, Company: "Acme"}, true},
		{"unknown role", &Identity{Username: "x", Role: Role("superuser")}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.id.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestIdentity_CloneIsolates(t *testing.T) {
	original := &Identity{ID: 1, Username: "pmercer", DisplayName: "Priya Mercer", Role: RolePurchasing}

	clone := original.Clone()
	clone.Username = "intruder"
	clone.Role = RoleManagement

	if original.Username != "pmercer" || original.Role != RolePurchasing {
		t.Fatalf("mutating the clone changed the original: %+v", original)
	}

	var nilID *Identity
	if nilID.Clone() != nil {
		t.Fatalf("cloning nil must stay nil")
	}
}

func TestProviderError(t *testing.T) {
	err := &ProviderError{
		Err:     fmt.Errorf("%w: status 401", ErrInvalidCredentials),
		Message: "Wrong username or password",
	}

	if err.Error() != "Wrong username or password" {
		t.Fatalf("expected the provider message, got %q", err.Error())
	}
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("classification through Unwrap broken")
	}

	bare := &ProviderError{Err: ErrProviderUnavailable}
	if bare.Error() != ErrProviderUnavailable.Error() {
		t.Fatalf("expected sentinel text fallback, got %q", bare.Error())
	}
}
