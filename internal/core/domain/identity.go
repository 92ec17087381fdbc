package domain

import "errors"

// Role classifies what a signed-in principal may do in the portal.
type Role string

const (
	RolePurchasing Role = "purchasing"
	RoleOperations Role = "operations"
	RoleAccounting Role = "accounting"
	RoleLegal      Role = "legal"
	RoleManagement Role = "management"
	RoleSupplier   Role = "supplier"
)

// roleOrder fixes the declaration order used when roles are listed to users.
var roleOrder = []Role{
	RolePurchasing,
	RoleOperations,
	RoleAccounting,
	RoleLegal,
	RoleManagement,
	RoleSupplier,
}

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrValidation = errors.New("validation failed")
var ErrUnknownRole = errors.New("unknown role")
var ErrUserExists = errors.New("user already exists")
var ErrUnauthenticated = errors.New("not authenticated")
var ErrProviderUnavailable = errors.New("identity service unavailable")
var ErrRoleSwitchUnsupported = errors.New("role switching not supported")

// Roles returns every valid role in declaration order.
func Roles() []Role {
	out := make([]Role, len(roleOrder))
	copy(out, roleOrder)
	return out
}

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	for _, known := range roleOrder {
		if r == known {
			return true
		}
	}
	return false
}

// ParseRole converts a wire string into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", ErrUnknownRole
	}
	return r, nil
}

// Identity models an authenticated principal as reported by the identity
// service. Company is set only for supplier accounts.
type Identity struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email,omitempty"`
	Role        Role   `json:"role"`
	Company     string `json:"company,omitempty"`
}

// Validate checks the role enum and the role/company pairing. The upstream
// path trusts the identity service; this is used by the demo directory and
// in tests.
func (i *Identity) Validate() error {
	if i == nil {
		return ErrValidation
	}
	if !i.Role.Valid() {
		return ErrUnknownRole
	}
	if i.Role == RoleSupplier && i.Company == "" {
		return errors.New("supplier identity missing company")
	}
	if i.Role != RoleSupplier && i.Company != "" {
		return errors.New("company set on non-supplier identity")
	}
	return nil
}

// Clone returns a copy so stored identities cannot be mutated through
// handed-out pointers.
func (i *Identity) Clone() *Identity {
	if i == nil {
		return nil
	}
	c := *i
	return &c
}

// ProviderError carries the identity service's own message while remaining
// classifiable with errors.Is against the wrapped sentinel.
type ProviderError struct {
	Err     error
	Message string
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *ProviderError) Unwrap() error { return e.Err }
