package domain

import (
	"fmt"
	"strings"
)

// Role enumerates account roles, using the server-side prefixed form.
type Role string

const (
	RoleAdmin     Role = "ROLE_ADMIN"
	RoleDriver    Role = "ROLE_DRIVER"
	RolePassenger Role = "ROLE_PASSENGER"
)

// ParseRole normalizes a role string, accepting both the prefixed
// server form ("ROLE_DRIVER") and the bare form ("DRIVER").
func ParseRole(s string) (Role, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	if !strings.HasPrefix(normalized, "ROLE_") {
		normalized = "ROLE_" + normalized
	}
	switch role := Role(normalized); role {
	case RoleAdmin, RoleDriver, RolePassenger:
		return role, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Short returns the role without the server prefix.
func (r Role) Short() string {
	return strings.TrimPrefix(string(r), "ROLE_")
}

// Identity is the authenticated account held client-side, as returned
// by the auth endpoints.
type Identity struct {
	Token string `json:"token"`
	Type  string `json:"type,omitempty"`
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
	Name  string `json:"name"`
}

// HasRole reports whether the identity carries the given role.
func (i *Identity) HasRole(role Role) bool {
	return i != nil && i.Role == role
}
