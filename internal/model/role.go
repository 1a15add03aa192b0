package model

import "fmt"

// Role is the closed set of identities the authorization gate understands.
type Role string

const (
	RoleGuest Role = "guest"
	RoleStaff Role = "staff"
	RoleAdmin Role = "admin"
)

// Roles lists every valid role.
var Roles = []Role{RoleGuest, RoleStaff, RoleAdmin}

// ParseRole converts a raw string into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RoleStaff, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsStaff reports whether r may operate on other people's bookings.
func (r Role) IsStaff() bool {
	switch r {
	case RoleStaff, RoleAdmin:
		return true
	case RoleGuest:
		return false
	default:
		return false
	}
}

// In reports whether r is contained in allowed.
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}
