package auth

import "fmt"

// Role is the coarse access level of an account. Exactly two values
// exist; every switch over Role must handle both.
type Role string

const (
	// RoleAdmin grants unrestricted access to all worklog data.
	RoleAdmin Role = "ADMIN"
	// RoleUser grants access only to worklogs of the linked employee.
	RoleUser Role = "USER"
)

// ParseRole converts a wire value into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleUser:
		return RoleUser, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// IsAdmin reports whether the role carries administrator rights.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
