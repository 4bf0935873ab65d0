// Package entity contains the core business objects of the project.
package entity

import "strings"

// Role is the single marketplace role an account holds.
type Role string

const (
	// RoleStudent is a student looking for internships.
	RoleStudent Role = "student"
	// RoleCompany is an employer posting internships.
	RoleCompany Role = "company"
)

// DefaultRole is assigned when neither a stored account nor session metadata names a role.
const DefaultRole = RoleStudent

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleCompany:
		return true
	default:
		return false
	}
}

// DashboardPath returns the landing page for the role, or the root path for an unknown role.
func (r Role) DashboardPath() string {
	switch r {
	case RoleStudent:
		return PathStudentDashboard
	case RoleCompany:
		return PathCompanyDashboard
	default:
		return PathRoot
	}
}

// ParseRole normalizes a loosely typed role hint. It reports false for anything
// that is not one of the two known roles.
func ParseRole(v any) (Role, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}

	role := Role(strings.ToLower(strings.TrimSpace(s)))
	if !role.IsValid() {
		return "", false
	}

	return role, true
}
