package types

import (
	"strings"
)

// Role is an explicit capability level. Ordering matters: higher roles
// hold every capability of the ones below.
type Role int

const (
	RoleUser Role = iota
	RoleAdmin
	RoleSuperAdmin
)

func (r Role) String() string {
	switch r {
	case RoleSuperAdmin:
		return "superadmin"
	case RoleAdmin:
		return "admin"
	default:
		return "user"
	}
}

// ParseRole is case-insensitive; unknown input falls back to RoleUser.
func ParseRole(raw string) Role {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "superadmin":
		return RoleSuperAdmin
	case "admin":
		return RoleAdmin
	default:
		return RoleUser
	}
}

func (r Role) AtLeast(min Role) bool {
	return r >= min
}
