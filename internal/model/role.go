package model

import (
	"fmt"
	"strings"
)

// Role is the access level carried in a user's token claims.
type Role string

const (
	RoleAdmin         Role = "admin"
	RoleBusinessOwner Role = "businessOwner"
	RoleUser          Role = "user"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleBusinessOwner, RoleUser:
		return true
	}
	return false
}

// ParseRoles parses a comma-separated role list, e.g. "user,admin".
func ParseRoles(s string) ([]Role, error) {
	parts := strings.Split(s, ",")
	roles := make([]Role, 0, len(parts))
	for _, p := range parts {
		r := Role(strings.TrimSpace(p))
		if !r.Valid() {
			return nil, fmt.Errorf("unknown role %q", p)
		}
		roles = append(roles, r)
	}
	return roles, nil
}
