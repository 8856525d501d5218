package user

import (
	"fmt"
	"strings"
)

// Role decides which workflow actions a user may take.
type Role string

const (
	RolePurchaser Role = "PURCHASER"
	RoleReviewer  Role = "REVIEWER"
	RoleManager   Role = "MANAGER"
	RoleAdmin     Role = "ADMIN"

	// roleSupervisorAlias is accepted on input and stored as REVIEWER.
	roleSupervisorAlias = "SUPERVISOR"
)

var validRoles = map[Role]bool{
	RolePurchaser: true,
	RoleReviewer:  true,
	RoleManager:   true,
	RoleAdmin:     true,
}

// ParseRole normalizes case and the SUPERVISOR alias.
func ParseRole(s string) (Role, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	if upper == roleSupervisorAlias {
		return RoleReviewer, nil
	}
	r := Role(upper)
	if !r.IsValid() {
		return "", fmt.Errorf("invalid role: %s", s)
	}
	return r, nil
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	return validRoles[r]
}

func (r Role) IsManager() bool {
	return r == RoleManager
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
