package titanic

// Role is a closed enumeration of account roles. Adding a role means
// updating ParseRole, IsValid and every exhaustive switch that consumes it.
type Role string

const (
	// RoleUser is the default role (read + create passengers)
	RoleUser Role = "user"
	// RoleAdmin can additionally update and delete passengers and list accounts
	RoleAdmin Role = "admin"
)

// IsValid checks if the role is one of the predefined valid roles
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanManage reports whether this role can mutate records it does not own,
// i.e. update or delete passengers and inspect the account list.
func (r Role) CanManage() bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleUser:
		return false
	default:
		return false
	}
}

// IsAtLeast checks if this role meets the minimum required level
func (r Role) IsAtLeast(minRole Role) bool {
	roleHierarchy := map[Role]int{
		RoleUser:  0,
		RoleAdmin: 1,
	}

	currentLevel, exists := roleHierarchy[r]
	if !exists {
		return false
	}

	minLevel, exists := roleHierarchy[minRole]
	if !exists {
		return false
	}

	return currentLevel >= minLevel
}

// GetAllRoles returns all predefined roles in hierarchical order
func GetAllRoles() []Role {
	return []Role{
		RoleUser,
		RoleAdmin,
	}
}

// ParseRole safely parses a string into a Role. An empty string resolves
// to the default RoleUser.
func ParseRole(roleStr string) (Role, bool) {
	if roleStr == "" {
		return RoleUser, true
	}
	role := Role(roleStr)
	return role, role.IsValid()
}
