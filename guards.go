package titanic

// Guard is a pure allow/deny predicate over a resolved user. Guards never
// touch the store or the transport; the route layer translates a non-nil
// error into the matching rejection.
type Guard func(*User) error

// RequireAuthenticated allows any active resolved user regardless of role.
func RequireAuthenticated() Guard {
	return func(user *User) error {
		if user == nil {
			return ErrUserNotFound
		}
		if !user.IsActive {
			return ErrAccountInactive
		}
		return nil
	}
}

// RequireRole allows an active resolved user whose role is in allowedRoles.
// Roles are matched exhaustively against the closed enumeration; an unknown
// role on the record denies.
func RequireRole(allowedRoles ...Role) Guard {
	allowed := make(map[Role]bool, len(allowedRoles))
	for _, role := range allowedRoles {
		allowed[role] = true
	}

	return func(user *User) error {
		if err := RequireAuthenticated()(user); err != nil {
			return err
		}

		switch user.Role {
		case RoleUser, RoleAdmin:
			if allowed[user.Role] {
				return nil
			}
			return ErrForbidden
		default:
			return ErrForbidden
		}
	}
}

// RequireAdmin is shorthand for the admin-only guard.
func RequireAdmin() Guard {
	return RequireRole(RoleAdmin)
}
