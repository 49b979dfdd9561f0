package titanic_test

import (
	"testing"

	titanic "github.com/goliatone/titanic-api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeUser(role titanic.Role) *titanic.User {
	return &titanic.User{
		ID:       1,
		Email:    "someone@titanic.com",
		Role:     role,
		IsActive: true,
	}
}

func TestRequireAuthenticated(t *testing.T) {
	guard := titanic.RequireAuthenticated()

	t.Run("active account passes", func(t *testing.T) {
		assert.NoError(t, guard(activeUser(titanic.RoleUser)))
		assert.NoError(t, guard(activeUser(titanic.RoleAdmin)))
	})

	t.Run("nil user rejected", func(t *testing.T) {
		err := guard(nil)
		require.Error(t, err)
		assert.Equal(t, "USER_NOT_FOUND", titanic.TextCode(err))
	})

	t.Run("inactive account rejected", func(t *testing.T) {
		user := activeUser(titanic.RoleAdmin)
		user.IsActive = false

		err := guard(user)
		require.Error(t, err)
		assert.Equal(t, "ACCOUNT_INACTIVE", titanic.TextCode(err))
	})
}

func TestRequireRole(t *testing.T) {
	t.Run("admin only", func(t *testing.T) {
		guard := titanic.RequireRole(titanic.RoleAdmin)

		assert.NoError(t, guard(activeUser(titanic.RoleAdmin)))

		err := guard(activeUser(titanic.RoleUser))
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", titanic.TextCode(err))
	})

	t.Run("user or admin", func(t *testing.T) {
		guard := titanic.RequireRole(titanic.RoleUser, titanic.RoleAdmin)

		assert.NoError(t, guard(activeUser(titanic.RoleUser)))
		assert.NoError(t, guard(activeUser(titanic.RoleAdmin)))
	})

	t.Run("unknown role never passes", func(t *testing.T) {
		guard := titanic.RequireRole(titanic.RoleUser, titanic.RoleAdmin)

		err := guard(activeUser(titanic.Role("captain")))
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", titanic.TextCode(err))
	})

	t.Run("inactive account rejected before role check", func(t *testing.T) {
		guard := titanic.RequireRole(titanic.RoleAdmin)

		user := activeUser(titanic.RoleAdmin)
		user.IsActive = false

		err := guard(user)
		require.Error(t, err)
		assert.Equal(t, "ACCOUNT_INACTIVE", titanic.TextCode(err))
	})
}

func TestRequireAdmin(t *testing.T) {
	guard := titanic.RequireAdmin()

	assert.NoError(t, guard(activeUser(titanic.RoleAdmin)))

	err := guard(activeUser(titanic.RoleUser))
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", titanic.TextCode(err))
}
