package titanic_test

import (
	"context"
	"testing"

	titanic "github.com/goliatone/titanic-api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserContextRoundTrip(t *testing.T) {
	user := &titanic.User{ID: 42, Email: "jack@titanic.com", Role: titanic.RoleUser}

	ctx := titanic.WithContext(context.Background(), user)

	got, ok := titanic.FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, user, got)
}

func TestFromContextMissing(t *testing.T) {
	_, ok := titanic.FromContext(context.Background())
	assert.False(t, ok)
}

func TestClaimsContextRoundTrip(t *testing.T) {
	claims := &titanic.JWTClaims{UID: 42, UserEmail: "jack@titanic.com", UserRole: titanic.RoleUser}

	ctx := titanic.WithClaimsContext(context.Background(), claims)

	got, ok := titanic.GetClaims(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(42), got.UserID())
	assert.Equal(t, "jack@titanic.com", got.Email())
}

func TestGetClaimsMissing(t *testing.T) {
	_, ok := titanic.GetClaims(context.Background())
	assert.False(t, ok)
}
