package titanic_test

import (
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	titanic "github.com/goliatone/titanic-api"
	"github.com/stretchr/testify/assert"
)

func TestIsInvalidTokenError(t *testing.T) {
	assert.True(t, titanic.IsInvalidTokenError(titanic.ErrTokenExpired))
	assert.True(t, titanic.IsInvalidTokenError(titanic.ErrTokenMalformed))

	// wrapped variants keep their text code
	wrapped := goerrors.Wrap(errors.New("bad signature"), titanic.ErrTokenMalformed.Category, titanic.ErrTokenMalformed.Message).
		WithTextCode(titanic.ErrTokenMalformed.TextCode)
	assert.True(t, titanic.IsInvalidTokenError(wrapped))

	assert.False(t, titanic.IsInvalidTokenError(titanic.ErrForbidden))
	assert.False(t, titanic.IsInvalidTokenError(errors.New("random")))
	assert.False(t, titanic.IsInvalidTokenError(nil))
}

func TestIsUnauthenticatedError(t *testing.T) {
	for _, err := range []error{
		titanic.ErrTokenExpired,
		titanic.ErrTokenMalformed,
		titanic.ErrUserNotFound,
		titanic.ErrAccountInactive,
		titanic.ErrInvalidCredentials,
	} {
		assert.True(t, titanic.IsUnauthenticatedError(err), "expected %v to be unauthenticated", err)
	}

	assert.False(t, titanic.IsUnauthenticatedError(titanic.ErrForbidden))
	assert.False(t, titanic.IsUnauthenticatedError(titanic.ErrDuplicateEmail))
	assert.False(t, titanic.IsUnauthenticatedError(nil))
}

func TestTextCode(t *testing.T) {
	assert.Equal(t, "DUPLICATE_EMAIL", titanic.TextCode(titanic.ErrDuplicateEmail))
	assert.Equal(t, "", titanic.TextCode(errors.New("plain")))
	assert.Equal(t, "", titanic.TextCode(nil))
}
