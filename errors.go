package titanic

import (
	goerrors "github.com/goliatone/go-errors"
)

// Error taxonomy for the auth core and the passenger surface. Every failure
// of the Authentication Service and the guards is one of these kinds; the
// transport layer owns the status-code mapping.
var (
	// ErrDuplicateEmail register with an email already present in the store
	ErrDuplicateEmail = goerrors.New("a user with this email already exists", goerrors.CategoryConflict).
				WithTextCode("DUPLICATE_EMAIL")

	// ErrInvalidRole role outside the closed enumeration
	ErrInvalidRole = goerrors.New("role must be 'user' or 'admin'", goerrors.CategoryValidation).
			WithTextCode("INVALID_ROLE")

	// ErrInvalidCredentials covers both unknown email and wrong password so
	// callers cannot probe for account existence
	ErrInvalidCredentials = goerrors.New("invalid email or password", goerrors.CategoryAuth).
				WithTextCode("INVALID_CREDENTIALS").
				WithCode(goerrors.CodeUnauthorized)

	// ErrTokenExpired the token's expiry is in the past
	ErrTokenExpired = goerrors.New("token is expired", goerrors.CategoryAuth).
			WithTextCode("TOKEN_EXPIRED").
			WithCode(goerrors.CodeUnauthorized)

	// ErrTokenMalformed signature mismatch or unparseable token
	ErrTokenMalformed = goerrors.New("token is invalid or malformed", goerrors.CategoryAuth).
				WithTextCode("TOKEN_MALFORMED").
				WithCode(goerrors.CodeUnauthorized)

	// ErrUserNotFound token verified but the embedded id no longer resolves
	ErrUserNotFound = goerrors.New("user not found", goerrors.CategoryAuth).
			WithTextCode("USER_NOT_FOUND").
			WithCode(goerrors.CodeUnauthorized)

	// ErrAccountInactive the resolved account has is_active = false
	ErrAccountInactive = goerrors.New("account is disabled", goerrors.CategoryAuth).
				WithTextCode("ACCOUNT_INACTIVE").
				WithCode(goerrors.CodeUnauthorized)

	// ErrForbidden authenticated identity lacks the required role
	ErrForbidden = goerrors.New("insufficient permissions", goerrors.CategoryAuth).
			WithTextCode("FORBIDDEN").
			WithCode(goerrors.CodeForbidden)

	// ErrNoEmptyString rejects empty passwords before hashing
	ErrNoEmptyString = goerrors.New("value must not be empty", goerrors.CategoryValidation).
				WithTextCode("EMPTY_VALUE")

	// ErrPassengerNotFound no passenger record for the given id
	ErrPassengerNotFound = goerrors.New("passenger not found", goerrors.CategoryNotFound).
				WithTextCode("PASSENGER_NOT_FOUND")
)

// IsInvalidTokenError reports whether err belongs to the invalid-token class
// (expired, malformed, or bad signature).
func IsInvalidTokenError(err error) bool {
	switch TextCode(err) {
	case ErrTokenExpired.TextCode, ErrTokenMalformed.TextCode:
		return true
	default:
		return false
	}
}

// IsUnauthenticatedError reports whether err should translate to an
// unauthenticated rejection rather than a forbidden one.
func IsUnauthenticatedError(err error) bool {
	if err == nil {
		return false
	}
	switch TextCode(err) {
	case ErrTokenExpired.TextCode,
		ErrTokenMalformed.TextCode,
		ErrUserNotFound.TextCode,
		ErrAccountInactive.TextCode,
		ErrInvalidCredentials.TextCode:
		return true
	default:
		return false
	}
}

// TextCode extracts the taxonomy text code from err, if any.
func TextCode(err error) string {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr.TextCode
	}
	return ""
}
