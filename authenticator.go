package titanic

import (
	"context"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// DefaultTokenTTL is the reference session length when the configuration
// does not provide one.
const DefaultTokenTTL = 30 * time.Minute

// Auther orchestrates registration, login and current-user resolution over
// the credential store, the password hasher, and the token service.
type Auther struct {
	store        CredentialStore
	tokenService TokenService
	tokenTTL     time.Duration
	logger       Logger
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(store CredentialStore, cfg Config) *Auther {
	ttl := cfg.GetTokenTTL()
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	tokenService := NewTokenService(
		[]byte(cfg.GetSigningKey()),
		cfg.GetIssuer(),
		cfg.GetAudience(),
		defLogger{},
	)

	return &Auther{
		store:        store,
		tokenService: tokenService,
		tokenTTL:     ttl,
		logger:       defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithTokenService sets a custom token service, mostly used to inject a
// fixed clock in tests.
func (s *Auther) WithTokenService(ts TokenService) *Auther {
	if ts != nil {
		s.tokenService = ts
	}
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Register creates a new account with a hashed password and is_active true.
// The email is the case-insensitive identity key; a second registration with
// the same email fails with ErrDuplicateEmail and writes nothing.
func (s *Auther) Register(ctx context.Context, email, password string, role Role) (*User, error) {
	email = NormalizeEmail(email)

	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	existing, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Error("Register store lookup error", "error", err)
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check for existing user")
	}

	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid password provided")
	}

	user := &User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}

	created, err := s.store.Insert(ctx, user)
	if err != nil {
		s.logger.Error("Register insert error", "error", err, "email", email)
		if goerrors.Is(err, ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "could not create user")
	}

	s.logger.Info("registered user", "email", created.Email, "role", created.Role)

	return created, nil
}

// Login verifies email+password and issues a session token. Unknown email
// and wrong password fail with the same ErrInvalidCredentials so account
// existence cannot be probed.
func (s *Auther) Login(ctx context.Context, email, password string) (string, *User, error) {
	email = NormalizeEmail(email)

	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Error("Login store lookup error", "error", err)
		return "", nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve user during login")
	}

	if user == nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		s.logger.Warn("Login blocked for inactive account", "email", email)
		return "", nil, ErrAccountInactive
	}

	token, err := s.tokenService.Generate(user, s.tokenTTL)
	if err != nil {
		s.logger.Error("Login token generation error", "error", err)
		return "", nil, err
	}

	return token, user, nil
}

// CurrentUser resolves the identity embedded in a raw bearer token. The
// token is verified statelessly; the store is consulted only to confirm the
// account still exists and is active.
func (s *Auther) CurrentUser(ctx context.Context, rawToken string) (*User, error) {
	claims, err := s.tokenService.Validate(rawToken)
	if err != nil {
		return nil, err
	}

	user, err := s.store.FindByID(ctx, claims.UserID())
	if err != nil {
		s.logger.Error("CurrentUser store lookup error", "error", err)
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to resolve current user")
	}

	if user == nil {
		return nil, ErrUserNotFound
	}

	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	return user, nil
}

// NormalizeEmail lower-cases and trims an email identity key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var _ Authenticator = (*Auther)(nil)
