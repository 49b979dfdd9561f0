package titanic

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
	"github.com/goliatone/titanic-api/middleware/jwtware"
)

const (
	// DefaultUserContextKey is the Locals key the resolved account is stored
	// under once a protected route has admitted the request
	DefaultUserContextKey = "current_user"
	// DefaultRawTokenKey is the Locals key holding the bearer token as sent
	DefaultRawTokenKey = "raw_token"
)

// RouteAuthenticator wires token verification, account resolution and role
// guards into router middleware.
type RouteAuthenticator struct {
	auth             Authenticator
	tokenService     TokenService
	cfg              Config
	Logger           Logger
	AuthErrorHandler func(c router.Context, err error) error
	ErrorHandler     func(c router.Context, err error) error
}

// TokenServicer is implemented by authenticators that expose their token
// service, which protected routes need for verification.
type TokenServicer interface {
	TokenService() TokenService
}

func NewHTTPAuthenticator(auther Authenticator, cfg Config) (*RouteAuthenticator, error) {
	provider, ok := auther.(TokenServicer)
	if !ok {
		return nil, goerrors.New(
			"authenticator does not expose a token service",
			goerrors.CategoryOperation,
		)
	}

	a := &RouteAuthenticator{
		cfg:          cfg,
		auth:         auther,
		tokenService: provider.TokenService(),
		Logger:       defLogger{},
	}

	a.ErrorHandler = a.defaultErrHandler
	a.AuthErrorHandler = a.MakeAuthErrorHandler(false)

	return a, nil
}

// Protected returns middleware that verifies the bearer token, loads the
// account behind it, and applies guard before the handler runs. A nil guard
// only requires a valid token for an active account.
func (a *RouteAuthenticator) Protected(guard Guard) router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		validate := jwtware.New(jwtware.Config{
			ErrorHandler:   a.AuthErrorHandler,
			SuccessHandler: a.resolveUser(guard, hf),
			TokenValidator: tokenValidatorAdapter{ts: a.tokenService},
			AuthScheme:     a.cfg.GetAuthScheme(),
			ContextKey:     a.cfg.GetContextKey(),
			RawTokenKey:    DefaultRawTokenKey,
			TokenLookup:    a.cfg.GetTokenLookup(),
			ContextEnricher: func(c context.Context, claims jwtware.AuthClaims) context.Context {
				if ac, ok := claims.(AuthClaims); ok {
					return WithClaimsContext(c, ac)
				}
				return c
			},
		})
		return validate(hf)
	}
}

// resolveUser runs after token validation: it loads the account, rejects
// inactive or vanished users, and applies the guard.
func (a *RouteAuthenticator) resolveUser(guard Guard, next router.HandlerFunc) router.HandlerFunc {
	return func(ctx router.Context) error {
		raw, ok := ctx.Locals(DefaultRawTokenKey).(string)
		if !ok || raw == "" {
			return a.AuthErrorHandler(ctx, ErrInvalidCredentials)
		}

		user, err := a.auth.CurrentUser(ctx.Context(), raw)
		if err != nil {
			a.Logger.Info("Protected route rejected", "error", err, "path", ctx.OriginalURL())
			return a.ErrorHandler(ctx, err)
		}

		if guard != nil {
			if err := guard(user); err != nil {
				a.Logger.Info(
					"Guard rejected user",
					"error", err,
					"user_id", user.ID,
					"role", user.Role,
				)
				return a.ErrorHandler(ctx, err)
			}
		}

		ctx.Locals(DefaultUserContextKey, user)
		ctx.SetContext(WithContext(ctx.Context(), user))

		return next(ctx)
	}
}

// MakeAuthErrorHandler normalizes token failures into a 401 JSON envelope.
// With optional set, failed authentication lets the request proceed
// anonymously instead.
func (a *RouteAuthenticator) MakeAuthErrorHandler(optional bool) func(router.Context, error) error {
	return func(ctx router.Context, err error) error {
		var richErr *goerrors.Error

		if IsInvalidTokenError(err) {
			goerrors.As(err, &richErr)
		} else {
			richErr = goerrors.Wrap(err, goerrors.CategoryAuth, "Invalid authentication token").
				WithCode(goerrors.CodeUnauthorized)
		}

		if optional {
			a.Logger.Info("Optional auth failed, proceeding", "error", richErr.Message)
			return ctx.Next()
		}

		return a.ErrorHandler(ctx, richErr)
	}
}

func (a *RouteAuthenticator) defaultErrHandler(c router.Context, err error) error {
	return RenderError(c, err)
}

// RenderError maps an error to the failure envelope with the right HTTP
// status. Unknown errors become an opaque 500.
func RenderError(ctx router.Context, err error) error {
	status := router.StatusInternalServerError
	message := "Internal server error"

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		message = richErr.Message

		switch {
		case richErr.TextCode == "FORBIDDEN":
			status = router.StatusForbidden
		case IsUnauthenticatedError(err), richErr.Category == goerrors.CategoryAuth:
			status = router.StatusUnauthorized
		case richErr.Category == goerrors.CategoryNotFound:
			status = router.StatusNotFound
		case richErr.Category == goerrors.CategoryValidation,
			richErr.Category == goerrors.CategoryConflict:
			status = router.StatusBadRequest
		}
	}

	if status == router.StatusInternalServerError {
		// do not leak internals to the client
		message = "Internal server error"
	}

	return ctx.JSON(status, ErrorResponse(message))
}

// tokenValidatorAdapter lets the middleware consume TokenService without an
// import cycle.
type tokenValidatorAdapter struct {
	ts TokenService
}

func (v tokenValidatorAdapter) Validate(raw string) (jwtware.AuthClaims, error) {
	claims, err := v.ts.Validate(raw)
	if err != nil {
		return nil, err
	}
	return claims, nil
}
