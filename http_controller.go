package titanic

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

type AuthControllerRoutes struct {
	Register string
	Login    string
	Me       string
	Users    string
}

// AuthController serves the JSON authentication endpoints.
type AuthController struct {
	Debug        bool
	Logger       Logger
	Auther       Authenticator
	Repo         RepositoryManager
	Routes       *AuthControllerRoutes
	ErrorHandler router.ErrorHandler
}

type AuthControllerOption func(*AuthController) *AuthController

func WithAuthLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

func WithAuthDebug(debug bool) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Debug = debug
		return c
	}
}

func WithAuther(auther Authenticator) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Auther = auther
		return c
	}
}

func WithAuthRepository(repo RepositoryManager) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Repo = repo
		return c
	}
}

func WithAuthRoutes(routes *AuthControllerRoutes) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if routes != nil {
			c.Routes = routes
		}
		return c
	}
}

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger:       defLogger{},
		ErrorHandler: RenderError,
		Routes: &AuthControllerRoutes{
			Register: "/register",
			Login:    "/login",
			Me:       "/me",
			Users:    "/users",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Auther == nil {
		panic("Missing Authenticator in auth controller...")
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in auth controller...")
	}

	return c
}

// RegisterAuthRoutes mounts the authentication endpoints. Register and login
// are public; me requires a valid token and users requires the admin role.
func RegisterAuthRoutes[T any](app router.Router[T], protect *RouteAuthenticator, opts ...AuthControllerOption) {
	controller := NewAuthController(opts...)

	app.Post(controller.Routes.Register, controller.Register).
		SetName("auth.register")

	app.Post(controller.Routes.Login, controller.Login).
		SetName("auth.login")

	app.Get(controller.Routes.Me, controller.Me,
		protect.Protected(RequireAuthenticated()),
	).SetName("auth.me")

	app.Get(controller.Routes.Users, controller.UsersIndex,
		protect.Protected(RequireAdmin()),
	).SetName("auth.users")
}

// RegisterRequest payload
type RegisterRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
	Role     string `form:"role" json:"role"`
}

// Validate will run validation rules
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 100)),
		validation.Field(&r.Role, validation.In(string(RoleUser), string(RoleAdmin))),
	)
}

// LoginRequest payload
type LoginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// TokenResponse is the login result.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"user,omitempty"`
}

func (a *AuthController) Register(ctx router.Context) error {
	payload := new(RegisterRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("register parse payload", "error", err)
		return ctx.JSON(router.StatusBadRequest, ErrorResponse("Failed to parse request body"))
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("register validate payload", "error", err)
		return ctx.JSON(router.StatusBadRequest, ErrorResponse(err.Error()))
	}

	if a.Debug {
		fmt.Println("======= AUTH REGISTER ===")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("=========================")
	}

	role, ok := ParseRole(payload.Role)
	if !ok {
		return a.ErrorHandler(ctx, ErrInvalidRole)
	}

	user, err := a.Auther.Register(ctx.Context(), payload.Email, payload.Password, role)
	if err != nil {
		a.Logger.Error("register user", "error", err, "email", payload.Email)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusCreated, user)
}

func (a *AuthController) Login(ctx router.Context) error {
	payload := new(LoginRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("login parse payload", "error", err)
		return ctx.JSON(router.StatusBadRequest, ErrorResponse("Failed to parse request body"))
	}

	if err := payload.Validate(); err != nil {
		return ctx.JSON(router.StatusBadRequest, ErrorResponse(err.Error()))
	}

	if a.Debug {
		fmt.Println("======= AUTH LOGIN ======")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("=========================")
	}

	token, user, err := a.Auther.Login(ctx.Context(), payload.Email, payload.Password)
	if err != nil {
		a.Logger.Info("login rejected", "email", payload.Email, "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	})
}

// Me returns the account behind the presented token.
func (a *AuthController) Me(ctx router.Context) error {
	user, ok := GetRouterUser(ctx, DefaultUserContextKey)
	if !ok {
		return a.ErrorHandler(ctx, ErrUserNotFound)
	}

	return ctx.JSON(router.StatusOK, user)
}

// UsersIndex lists every account. Admin only.
func (a *AuthController) UsersIndex(ctx router.Context) error {
	records, err := a.Repo.Users().List(ctx.Context())
	if err != nil {
		a.Logger.Error("users list", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, SuccessResponseCount(
		AsList(records),
		fmt.Sprintf("%d users retrieved", len(records)),
		len(records),
		nil,
	))
}
