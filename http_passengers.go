package titanic

import (
	"fmt"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// PassengerController serves the passenger endpoints. Reads are public,
// creation needs a valid token, updates and deletes need the admin role.
type PassengerController struct {
	Debug        bool
	Logger       Logger
	Service      *PassengerService
	ErrorHandler router.ErrorHandler
}

type PassengerControllerOption func(*PassengerController) *PassengerController

func WithPassengerLogger(logger Logger) PassengerControllerOption {
	return func(c *PassengerController) *PassengerController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

func WithPassengerDebug(debug bool) PassengerControllerOption {
	return func(c *PassengerController) *PassengerController {
		c.Debug = debug
		return c
	}
}

func WithPassengerService(service *PassengerService) PassengerControllerOption {
	return func(c *PassengerController) *PassengerController {
		c.Service = service
		return c
	}
}

func NewPassengerController(opts ...PassengerControllerOption) *PassengerController {
	c := &PassengerController{
		Logger:       defLogger{},
		ErrorHandler: RenderError,
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Service == nil {
		panic("Missing PassengerService in passenger controller...")
	}

	return c
}

// RegisterPassengerRoutes mounts the passenger endpoints on app. The static
// paths go first so they are not swallowed by the :id matcher.
func RegisterPassengerRoutes[T any](app router.Router[T], protect *RouteAuthenticator, opts ...PassengerControllerOption) {
	controller := NewPassengerController(opts...)

	app.Get("/", controller.Index).
		SetName("passengers.index")

	app.Get("/search/advanced", controller.SearchAdvanced).
		SetName("passengers.search")

	app.Get("/statistics", controller.Statistics).
		SetName("passengers.statistics")

	app.Get("/:id", controller.Show).
		SetName("passengers.show")

	app.Post("/", controller.Create,
		protect.Protected(RequireAuthenticated()),
	).SetName("passengers.create")

	app.Put("/:id", controller.Update,
		protect.Protected(RequireAdmin()),
	).SetName("passengers.update")

	app.Delete("/:id", controller.Delete,
		protect.Protected(RequireAdmin()),
	).SetName("passengers.delete")
}

// PassengerCreateRequest payload
type PassengerCreateRequest struct {
	Name     string   `form:"name" json:"name"`
	Sex      string   `form:"sex" json:"sex"`
	Age      *float64 `form:"age" json:"age"`
	Survived bool     `form:"survived" json:"survived"`
	Pclass   int      `form:"pclass" json:"pclass"`
	Fare     *float64 `form:"fare" json:"fare"`
	Embarked *string  `form:"embarked" json:"embarked"`
}

// Validate will run validation rules
func (r PassengerCreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&r.Sex, validation.Required, validation.By(validateSex)),
		validation.Field(&r.Age, validation.Min(0.0), validation.Max(120.0)),
		validation.Field(&r.Pclass, validation.Required, validation.In(1, 2, 3)),
		validation.Field(&r.Fare, validation.Min(0.0)),
		validation.Field(&r.Embarked, validation.By(validatePort)),
	)
}

// PassengerUpdateRequest payload; nil fields are left untouched.
type PassengerUpdateRequest struct {
	Name     *string  `form:"name" json:"name"`
	Sex      *string  `form:"sex" json:"sex"`
	Age      *float64 `form:"age" json:"age"`
	Survived *bool    `form:"survived" json:"survived"`
	Pclass   *int     `form:"pclass" json:"pclass"`
	Fare     *float64 `form:"fare" json:"fare"`
	Embarked *string  `form:"embarked" json:"embarked"`
}

// Validate will run validation rules
func (r PassengerUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(2, 100)),
		validation.Field(&r.Sex, validation.By(validateSex)),
		validation.Field(&r.Age, validation.Min(0.0), validation.Max(120.0)),
		validation.Field(&r.Pclass, validation.In(1, 2, 3)),
		validation.Field(&r.Fare, validation.Min(0.0)),
		validation.Field(&r.Embarked, validation.By(validatePort)),
	)
}

func validateSex(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	switch strings.ToLower(s) {
	case "male", "female":
		return nil
	default:
		return fmt.Errorf("must be 'male' or 'female'")
	}
}

func validatePort(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	switch strings.ToUpper(s) {
	case "C", "S", "Q":
		return nil
	default:
		return fmt.Errorf("must be one of C, S or Q")
	}
}

func (a *PassengerController) Index(ctx router.Context) error {
	skip := queryInt(ctx, "skip", 0)
	limit := queryInt(ctx, "limit", 100)

	res, err := a.Service.GetAll(ctx.Context(), skip, limit)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, res)
}

func (a *PassengerController) Show(ctx router.Context) error {
	id, err := passengerID(ctx)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	res, err := a.Service.GetByID(ctx.Context(), id)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, res)
}

func (a *PassengerController) SearchAdvanced(ctx router.Context) error {
	filters := PassengerFilters{
		Sex:      ctx.Query("sex", ""),
		Embarked: ctx.Query("embarked", ""),
		Pclass:   queryInt(ctx, "pclass", 0),
	}

	if raw := ctx.Query("min_age", ""); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return a.ErrorHandler(ctx, badQueryParam("min_age"))
		}
		filters.MinAge = &v
	}

	if raw := ctx.Query("max_age", ""); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return a.ErrorHandler(ctx, badQueryParam("max_age"))
		}
		filters.MaxAge = &v
	}

	if raw := ctx.Query("survived", ""); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return a.ErrorHandler(ctx, badQueryParam("survived"))
		}
		filters.Survived = &v
	}

	res, err := a.Service.SearchAdvanced(ctx.Context(), filters)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, res)
}

func (a *PassengerController) Statistics(ctx router.Context) error {
	groupBy := ctx.Query("group_by", "")

	res, err := a.Service.GetStatistics(ctx.Context(), groupBy)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, res)
}

func (a *PassengerController) Create(ctx router.Context) error {
	payload := new(PassengerCreateRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("passenger create parse payload", "error", err)
		return ctx.JSON(router.StatusBadRequest, ErrorResponse("Failed to parse request body"))
	}

	if err := payload.Validate(); err != nil {
		return ctx.JSON(router.StatusBadRequest, ErrorResponse(err.Error()))
	}

	if a.Debug {
		fmt.Println("==== PASSENGER CREATE ===")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("=========================")
	}

	res, err := a.Service.Create(ctx.Context(), PassengerInput{
		Name:     payload.Name,
		Sex:      payload.Sex,
		Age:      payload.Age,
		Survived: payload.Survived,
		Pclass:   payload.Pclass,
		Fare:     payload.Fare,
		Embarked: payload.Embarked,
	})
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusCreated, res)
}

func (a *PassengerController) Update(ctx router.Context) error {
	id, err := passengerID(ctx)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	payload := new(PassengerUpdateRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("passenger update parse payload", "error", err, "id", id)
		return ctx.JSON(router.StatusBadRequest, ErrorResponse("Failed to parse request body"))
	}

	if err := payload.Validate(); err != nil {
		return ctx.JSON(router.StatusBadRequest, ErrorResponse(err.Error()))
	}

	res, err := a.Service.Update(ctx.Context(), id, PassengerPatch{
		Name:     payload.Name,
		Sex:      payload.Sex,
		Age:      payload.Age,
		Survived: payload.Survived,
		Pclass:   payload.Pclass,
		Fare:     payload.Fare,
		Embarked: payload.Embarked,
	})
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, res)
}

func (a *PassengerController) Delete(ctx router.Context) error {
	id, err := passengerID(ctx)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	res, err := a.Service.Delete(ctx.Context(), id)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, res)
}

func passengerID(ctx router.Context) (int64, error) {
	raw := ctx.Param("id")

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, goerrors.New("passenger id must be a positive integer", goerrors.CategoryValidation).
			WithTextCode("INVALID_ID")
	}

	return id, nil
}

func queryInt(ctx router.Context, name string, def int) int {
	raw := ctx.Query(name, "")
	if raw == "" {
		return def
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}

	return v
}

func badQueryParam(name string) error {
	return goerrors.New(
		fmt.Sprintf("invalid value for query parameter %q", name),
		goerrors.CategoryValidation,
	).WithTextCode("INVALID_QUERY_PARAM")
}
