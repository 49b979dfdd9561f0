package main

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	gconfig "github.com/goliatone/go-config/config"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	persistence "github.com/goliatone/go-persistence-bun"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	titanic "github.com/goliatone/titanic-api"
	"github.com/goliatone/titanic-api/cmd/server/config"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

type App struct {
	config *gconfig.Container[*config.BaseConfig]
	bunDB  *bun.DB
	repo   titanic.RepositoryManager
	auth   titanic.Authenticator
	auther *titanic.RouteAuthenticator
	srv    router.Server[*fiber.App]
	logger *glog.BaseLogger
}

func (a *App) Config() *config.BaseConfig {
	return a.config.Raw()
}

func (a *App) GetLogger(name string) glog.Logger {
	return a.logger.GetLogger(name)
}

func (a *App) SetDB(db *bun.DB) {
	a.bunDB = db
}

func (a *App) SetRepository(repo titanic.RepositoryManager) {
	a.repo = repo
}

func (a *App) SetHTTPServer(srv router.Server[*fiber.App]) {
	a.srv = srv
}

func main() {

	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Trace),
		glog.WithName("titanic"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(goerrors.ToSlogAttributes),
	)

	cfg := gconfig.New(&config.BaseConfig{}).
		WithLogger(lgr.GetLogger("config"))

	ctx := context.Background()
	if err := cfg.Load(ctx); err != nil {
		panic(err)
	}

	// no signing secret, no server
	if err := cfg.Raw().Validate(); err != nil {
		panic(err)
	}

	app := &App{
		config: cfg,
		logger: lgr,
	}

	if app.Config().GetApp().GetDebug() {
		fmt.Println("============")
		fmt.Println(print.MaybeHighlightJSON(cfg.Raw()))
		fmt.Println("============")
	}

	if err := WithPersistence(ctx, app); err != nil {
		panic(err)
	}

	if err := WithAuth(ctx, app); err != nil {
		panic(err)
	}

	if err := SeedUsers(ctx, app); err != nil {
		panic(err)
	}

	if err := WithHTTPServer(ctx, app); err != nil {
		panic(err)
	}

	RegisterRoutes(app)

	app.srv.Serve(app.Config().GetServer().GetAddress())

	WaitExitSignal()
}

func WithPersistence(ctx context.Context, app *App) error {
	db, err := sql.Open(sqliteshim.ShimName, app.Config().GetPersistence().GetDSN())
	if err != nil {
		log.Fatal(err)
		return err
	}

	persistence.RegisterModel((*titanic.User)(nil))
	persistence.RegisterModel((*titanic.Passenger)(nil))

	pcfg := app.Config().GetPersistence()
	dialect := sqlitedialect.New()
	client, err := persistence.New(pcfg, db, dialect)
	if err != nil {
		log.Fatal(err)
		return err
	}

	client.SetLogger(app.GetLogger("persistence"))

	migrationsFS, err := fs.Sub(titanic.GetMigrationsFS(), "data/sql/migrations")
	if err != nil {
		return err
	}

	client.RegisterDialectMigrations(
		migrationsFS,
		persistence.WithDialectSourceLabel("data/sql/migrations"),
		persistence.WithValidationTargets("postgres", "sqlite"),
	)

	if err := client.ValidateDialects(ctx); err != nil {
		return err
	}

	if err := client.Migrate(ctx); err != nil {
		return err
	}

	client.RegisterFixtures(titanic.GetFixturesFS()).
		AddOptions(persistence.WithTrucateTables())

	if err := client.Seed(ctx); err != nil {
		return err
	}

	if report := client.Report(); report != nil && !report.IsZero() {
		fmt.Printf("report: %s\n", report.String())
	}

	app.SetDB(client.DB())
	app.SetRepository(titanic.NewRepositoryManager(client.DB()))

	return nil
}

func WithAuth(ctx context.Context, app *App) error {
	acfg := app.Config().GetAuth()

	if err := app.repo.Validate(); err != nil {
		return err
	}

	auther := titanic.NewAuthenticator(app.repo.Users(), acfg).
		WithLogger(app.GetLogger("auth"))

	httpAuth, err := titanic.NewHTTPAuthenticator(auther, acfg)
	if err != nil {
		return err
	}
	httpAuth.Logger = app.GetLogger("auth:http")

	app.auth = auther
	app.auther = httpAuth

	return nil
}

// SeedUsers provisions the default accounts. Safe to run on every boot, an
// email that already exists is skipped.
func SeedUsers(ctx context.Context, app *App) error {
	lgr := app.GetLogger("seed")

	seeds := []titanic.RegisterUserMessage{
		{Email: "admin@titanic.com", Password: "admin123", Role: titanic.RoleAdmin},
		{Email: "user@titanic.com", Password: "user123", Role: titanic.RoleUser},
		{Email: "jack@titanic.com", Password: "rose123", Role: titanic.RoleUser},
	}

	registerUser := titanic.NewRegisterUserHandler(app.repo)

	for _, seed := range seeds {
		seed.IgnoreDuplicates = true
		if err := registerUser.Execute(ctx, seed); err != nil {
			return err
		}
		lgr.Info("seed account ready", "email", seed.Email, "role", seed.Role)
	}

	return nil
}

func WithHTTPServer(ctx context.Context, app *App) error {
	acfg := app.Config().GetApp()

	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			AppName:           acfg.GetName(),
			UnescapePath:      true,
			EnablePrintRoutes: acfg.GetDebug(),
			StrictRouting:     false,
		}))
	})

	srv.Router().WithLogger(app.GetLogger("router"))

	app.SetHTTPServer(srv)

	return nil
}

func RegisterRoutes(app *App) {
	r := app.srv.Router()
	acfg := app.Config().GetApp()

	r.Get("/", func(ctx router.Context) error {
		return ctx.JSON(router.StatusOK, map[string]any{
			"message": "Titanic passengers API",
			"version": "1.0.0",
			"endpoints": map[string]string{
				"auth":       "/api/v1/auth",
				"passengers": "/api/v1/passengers",
			},
		})
	})

	r.Get("/health", func(ctx router.Context) error {
		pingCtx, cancel := context.WithTimeout(ctx.Context(), app.Config().GetPersistence().GetPingTimeout())
		defer cancel()

		status := "ok"
		if err := app.bunDB.PingContext(pingCtx); err != nil {
			status = "degraded"
		}

		return ctx.JSON(router.StatusOK, map[string]string{"status": status})
	})

	api := r.Group("/api/v1")

	titanic.RegisterAuthRoutes(api.Group("/auth"), app.auther,
		titanic.WithAuther(app.auth),
		titanic.WithAuthRepository(app.repo),
		titanic.WithAuthLogger(app.GetLogger("auth:ctrl")),
		titanic.WithAuthDebug(acfg.GetDebug()),
	)

	passengerService := titanic.NewPassengerService(app.repo.Passengers()).
		WithLogger(app.GetLogger("passengers"))

	titanic.RegisterPassengerRoutes(api.Group("/passengers"), app.auther,
		titanic.WithPassengerService(passengerService),
		titanic.WithPassengerLogger(app.GetLogger("passengers:ctrl")),
		titanic.WithPassengerDebug(acfg.GetDebug()),
	)
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
