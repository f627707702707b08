package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/employee-api/internal/api"
	"github.com/phrazzld/employee-api/internal/config"
	"github.com/phrazzld/employee-api/internal/redact"
	"github.com/phrazzld/employee-api/internal/service"
	"github.com/phrazzld/employee-api/internal/service/auth"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	storage *storage

	jwtService      auth.JWTService
	authService     service.AuthService
	employeeService service.EmployeeService
}

// newApplication connects the store and builds the services.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	hasher, err := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize password hasher: %w", err)
	}

	app.storage, err = openStorage(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Database.Driver, err)
	}

	app.authService, err = service.NewAuthService(app.storage.users, hasher, app.jwtService, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}

	app.employeeService, err = service.NewEmployeeService(app.storage.employees, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create employee service: %w", err)
	}

	logger.Info("application initialized",
		slog.Int("bcrypt_cost", hasher.Cost()),
		slog.Float64("token_lifetime_hours", auth.TokenLifetime.Hours()))
	return app, nil
}

// router builds the HTTP handler for the application.
func (app *application) router() http.Handler {
	return api.NewRouter(api.RouterDeps{
		AuthService:     app.authService,
		EmployeeService: app.employeeService,
		JWTService:      app.jwtService,
		Store:           app.storage.pinger,
		AllowedOrigins:  app.config.CORS.AllowedOrigins,
		Logger:          app.logger,
	})
}

// Run serves HTTP until ctx is canceled, then shuts down and releases
// resources.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.router()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.storage != nil && app.storage.close != nil {
		if err := app.storage.close(); err != nil {
			app.logger.Error("error closing store", redact.ErrAttr(err))
		}
		app.storage = nil
	}
	app.logger.Info("application shutdown completed")
}
