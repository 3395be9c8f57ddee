package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/km-arc/go-autowire/framework/bindings"
	"github.com/km-arc/go-autowire/framework/config"
	"github.com/km-arc/go-autowire/framework/container"
	"github.com/km-arc/go-autowire/framework/logging"
	"github.com/km-arc/go-autowire/framework/providers"
	"github.com/km-arc/go-autowire/framework/routing"
)

// Version of the framework.
const Version = "0.1.0"

// Application is the top-level application container.
// It embeds the IoC Container and ProviderRegistry so user code can
// call app.Provide(), app.Create(), app.Register() directly,
// exactly like $app in Laravel's bootstrap/app.php.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry
	Config    *config.Config
	Logger    *zap.Logger
}

// New loads configuration from the environment (and envFiles) and
// bootstraps the application.
func New(envFiles ...string) (*Application, error) {
	return NewWithConfig(config.Load(envFiles...))
}

// NewWithConfig bootstraps the application from an explicit configuration:
// logger, binding table, container and framework providers, in that order.
func NewWithConfig(cfg *config.Config) (*Application, error) {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	table, err := bindings.Load(cfg.Container.Bindings)
	if err != nil {
		return nil, err
	}

	c := container.New(
		container.WithAliases(table),
		container.WithLogger(logger.Named("container")),
	)
	registry := container.NewProviderRegistry(c)

	app := &Application{
		Container: c,
		Providers: registry,
		Config:    cfg,
		Logger:    logger,
	}

	// Register framework core providers (same order as Laravel)
	core := []container.ServiceProvider{
		&providers.ConfigServiceProvider{Config: cfg},
		&providers.LoggingServiceProvider{Logger: logger},
		&providers.RoutingServiceProvider{},
		&providers.InspectServiceProvider{},
	}
	for _, p := range core {
		if err := app.Register(context.Background(), p); err != nil {
			return nil, err
		}
	}

	logger.Debug("application created",
		zap.String("container", c.ID()),
		zap.String("bindings", cfg.Container.Bindings),
		zap.Int("aliases", len(table)),
	)
	return app, nil
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(ctx context.Context, provider container.ServiceProvider) error {
	return a.Providers.Register(ctx, provider)
}

// Boot runs the Boot() phase on all providers.
func (a *Application) Boot(ctx context.Context) error {
	return a.Providers.Boot(ctx)
}

// Router resolves *routing.Router from the container.
func (a *Application) Router(ctx context.Context) (*routing.Router, error) {
	return container.ResolveType[*routing.Router](ctx, a.Container)
}

// Run boots the application (if needed) and serves the inspection endpoints
// on cfg.Inspect.Addr until ctx is cancelled.
func (a *Application) Run(ctx context.Context) error {
	if !a.Providers.Booted() {
		if err := a.Boot(ctx); err != nil {
			return err
		}
	}
	router, err := a.Router(ctx)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              a.Config.Inspect.Addr,
		Handler:           router.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("serving",
			zap.String("app", a.Config.App.Name),
			zap.String("addr", srv.Addr),
			zap.String("env", a.Config.App.Env),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	timeout := a.Config.Inspect.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	a.Logger.Info("shutting down", zap.String("addr", srv.Addr))
	return srv.Shutdown(shutdownCtx)
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.Config.App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.Config.App.Debug }
func (a *Application) Version() string     { return Version }
