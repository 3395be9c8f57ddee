package providers

import (
	"context"

	"go.uber.org/zap"

	"github.com/km-arc/go-autowire/framework/config"
	"github.com/km-arc/go-autowire/framework/container"
	"github.com/km-arc/go-autowire/framework/inspect"
	"github.com/km-arc/go-autowire/framework/routing"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider binds the loaded configuration into the container.
//
// Registered types:
//   - container.KeyOf[*config.Config]()  → the Config given to the provider
//
// Laravel equivalent:
//
//	// Illuminate\Foundation\Bootstrap\LoadConfiguration
//	$app->instance('config', $config = new Repository($items));
type ConfigServiceProvider struct {
	container.BaseProvider
	Config *config.Config
}

func (p *ConfigServiceProvider) Register(app *container.Container) error {
	return app.Instance(container.KeyOf[*config.Config](), p.Config)
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider binds the application logger.
//
// Registered types:
//   - container.KeyOf[*zap.Logger]()  → the Logger given to the provider
//
// Laravel equivalent:
//
//	// Illuminate\Log\LogServiceProvider
//	$app->singleton('log', fn($app) => new LogManager($app));
type LoggingServiceProvider struct {
	container.BaseProvider
	Logger *zap.Logger
}

func (p *LoggingServiceProvider) Register(app *container.Container) error {
	return app.Instance(container.KeyOf[*zap.Logger](), p.Logger)
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router. Its constructor depends
// on *zap.Logger, so LoggingServiceProvider must be registered too.
//
// Registered types:
//   - container.KeyOf[*routing.Router]()
//
// Laravel equivalent:
//
//	// Illuminate\Routing\RoutingServiceProvider
//	$app->singleton('router', fn($app) => new Router($app['events'], $app));
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *container.Container) error {
	return app.Provide(routing.New)
}

// ── InspectServiceProvider ────────────────────────────────────────────────────

// InspectServiceProvider registers the container inspector and mounts its
// routes on the router while booting.
//
// Registered types:
//   - container.KeyOf[*inspect.Handler]()
type InspectServiceProvider struct {
	container.BaseProvider
}

func (p *InspectServiceProvider) Register(app *container.Container) error {
	return app.Provide(inspect.New)
}

func (p *InspectServiceProvider) Boot(ctx context.Context, app *container.Container) error {
	router, err := container.ResolveType[*routing.Router](ctx, app)
	if err != nil {
		return err
	}
	handler, err := container.ResolveType[*inspect.Handler](ctx, app)
	if err != nil {
		return err
	}
	handler.Routes(router)
	return nil
}
