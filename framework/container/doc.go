// Package container provides an auto-wiring IoC container in the style of
// Laravel's Illuminate\Container\Container.
//
// # Overview
//
// Ask the container for a type and it works out the constructor's object
// dependencies, creates the missing ones (recursively), reuses existing ones
// and returns a fully wired singleton. Every concrete type is instantiated at
// most once per container.
//
// Go has no runtime constructor reflection over arbitrary types, so types are
// declared up front in a catalog: either as explicit Definitions or by
// handing the container a constructor function whose signature it reflects.
//
// # Container Lifecycle
//
//  1. Create: c := container.New(container.WithAliases(table))
//  2. Declare types: c.Provide(NewMailer), c.Define(...).Using(...)
//  3. Resolve: c.Create(ctx, id); the first resolution seals the catalog
//  4. Look up: c.Get(id), which never constructs
//
// # Type identifiers
//
// Identifiers are normalized (see Normalize): `App\Mail\Mailer`,
// "app/mail/Mailer" and ".app.mail.mailer" are the same type. TypeKey and
// KeyOf derive identifiers from Go types.
//
// # Declaring types
//
//	// Reflected constructor: *Transport and Logger are dependencies, from is a scalar
//	func NewMailer(t *Transport, l Logger, from string) *Mailer
//	c.Provide(NewMailer)
//
//	// Explicit definition
//	c.Define("app.mail.mailer").
//	    Needs("app.mail.transport", "app.logger").
//	    Takes("from").
//	    Using(func(ctx context.Context, args []any) (any, error) { ... })
//
//	// Abstract type, satisfied through an alias
//	c.Abstract("app.contracts.logger")
//
//	// Pre-built value
//	// Laravel: $app->instance(Config::class, $config)
//	c.Instance(container.TypeKey(cfg), cfg)
//
// # Aliases
//
// The alias table maps abstract identifiers to concrete ones and is fixed
// when the container is created. It applies to the requested type and to
// every dependency found while resolving.
//
//	table, _ := container.NewAliasTable(map[string]string{
//	    "app.contracts.logger": "app.log.filelogger",
//	})
//	c := container.New(container.WithAliases(table))
//
// # Resolving
//
//	// Laravel: $app->make(Mailer::class)
//	raw, err := c.Create(ctx, "app.mail.mailer", "ops@example.com")
//
//	// Generic
//	mailer, err := container.ResolveType[*Mailer](ctx, c, "ops@example.com")
//
//	// Already created?
//	raw, err = c.Get("app.mail.mailer")
//
// # Errors
//
// Every operation returns *Error. Use errors.Is with the sentinels
// (ErrTypeNotFound, ErrNotConstructible, ErrDependencyCycle,
// ErrNotYetCreated, ...) or the IsXxx helpers. A dependency cycle is
// detected before anything is constructed; MustCreate and MustResolve turn
// any failure into a panic.
//
// # Service Providers
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(app *container.Container) error {
//	    return app.Provide(NewMailer)
//	}
//
//	registry := container.NewProviderRegistry(c)
//	registry.Register(ctx, &AppServiceProvider{})
//	registry.Boot(ctx)
package container
