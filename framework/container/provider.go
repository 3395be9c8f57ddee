package container

import (
	"context"
	"fmt"
)

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider groups the registration of related types.
//
// Register runs as soon as the provider is added and must only declare types.
// Boot runs after every provider has registered; it is the first point at
// which resolving is allowed, and resolving seals the container.
//
//	type MailServiceProvider struct{ container.BaseProvider }
//
//	func (p *MailServiceProvider) Register(app *container.Container) error {
//	    return app.Provide(mail.NewSMTPMailer)
//	}
//
//	func (p *MailServiceProvider) Boot(ctx context.Context, app *container.Container) error {
//	    _, err := container.ResolveType[*mail.SMTPMailer](ctx, app)
//	    return err
//	}
type ServiceProvider interface {
	// Register declares types. Do NOT resolve here.
	Register(app *Container) error

	// Boot is called once all providers are registered.
	Boot(ctx context.Context, app *Container) error
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct with a no-op Boot.
//
//	type MyProvider struct{ container.BaseProvider }
//	func (p *MyProvider) Register(app *container.Container) error { ... }
type BaseProvider struct{}

func (p *BaseProvider) Boot(context.Context, *Container) error { return nil }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry runs the two-phase provider lifecycle for one container.
type ProviderRegistry struct {
	app        *Container
	providers  []ServiceProvider
	registered map[ServiceProvider]bool
	booted     bool
}

// NewProviderRegistry creates a registry bound to app.
func NewProviderRegistry(app *Container) *ProviderRegistry {
	return &ProviderRegistry{
		app:        app,
		registered: make(map[ServiceProvider]bool),
	}
}

// Register adds a provider and calls its Register method. Adding the same
// provider twice is a no-op. A provider added after Boot is booted
// immediately.
func (r *ProviderRegistry) Register(ctx context.Context, provider ServiceProvider) error {
	if r.registered[provider] {
		return nil
	}

	if err := provider.Register(r.app); err != nil {
		return fmt.Errorf("register %T: %w", provider, err)
	}
	r.registered[provider] = true
	r.providers = append(r.providers, provider)

	if r.booted {
		if err := provider.Boot(ctx, r.app); err != nil {
			return fmt.Errorf("boot %T: %w", provider, err)
		}
	}
	return nil
}

// Boot calls Boot on every registered provider in registration order. It
// stops at the first failure; later calls are no-ops once it succeeded.
func (r *ProviderRegistry) Boot(ctx context.Context) error {
	if r.booted {
		return nil
	}
	for _, provider := range r.providers {
		if err := provider.Boot(ctx, r.app); err != nil {
			return fmt.Errorf("boot %T: %w", provider, err)
		}
	}
	r.booted = true
	return nil
}

// Booted returns true once Boot has succeeded.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Providers returns the registered providers in order.
func (r *ProviderRegistry) Providers() []ServiceProvider { return r.providers }
