package container_test

import (
	"context"
	"errors"
	"testing"

	"github.com/km-arc/go-autowire/framework/container"
)

// ── stub providers ────────────────────────────────────────────────────────────

type mailer struct{ from string }

type mailProvider struct {
	container.BaseProvider
	registerCalled bool
	bootCalled     int
}

func (p *mailProvider) Register(app *container.Container) error {
	p.registerCalled = true
	return app.Define("app.mailer").Takes("from").Using(func(_ context.Context, args []any) (any, error) {
		from, _ := args[0].(string)
		return &mailer{from: from}, nil
	})
}

func (p *mailProvider) Boot(ctx context.Context, app *container.Container) error {
	p.bootCalled++
	return nil
}

// multiProvider registers multiple types.
type multiProvider struct {
	container.BaseProvider
}

func (p *multiProvider) Register(app *container.Container) error {
	if err := app.Define("alpha").Value("α"); err != nil {
		return err
	}
	return app.Define("beta").Needs("alpha").Using(func(_ context.Context, args []any) (any, error) {
		return args[0].(string) + "β", nil
	})
}

// resolvingProvider creates its service while booting.
type resolvingProvider struct {
	container.BaseProvider
	got any
}

func (p *resolvingProvider) Register(app *container.Container) error {
	return app.Define("clock").Value("tick")
}

func (p *resolvingProvider) Boot(ctx context.Context, app *container.Container) error {
	got, err := app.Create(ctx, "clock")
	p.got = got
	return err
}

type failingProvider struct {
	container.BaseProvider
	registerErr error
	bootErr     error
}

func (p *failingProvider) Register(*container.Container) error { return p.registerErr }

func (p *failingProvider) Boot(context.Context, *container.Container) error { return p.bootErr }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

func TestRegistry_RegisterCalledImmediately(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &mailProvider{}
	if err := reg.Register(context.Background(), p); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if !p.registerCalled {
		t.Error("Register() should be called immediately")
	}
	if !c.Has("app.mailer") {
		t.Error("app.mailer should be declared after Register()")
	}
}

func TestRegistry_BootCalledAfterBoot(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &mailProvider{}
	_ = reg.Register(context.Background(), p)

	if p.bootCalled != 0 {
		t.Error("Boot() should NOT be called before registry.Boot()")
	}

	if err := reg.Boot(context.Background()); err != nil {
		t.Fatalf("Boot: %v", err)
	}

	if p.bootCalled != 1 {
		t.Errorf("Boot() calls: got %d, want 1", p.bootCalled)
	}
}

func TestRegistry_ServiceResolvableAfterBoot(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	_ = reg.Register(context.Background(), &mailProvider{})
	_ = reg.Boot(context.Background())

	m, err := container.Resolve[*mailer](context.Background(), c, "app.mailer", "ops@example.com")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if m.from != "ops@example.com" {
		t.Errorf("from: got %q, want 'ops@example.com'", m.from)
	}
}

func TestRegistry_Boot_IdempotentCallsAreIgnored(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &mailProvider{}
	_ = reg.Register(context.Background(), p)

	_ = reg.Boot(context.Background())
	_ = reg.Boot(context.Background()) // second call should be no-op

	if !reg.Booted() {
		t.Error("Booted() should be true after Boot()")
	}
	if p.bootCalled != 1 {
		t.Errorf("Boot() calls: got %d, want 1", p.bootCalled)
	}
}

func TestRegistry_Booted_FalseBeforeBoot(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	if reg.Booted() {
		t.Error("Booted() should be false before Boot()")
	}
}

func TestRegistry_DuplicateRegister_Ignored(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &mailProvider{}
	if err := reg.Register(context.Background(), p); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	// A second real registration would fail with a duplicate type.
	if err := reg.Register(context.Background(), p); err != nil {
		t.Errorf("second Register should be a no-op, got %v", err)
	}
	if len(reg.Providers()) != 1 {
		t.Errorf("Providers(): got %d, want 1", len(reg.Providers()))
	}
}

// ── Multiple providers ────────────────────────────────────────────────────────

func TestRegistry_MultipleProviders_AllServicesResolvable(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	_ = reg.Register(context.Background(), &multiProvider{})
	_ = reg.Register(context.Background(), &mailProvider{})
	_ = reg.Boot(context.Background())

	if got := c.MustCreate(context.Background(), "beta").(string); got != "αβ" {
		t.Errorf("beta: got %q, want 'αβ'", got)
	}
	if got := c.MustCreate(context.Background(), "alpha").(string); got != "α" {
		t.Errorf("alpha: got %q, want 'α'", got)
	}
	if len(reg.Providers()) != 2 {
		t.Errorf("Providers(): got %d, want 2", len(reg.Providers()))
	}
}

func TestRegistry_BootMayResolve(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &resolvingProvider{}
	_ = reg.Register(context.Background(), p)
	if err := reg.Boot(context.Background()); err != nil {
		t.Fatalf("Boot: %v", err)
	}

	if p.got != "tick" {
		t.Errorf("got %v, want 'tick'", p.got)
	}
	if !c.Sealed() {
		t.Error("resolving during Boot() should seal the container")
	}
}

// ── Failures ──────────────────────────────────────────────────────────────────

func TestRegistry_RegisterError(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	cause := errors.New("no config")
	err := reg.Register(context.Background(), &failingProvider{registerErr: cause})
	if !errors.Is(err, cause) {
		t.Fatalf("Register error: got %v, want wrapping %v", err, cause)
	}
	if len(reg.Providers()) != 0 {
		t.Error("a provider that failed to register should not be kept")
	}
}

func TestRegistry_BootError(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	cause := errors.New("port in use")
	_ = reg.Register(context.Background(), &failingProvider{bootErr: cause})

	if err := reg.Boot(context.Background()); !errors.Is(err, cause) {
		t.Fatalf("Boot error: got %v, want wrapping %v", err, cause)
	}
	if reg.Booted() {
		t.Error("Booted() should stay false when a provider fails")
	}
}

func TestRegistry_ProviderAfterSealFails(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	_ = reg.Register(context.Background(), &resolvingProvider{})
	_ = reg.Boot(context.Background())

	err := reg.Register(context.Background(), &mailProvider{})
	if !errors.Is(err, container.ErrContainerSealed) {
		t.Errorf("got %v, want ErrContainerSealed", err)
	}
}

// ── BaseProvider defaults ─────────────────────────────────────────────────────

func TestBaseProvider_Defaults(t *testing.T) {
	var p container.BaseProvider

	if err := p.Boot(context.Background(), container.New()); err != nil {
		t.Errorf("BaseProvider.Boot() should return nil, got %v", err)
	}
}

// ── Boot after registration (late provider) ───────────────────────────────────

func TestRegistry_RegisterAfterBoot_BootsImmediately(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	_ = reg.Boot(context.Background()) // boot before registering

	p := &mailProvider{}
	_ = reg.Register(context.Background(), p) // register after boot

	if p.bootCalled != 1 {
		t.Error("provider registered after Boot() should be booted immediately")
	}
}
