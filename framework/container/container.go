package container

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ── Container ─────────────────────────────────────────────────────────────────

// Container builds singleton object graphs from registered type definitions.
//
// A creation request is normalized, alias-resolved, expanded into a
// dependency tree and instantiated leaf to root. Every concrete type is
// constructed at most once per container.
//
// All state is private to the container and guarded by one mutex; the object
// registry also has its own lock so Get never waits on a resolution. Resolution
// seals the catalog: Register, Abstract, Instance and Provide fail once
// Create, Tree or Describe has run.
type Container struct {
	mu sync.Mutex

	id     string
	logger *zap.Logger

	// canonical id → definition
	catalog map[string]*Definition

	// canonical id → descriptor, computed on first lookup
	descriptors map[string]*TypeDescriptor

	// canonical id → object parameters in constructor order
	dependencyLists map[string][]string

	// abstract → concrete, fixed at construction
	aliases AliasTable

	registry *objectRegistry

	onCreate []func(id string, instance any)

	sealed bool
}

// Option configures a Container.
type Option func(*Container)

// WithAliases installs the binding table. The table is copied; later changes
// to the argument have no effect.
func WithAliases(table AliasTable) Option {
	return func(c *Container) {
		c.aliases = table.clone()
	}
}

// WithLogger sets the logger used for instantiation and failure events.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Container) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates an empty container. The container registers itself under
// KeyOf[*Container]() so constructors may depend on it.
func New(opts ...Option) *Container {
	c := &Container{
		id:              uuid.NewString(),
		logger:          zap.NewNop(),
		catalog:         make(map[string]*Definition),
		descriptors:     make(map[string]*TypeDescriptor),
		dependencyLists: make(map[string][]string),
		aliases:         AliasTable{},
		registry:        newObjectRegistry(),
	}
	for _, opt := range opts {
		opt(c)
	}

	// Laravel: $app->instance('container', $app)
	_ = c.Instance(KeyOf[*Container](), c)
	return c
}

// ID returns the unique identifier of this container instance.
func (c *Container) ID() string { return c.id }

// resolve applies the alias table to a canonical id.
func (c *Container) resolve(id string) string {
	return c.aliases.Resolve(id)
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Create returns the singleton for id, building it and every missing
// transitive dependency first.
//
// Extra arguments are appended after the resolved dependencies when the
// requested type itself is constructed; they are ignored if it already
// exists.
//
//	// Laravel: $app->make(Mailer::class, ['from' => 'ops@example.com'])
//	m, err := c.Create(ctx, "app.mail.mailer", "ops@example.com")
//
// Constructors that need another type at runtime must call Create with the
// context they were given. The request fails with a DependencyCycle error
// only if the requested type's tree reaches a type whose constructor is
// still running; other members of the enclosing tree may be built early.
// Calling Create with an unrelated context from inside a constructor blocks.
// Get is safe to call from a constructor.
func (c *Container) Create(ctx context.Context, id string, args ...any) (any, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if active := activeResolution(ctx, c); active != nil {
		return c.create(ctx, active, id, args)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.create(ctx, nil, id, args)
}

// MustCreate is like Create but panics on failure.
func (c *Container) MustCreate(ctx context.Context, id string, args ...any) any {
	instance, err := c.Create(ctx, id, args...)
	if err != nil {
		panic(err)
	}
	return instance
}

// Get returns the already created singleton for id. It never constructs and
// does not wait for a running resolution.
//
//	// Laravel: $app->get(Mailer::class)
//	m, err := c.Get("app.mail.mailer")
//	if container.IsNotYetCreated(err) { ... }
func (c *Container) Get(id string) (any, error) {
	key := c.resolve(Normalize(id))
	if key == "" {
		return nil, errTypeNotFound(id)
	}
	instance, ok := c.registry.get(key)
	if !ok {
		return nil, errNotYetCreated(key)
	}
	return instance, nil
}

// create runs one creation request (must hold mu.Lock, directly or through
// the active resolution).
func (c *Container) create(ctx context.Context, active *resolution, id string, args []any) (any, error) {
	c.sealed = true

	key := c.resolve(Normalize(id))
	if key == "" {
		return nil, errTypeNotFound(id)
	}

	if instance, ok := c.registry.get(key); ok {
		return instance, nil
	}

	tree, err := c.buildTree(key)
	if err != nil {
		return nil, c.failed(key, err)
	}

	// A tree that reaches any dependent of a type whose constructor is
	// running also contains that type, so checking running types is enough.
	for _, t := range tree {
		if active.constructing(c, t) {
			chain := active.chain(c, key)
			if t != key {
				chain = append(chain, t)
			}
			return nil, c.failed(key, errDependencyCycle(chain))
		}
	}

	res := &resolution{owner: c, parent: ctxResolution(ctx)}
	instance, err := c.instantiate(context.WithValue(ctx, resolutionKey{}, res), res, key, tree, args)
	res.done.Store(true)
	if err != nil {
		return nil, c.failed(key, err)
	}
	return instance, nil
}

func (c *Container) failed(key string, err error) error {
	c.logger.Warn("create failed",
		zap.String("container", c.id),
		zap.String("type", key),
		zap.Error(err),
	)
	return err
}

// instantiate walks tree from the end. Reversing a pre-order expansion puts
// an occurrence of every dependency before each occurrence of its dependent,
// so the first time a type is reached all of its dependencies are
// registered. Later duplicates are skipped.
func (c *Container) instantiate(ctx context.Context, res *resolution, root string, tree []string, args []any) (any, error) {
	for i := len(tree) - 1; i >= 0; i-- {
		t := tree[i]
		if c.registry.has(t) {
			continue
		}

		deps, err := c.dependencies(t)
		if err != nil {
			return nil, err
		}

		in := make([]any, 0, len(deps)+len(args))
		for _, dep := range deps {
			instance, ok := c.registry.get(c.resolve(dep))
			if !ok {
				panic(newError(ErrCodeInternal, t,
					fmt.Sprintf("dependency %s is not registered before its dependent", c.resolve(dep)), nil))
			}
			in = append(in, instance)
		}
		if t == root {
			in = append(in, args...)
		}

		res.current = t
		instance, err := construct(ctx, c.catalog[t].New, in)
		res.current = ""
		if err != nil {
			return nil, errConstructorFailed(t, err)
		}

		c.registry.put(t, instance)

		c.logger.Debug("instantiated",
			zap.String("container", c.id),
			zap.String("type", t),
			zap.Strings("deps", deps),
		)
		c.fireCreated(t, instance)
	}

	instance, _ := c.registry.get(root)
	return instance, nil
}

// construct calls ctor, turning a panic into an error.
func construct(ctx context.Context, ctor Constructor, args []any) (instance any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			instance = nil
			if e, ok := rec.(error); ok {
				err = fmt.Errorf("panic: %w", e)
				return
			}
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return ctor(ctx, args)
}

// ── Re-entrant resolution ─────────────────────────────────────────────────────

type resolutionKey struct{}

// resolution is one in-flight Create, carried by the context handed to
// constructors. current is the type whose constructor is running.
type resolution struct {
	owner   *Container
	parent  *resolution
	current string
	done    atomic.Bool
}

func ctxResolution(ctx context.Context) *resolution {
	r, _ := ctx.Value(resolutionKey{}).(*resolution)
	return r
}

// activeResolution finds the innermost unfinished resolution of c in ctx, if
// any. Its presence means the caller already runs under c.mu. A context kept
// past the end of its Create falls back to taking the lock.
func activeResolution(ctx context.Context, c *Container) *resolution {
	for r := ctxResolution(ctx); r != nil; r = r.parent {
		if r.owner == c && !r.done.Load() {
			return r
		}
	}
	return nil
}

// constructing reports whether id's constructor is running in r or one of
// its enclosing resolutions.
func (r *resolution) constructing(c *Container, id string) bool {
	for ; r != nil; r = r.parent {
		if r.owner == c && r.current == id {
			return true
		}
	}
	return false
}

// chain lists the types under construction, outermost first, then id.
func (r *resolution) chain(c *Container, id string) []string {
	var chain []string
	for ; r != nil; r = r.parent {
		if r.owner == c && r.current != "" {
			chain = append([]string{r.current}, chain...)
		}
	}
	return append(chain, id)
}

// ── Observers ─────────────────────────────────────────────────────────────────

// OnCreate registers a callback fired after each instance is registered.
// Callbacks run under the container lock and must not call back into it.
//
//	// Laravel: $app->afterResolving(fn($object, $app) => ...)
func (c *Container) OnCreate(cb func(id string, instance any)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onCreate = append(c.onCreate, cb)
}

func (c *Container) fireCreated(id string, instance any) {
	for _, cb := range c.onCreate {
		cb(id, instance)
	}
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// Has reports whether id (after alias resolution) names a registered type.
//
//	// Laravel: $app->bound(Mailer::class)
func (c *Container) Has(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.catalog[c.resolve(Normalize(id))]
	return ok
}

// Created reports whether the singleton for id exists.
//
//	// Laravel: $app->resolved(Mailer::class)
func (c *Container) Created(id string) bool {
	return c.registry.has(c.resolve(Normalize(id)))
}

// Keys returns all registered type identifiers, sorted.
func (c *Container) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.keys()
}

func (c *Container) keys() []string {
	out := make([]string, 0, len(c.catalog))
	for k := range c.catalog {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Instances returns the identifiers of all created singletons, sorted.
func (c *Container) Instances() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.registry.keys()
}

// Size returns the number of created singletons.
func (c *Container) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.registry.len()
}

// Aliases returns a copy of the binding table.
func (c *Container) Aliases() AliasTable {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aliases.clone()
}

// Sealed reports whether resolution has started.
func (c *Container) Sealed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sealed
}
