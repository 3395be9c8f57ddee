package container

import (
	"context"
	"fmt"
)

// Constructor builds one instance from positional arguments: the resolved
// object dependencies in declaration order, followed by any extra arguments
// the caller passed to Create for the root type.
type Constructor func(ctx context.Context, args []any) (any, error)

// Param is one constructor parameter. A non-empty Type makes it an object
// dependency resolved by the container; otherwise it is a scalar the caller
// supplies through Create's extra arguments.
type Param struct {
	Type string
	Name string
}

// Dep declares an object dependency on the type named id.
func Dep(id string) Param { return Param{Type: id} }

// Scalar declares a caller-supplied parameter.
func Scalar(name string) Param { return Param{Name: name} }

// Definition describes how to build one type. It is the container's stand-in
// for runtime constructor introspection.
type Definition struct {
	ID       string
	Abstract bool
	Params   []Param
	New      Constructor
}

// ── Registration ──────────────────────────────────────────────────────────────

// Register adds a type definition to the catalog.
//
//	c.Register(container.Definition{
//	    ID:     "app.mail.mailer",
//	    Params: []container.Param{container.Dep("app.mail.transport"), container.Scalar("from")},
//	    New: func(ctx context.Context, args []any) (any, error) {
//	        return mail.New(args[0].(mail.Transport), args[1].(string)), nil
//	    },
//	})
//
// Registration fails once any resolution has run on the container.
func (c *Container) Register(def Definition) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.register(def)
}

// Abstract declares an interface or abstract type: it exists but can only be
// created through an alias.
func (c *Container) Abstract(id string) error {
	return c.Register(Definition{ID: id, Abstract: true})
}

// Instance registers a pre-built value as the singleton for id. An id the
// binding table redirects is rejected; register the value under its target.
//
//	// Laravel: $app->instance(Config::class, $config)
//	c.Instance(container.TypeKey(cfg), cfg)
func (c *Container) Instance(id string, instance any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := Normalize(id)
	if target := c.resolve(key); target != key {
		return errInvalidDefinition(key, fmt.Sprintf("aliased to %s; register the instance there", target))
	}

	err := c.register(Definition{
		ID: id,
		New: func(context.Context, []any) (any, error) {
			return instance, nil
		},
	})
	if err != nil {
		return err
	}
	c.registry.put(key, instance)
	return nil
}

// register validates def and stores a normalized copy (must hold mu.Lock).
func (c *Container) register(def Definition) error {
	key := Normalize(def.ID)
	if key == "" {
		return errInvalidDefinition(def.ID, "empty type identifier")
	}
	if c.sealed {
		return errContainerSealed(key)
	}
	if _, exists := c.catalog[key]; exists {
		return errDuplicateType(key)
	}
	if !def.Abstract && def.New == nil {
		return errInvalidDefinition(key, "concrete type without constructor")
	}

	params := make([]Param, len(def.Params))
	sawScalar := false
	for i, p := range def.Params {
		if p.Type == "" {
			sawScalar = true
			params[i] = p
			continue
		}
		dep := Normalize(p.Type)
		if dep == "" {
			return errInvalidDefinition(key, fmt.Sprintf("parameter %d has a blank type", i))
		}
		// Extra arguments are appended after the resolved dependencies, so a
		// scalar in front of a dependency could never line up.
		if sawScalar {
			return errInvalidDefinition(key, fmt.Sprintf("dependency %s follows a scalar parameter", dep))
		}
		params[i] = Param{Type: dep, Name: p.Name}
	}

	c.catalog[key] = &Definition{
		ID:       key,
		Abstract: def.Abstract,
		Params:   params,
		New:      def.New,
	}
	return nil
}
