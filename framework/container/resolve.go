package container

import (
	"context"
	"reflect"
)

// ── Generics helpers ──────────────────────────────────────────────────────────

// Resolve calls Create and type-asserts the result.
//
//	// Instead of: m, err := c.Create(ctx, "app.mailer"); mailer := m.(*Mailer)
//	// Write:      mailer, err := container.Resolve[*Mailer](ctx, c, "app.mailer")
func Resolve[T any](ctx context.Context, c *Container, id string, args ...any) (T, error) {
	var zero T
	instance, err := c.Create(ctx, id, args...)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, errTypeMismatch(Normalize(id), typeName[T](), instance)
	}
	return typed, nil
}

// ResolveType is Resolve keyed by KeyOf[T]().
func ResolveType[T any](ctx context.Context, c *Container, args ...any) (T, error) {
	return Resolve[T](ctx, c, KeyOf[T](), args...)
}

// MustResolve is like Resolve but panics on failure.
func MustResolve[T any](ctx context.Context, c *Container, id string, args ...any) T {
	typed, err := Resolve[T](ctx, c, id, args...)
	if err != nil {
		panic(err)
	}
	return typed
}

// Lookup calls Get and type-asserts the result.
func Lookup[T any](c *Container, id string) (T, error) {
	var zero T
	instance, err := c.Get(id)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, errTypeMismatch(Normalize(id), typeName[T](), instance)
	}
	return typed, nil
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}
