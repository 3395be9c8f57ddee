package container

import (
	"context"
	"fmt"
	"reflect"
)

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

// Provide registers a Go constructor function, keyed by the TypeKey of its
// first result.
//
//	func NewMailer(t Transport, from string) (*Mailer, error)
//
//	c.Provide(NewMailer)
//	c.Create(ctx, container.KeyOf[*Mailer](), "ops@example.com")
//
// Pointer-to-struct and interface parameters are object dependencies;
// every other parameter is a scalar supplied through Create's extra
// arguments. A leading context.Context receives the resolution context.
// The function must return T or (T, error) and may not be variadic.
func (c *Container) Provide(constructor any) error {
	def, err := FuncDefinition("", constructor)
	if err != nil {
		return err
	}
	return c.Register(def)
}

// ProvideAs is Provide with an explicit type identifier, typically used to
// register a constructor under a name other than its result type.
func (c *Container) ProvideAs(id string, constructor any) error {
	def, err := FuncDefinition(id, constructor)
	if err != nil {
		return err
	}
	return c.Register(def)
}

// FuncDefinition derives a Definition from a constructor function's
// signature. An empty id defaults to the TypeKey of the first result.
func FuncDefinition(id string, constructor any) (Definition, error) {
	fn := reflect.ValueOf(constructor)
	if fn.Kind() != reflect.Func || fn.IsNil() {
		return Definition{}, errInvalidDefinition(id, fmt.Sprintf("constructor must be a function, got %T", constructor))
	}

	ft := fn.Type()
	if ft.IsVariadic() {
		return Definition{}, errInvalidDefinition(id, "variadic constructors are not supported")
	}
	switch {
	case ft.NumOut() == 1:
	case ft.NumOut() == 2 && ft.Out(1) == errorType:
	default:
		return Definition{}, errInvalidDefinition(id, "constructor must return T or (T, error), got "+ft.String())
	}

	if id == "" {
		id = typeKey(ft.Out(0))
	}

	offset := 0
	if ft.NumIn() > 0 && ft.In(0) == contextType {
		offset = 1
	}

	params := make([]Param, 0, ft.NumIn()-offset)
	for i := offset; i < ft.NumIn(); i++ {
		in := ft.In(i)
		if isObjectType(in) {
			params = append(params, Param{Type: typeKey(in), Name: in.String()})
		} else {
			params = append(params, Scalar(in.String()))
		}
	}

	newFn := func(ctx context.Context, args []any) (any, error) {
		if len(args) != len(params) {
			return nil, fmt.Errorf("%s expects %d arguments, got %d", ft, len(params), len(args))
		}

		in := make([]reflect.Value, 0, ft.NumIn())
		if offset == 1 {
			in = append(in, reflect.ValueOf(&ctx).Elem())
		}
		for i, arg := range args {
			v, err := argValue(arg, ft.In(i+offset))
			if err != nil {
				return nil, fmt.Errorf("argument %d: %w", i, err)
			}
			in = append(in, v)
		}

		out := fn.Call(in)
		if len(out) == 2 && !out[1].IsNil() {
			return nil, out[1].Interface().(error)
		}
		return out[0].Interface(), nil
	}

	return Definition{ID: id, Params: params, New: newFn}, nil
}

// isObjectType reports whether t is resolved by the container rather than
// supplied by the caller.
func isObjectType(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface:
		return true
	case reflect.Ptr:
		return t.Elem().Kind() == reflect.Struct
	default:
		return false
	}
}

func argValue(arg any, want reflect.Type) (reflect.Value, error) {
	if arg == nil {
		switch want.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(want), nil
		}
		return reflect.Value{}, fmt.Errorf("cannot use nil as %s", want)
	}

	v := reflect.ValueOf(arg)
	if !v.Type().AssignableTo(want) {
		return reflect.Value{}, fmt.Errorf("cannot use %s as %s", v.Type(), want)
	}
	return v, nil
}
