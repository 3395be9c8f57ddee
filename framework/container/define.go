package container

// DefinitionBuilder implements the fluent registration API.
//
//	c.Define("app.mail.mailer").
//	    Needs("app.mail.transport").
//	    Takes("from").
//	    Using(func(ctx context.Context, args []any) (any, error) {
//	        return mail.New(args[0].(mail.Transport), args[1].(string)), nil
//	    })
type DefinitionBuilder struct {
	container *Container
	def       Definition
}

// Define starts a definition for the type named id.
func (c *Container) Define(id string) *DefinitionBuilder {
	return &DefinitionBuilder{container: c, def: Definition{ID: id}}
}

// Needs appends object dependencies, in constructor order.
func (b *DefinitionBuilder) Needs(ids ...string) *DefinitionBuilder {
	for _, id := range ids {
		b.def.Params = append(b.def.Params, Dep(id))
	}
	return b
}

// Takes appends scalar parameters supplied through Create's extra arguments.
// They must come after every dependency.
func (b *DefinitionBuilder) Takes(names ...string) *DefinitionBuilder {
	for _, name := range names {
		b.def.Params = append(b.def.Params, Scalar(name))
	}
	return b
}

// Using registers the definition with ctor as its constructor.
func (b *DefinitionBuilder) Using(ctor Constructor) error {
	b.def.New = ctor
	return b.container.Register(b.def)
}

// Value is a shorthand for Using when the instance is already built.
//
//	c.Define("app.clock").Value(clock.System())
func (b *DefinitionBuilder) Value(value any) error {
	return b.container.Instance(b.def.ID, value)
}

// AsAbstract registers the type as abstract; it can only be created through
// an alias.
func (b *DefinitionBuilder) AsAbstract() error {
	b.def.Abstract = true
	b.def.Params = nil
	return b.container.Register(b.def)
}
