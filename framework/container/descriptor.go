package container

// TypeDescriptor is the cached metadata of one type identifier.
// An empty entry in Params marks a scalar parameter.
type TypeDescriptor struct {
	ID            string
	Exists        bool
	Constructible bool
	Params        []string
}

// Describe returns the descriptor of id after alias resolution.
// Describing seals the container against further registration.
func (c *Container) Describe(id string) (TypeDescriptor, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sealed = true

	d, err := c.describe(c.resolve(Normalize(id)))
	if err != nil {
		return TypeDescriptor{}, err
	}
	out := *d
	out.Params = append([]string(nil), d.Params...)
	return out, nil
}

// describe computes the descriptor of a canonical id once and caches it,
// negative results included.
func (c *Container) describe(id string) (*TypeDescriptor, error) {
	d, ok := c.descriptors[id]
	if !ok {
		d = &TypeDescriptor{ID: id}
		if def, found := c.catalog[id]; found {
			d.Exists = true
			d.Constructible = !def.Abstract && def.New != nil
			d.Params = make([]string, len(def.Params))
			for i, p := range def.Params {
				d.Params[i] = p.Type
			}
		}
		c.descriptors[id] = d
	}

	if !d.Exists {
		return nil, errTypeNotFound(id)
	}
	return d, nil
}

// dependencies lists the object parameters of id in constructor order. The
// entries are not alias-resolved; callers resolve each one before use.
func (c *Container) dependencies(id string) ([]string, error) {
	if deps, ok := c.dependencyLists[id]; ok {
		return deps, nil
	}

	d, err := c.describe(id)
	if err != nil {
		return nil, err
	}

	deps := make([]string, 0, len(d.Params))
	for _, p := range d.Params {
		if p != "" {
			deps = append(deps, p)
		}
	}
	c.dependencyLists[id] = deps
	return deps, nil
}
