package container

// Tree returns the dependency tree of id: a pre-order expansion of the type
// and, recursively, each of its alias-resolved dependencies. A type shared by
// several branches appears once per branch.
//
//	// mailer ← (transport ← config, config)
//	c.Tree("app.mailer")  // [.app.mailer .app.transport .app.config .app.config]
func (c *Container) Tree(id string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sealed = true

	key := c.resolve(Normalize(id))
	if key == "" {
		return nil, errTypeNotFound(id)
	}
	return c.buildTree(key)
}

// buildTree expands root depth-first. Every node is described on the way
// down, so unknown or abstract types fail here, before anything is
// constructed. Revisiting a type on the active path is a cycle.
func (c *Container) buildTree(root string) ([]string, error) {
	var (
		tree   []string
		path   []string
		onPath = make(map[string]bool)
	)

	var expand func(id string) error
	expand = func(id string) error {
		if onPath[id] {
			return errDependencyCycle(append(path, id))
		}

		d, err := c.describe(id)
		if err != nil {
			if e, ok := err.(*Error); ok {
				return e.withChain(append(path, id))
			}
			return err
		}
		if !d.Constructible {
			return errNotConstructible(id).withChain(append(path, id))
		}

		deps, err := c.dependencies(id)
		if err != nil {
			return err
		}

		tree = append(tree, id)
		onPath[id] = true
		path = append(path, id)

		for _, dep := range deps {
			if err := expand(c.resolve(dep)); err != nil {
				return err
			}
		}

		path = path[:len(path)-1]
		onPath[id] = false
		return nil
	}

	if err := expand(root); err != nil {
		return nil, err
	}
	return tree, nil
}
