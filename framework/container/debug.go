package container

import (
	"fmt"
	"io"
	"strings"
)

// TypeInfo summarizes one registered type.
type TypeInfo struct {
	ID           string   `json:"id"`
	Abstract     bool     `json:"abstract"`
	Dependencies []string `json:"dependencies"`
	Scalars      []string `json:"scalars,omitempty"`
	Alias        string   `json:"alias,omitempty"`
	Instantiated bool     `json:"instantiated"`
}

// Graph lists every registered type, sorted by identifier. It reads the
// catalog directly and does not seal the container.
func (c *Container) Graph() []TypeInfo {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := c.keys()
	out := make([]TypeInfo, 0, len(keys))
	for _, key := range keys {
		def := c.catalog[key]
		info := TypeInfo{
			ID:           key,
			Abstract:     def.Abstract,
			Dependencies: []string{},
			Instantiated: c.registry.has(key),
		}
		if target := c.resolve(key); target != key {
			info.Alias = target
		}
		for _, p := range def.Params {
			if p.Type != "" {
				info.Dependencies = append(info.Dependencies, p.Type)
			} else {
				info.Scalars = append(info.Scalars, p.Name)
			}
		}
		out = append(out, info)
	}
	return out
}

// FprintGraph writes one line per type: a filled bullet when instantiated,
// then the type and its dependencies.
//
//	● .app.mailer ← .app.transport
//	○ .app.transport
//	◇ .app.contracts.transport → .app.smtp
func (c *Container) FprintGraph(w io.Writer) {
	types := c.Graph()
	if len(types) == 0 {
		_, _ = fmt.Fprintln(w, "(empty container)")
		return
	}

	for _, t := range types {
		status := "○"
		switch {
		case t.Abstract:
			status = "◇"
		case t.Instantiated:
			status = "●"
		}

		line := status + " " + t.ID
		if t.Alias != "" {
			line += " → " + t.Alias
		}
		if len(t.Dependencies) > 0 {
			line += " ← " + strings.Join(t.Dependencies, ", ")
		}
		_, _ = fmt.Fprintln(w, line)
	}
}

// SprintGraph returns FprintGraph's output as a string.
func (c *Container) SprintGraph() string {
	var sb strings.Builder
	c.FprintGraph(&sb)
	return sb.String()
}
