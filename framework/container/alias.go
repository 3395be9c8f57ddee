package container

import (
	"fmt"
	"sort"
)

// AliasTable maps an abstract type identifier to the concrete identifier that
// satisfies it. Keys and values are canonical (see Normalize).
type AliasTable map[string]string

// NewAliasTable normalizes raw bindings and rejects blank or self-referencing
// entries.
//
//	table, err := container.NewAliasTable(map[string]string{
//	    `App\Contracts\Mailer`: `App\Mail\SmtpMailer`,
//	})
func NewAliasTable(raw map[string]string) (AliasTable, error) {
	table := make(AliasTable, len(raw))
	for abstract, concrete := range raw {
		from, to := Normalize(abstract), Normalize(concrete)
		switch {
		case from == "":
			return nil, fmt.Errorf("container: alias with blank abstract type (concrete %q)", concrete)
		case to == "":
			return nil, fmt.Errorf("container: alias [%s] has no concrete type", from)
		case from == to:
			return nil, fmt.Errorf("container: [%s] is aliased to itself", from)
		}
		if prev, ok := table[from]; ok && prev != to {
			return nil, fmt.Errorf("container: [%s] aliased to both [%s] and [%s]", from, prev, to)
		}
		table[from] = to
	}
	return table, nil
}

// Resolve returns the concrete identifier bound to id, or id itself.
// Lookup is a single step; a concrete type is never re-aliased.
func (t AliasTable) Resolve(id string) string {
	if target, ok := t[id]; ok {
		return target
	}
	return id
}

// Abstracts returns the aliased identifiers in sorted order.
func (t AliasTable) Abstracts() []string {
	out := make([]string, 0, len(t))
	for k := range t {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (t AliasTable) clone() AliasTable {
	out := make(AliasTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}
