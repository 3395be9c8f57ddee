// Package bindings loads the alias table that maps abstract type identifiers
// to the concrete types the container should build for them.
//
// Three file formats are accepted, chosen by extension:
//
//	# bindings.env (default; keys use dots, not backslashes)
//	app.contracts.mailer=app.mail.smtp
//
//	# bindings.toml
//	[bindings]
//	"app.contracts.mailer" = "app.mail.smtp"
//
//	# bindings.yaml
//	bindings:
//	  app.contracts.mailer: app.mail.smtp
//
// In TOML and YAML the entries may sit under a top-level "bindings" table or
// at the top level itself; nested tables are flattened with '.'.
package bindings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/km-arc/go-autowire/framework/container"
)

// Format represents a binding file format.
type Format int

const (
	// FormatEnv is KEY=VALUE, parsed by godotenv
	FormatEnv Format = iota

	// FormatTOML is parsed by BurntSushi/toml
	FormatTOML

	// FormatYAML is parsed by yaml.v3
	FormatYAML
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatEnv:
		return "env"
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// FormatFor picks the format from the file extension. Anything that is not
// TOML or YAML is read as an env file.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatEnv
	}
}

// Load reads the binding file at path. A missing file yields an empty table.
//
//	table, err := bindings.Load(cfg.Container.Bindings)
//	c := container.New(container.WithAliases(table))
func Load(path string) (container.AliasTable, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return container.AliasTable{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("bindings: read %s: %w", path, err)
	}

	table, err := Parse(data, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("bindings: %s: %w", path, err)
	}
	return table, nil
}

// Parse decodes data in the given format and builds a normalized alias table.
func Parse(data []byte, format Format) (container.AliasTable, error) {
	var raw map[string]string
	var err error

	switch format {
	case FormatEnv:
		raw, err = godotenv.Unmarshal(string(data))
	case FormatTOML:
		var doc map[string]any
		if err = toml.Unmarshal(data, &doc); err == nil {
			raw, err = entries(doc)
		}
	case FormatYAML:
		var doc map[string]any
		if err = yaml.Unmarshal(data, &doc); err == nil {
			raw, err = entries(doc)
		}
	default:
		return nil, fmt.Errorf("unsupported format %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", format, err)
	}

	return container.NewAliasTable(raw)
}

// Encode writes table in the given format, sorted by abstract identifier.
// Parse(Encode(t, f), f) yields t again.
func Encode(table container.AliasTable, format Format) ([]byte, error) {
	switch format {
	case FormatEnv:
		var b strings.Builder
		for _, abstract := range table.Abstracts() {
			if !envKey(abstract) {
				return nil, fmt.Errorf("bindings: %s cannot be written as an env key; use toml or yaml", abstract)
			}
			fmt.Fprintf(&b, "%s=%s\n", strings.TrimPrefix(abstract, "."), strings.TrimPrefix(table[abstract], "."))
		}
		return []byte(b.String()), nil
	case FormatTOML:
		var b strings.Builder
		err := toml.NewEncoder(&b).Encode(map[string]map[string]string{"bindings": table})
		return []byte(b.String()), err
	case FormatYAML:
		return yaml.Marshal(map[string]map[string]string{"bindings": table})
	default:
		return nil, fmt.Errorf("bindings: unsupported format %s", format)
	}
}

// envKey reports whether godotenv accepts id as a variable name.
func envKey(id string) bool {
	for _, r := range strings.TrimPrefix(id, ".") {
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '_' && r != '.' {
			return false
		}
	}
	return true
}

// entries selects the "bindings" table when present and flattens it into
// abstract → concrete pairs.
func entries(doc map[string]any) (map[string]string, error) {
	if sub, ok := doc["bindings"].(map[string]any); ok {
		doc = sub
	}

	out := make(map[string]string)
	if err := flatten("", doc, out); err != nil {
		return nil, err
	}
	return out, nil
}

func flatten(prefix string, node map[string]any, out map[string]string) error {
	keys := make([]string, 0, len(node))
	for k := range node {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch v := node[k].(type) {
		case string:
			out[key] = v
		case map[string]any:
			if err := flatten(key, v, out); err != nil {
				return err
			}
		default:
			return fmt.Errorf("binding %q: want a type identifier, got %T", key, v)
		}
	}
	return nil
}
