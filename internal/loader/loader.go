// Package loader reads the resolver's descriptor dump: a JSON rendering of
// the symbol forest handed to the serializer. The dump is produced upstream;
// the loader only maps it onto the in-memory descriptor types and rejects
// tags it does not understand.
package loader

import (
	"encoding/json"
	"fmt"
	"os"

	"builtins-serializer/internal/symbol"
)

type classJSON struct {
	Name       string      `json:"name"`
	Kind       string      `json:"kind"`
	Flags      uint32      `json:"flags,omitempty"`
	Supertypes []string    `json:"supertypes,omitempty"`
	Members    []string    `json:"members,omitempty"`
	Nested     []classJSON `json:"nested,omitempty"`
}

type packageJSON struct {
	Identity  string      `json:"identity"`
	Fragments []string    `json:"fragments,omitempty"`
	Classes   []classJSON `json:"classes,omitempty"`
}

type dumpJSON struct {
	FormatVersion string        `json:"formatVersion,omitempty"`
	Packages      []packageJSON `json:"packages"`
}

// Load reads and converts the descriptor dump at path.
func Load(path string) (*symbol.Forest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read descriptor dump: %w", err)
	}
	return Parse(b)
}

// Parse converts raw dump bytes into a Forest. An unrecognized kind tag is an
// error: the serializer never silently skips symbols it cannot classify.
func Parse(b []byte) (*symbol.Forest, error) {
	var dump dumpJSON
	if err := json.Unmarshal(b, &dump); err != nil {
		return nil, fmt.Errorf("parse descriptor dump: %w", err)
	}

	forest := &symbol.Forest{Fragments: make(map[string][]string)}
	for _, p := range dump.Packages {
		if len(p.Fragments) > 0 {
			forest.Fragments[p.Identity] = p.Fragments
		}
		for _, c := range p.Classes {
			sym, err := toSymbol(c)
			if err != nil {
				return nil, fmt.Errorf("package %q: %w", p.Identity, err)
			}
			sym.PackageID = p.Identity
			forest.Classes = append(forest.Classes, sym)
		}
	}
	return forest, nil
}

func toSymbol(c classJSON) (*symbol.ClassSymbol, error) {
	kind, err := symbol.ParseKind(c.Kind)
	if err != nil {
		return nil, fmt.Errorf("class %q: %w", c.Name, err)
	}
	sym := &symbol.ClassSymbol{
		Name:       c.Name,
		Kind:       kind,
		Flags:      c.Flags,
		Supertypes: c.Supertypes,
		Members:    c.Members,
	}
	for _, n := range c.Nested {
		nested, err := toSymbol(n)
		if err != nil {
			return nil, fmt.Errorf("class %q: %w", c.Name, err)
		}
		sym.Nested = append(sym.Nested, nested)
	}
	return sym, nil
}
