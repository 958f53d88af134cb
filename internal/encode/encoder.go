// Package encode implements the serialization core: the recursive class
// encoder, the per-package aggregator that assembles the four artifact
// kinds, and the driver that walks the whole forest.
package encode

import (
	"fmt"

	"builtins-serializer/internal/sortutil"
	"builtins-serializer/internal/symbol"
	"builtins-serializer/internal/wire"
)

// Encoded is one schema-encoded class message bound to its deterministic
// destination path. The payload is written exactly once and additionally
// referenced (not copied) by the combined bundle.
type Encoded struct {
	QualifiedName string
	Path          string
	Data          []byte
}

// ClassEncoder converts class-like symbols into schema messages. The string
// table is shared across every class of one package so all messages resolve
// indices against the same pool.
type ClassEncoder struct {
	Schema wire.Schema
	Table  wire.StringTable
}

// Encode encodes one top-level class and, eagerly and depth-first, every
// nested class-like symbol. Enum entries are excluded at every level: an
// entry is a value of its enum class, not an emittable declaration. Siblings
// are visited in lexicographic name order so output is reproducible.
//
// The returned slice is the flattened emission order: parent first, then its
// nested classes.
func (e *ClassEncoder) Encode(identity string, c *symbol.ClassSymbol) ([]Encoded, error) {
	return e.encode(identity, symbol.SplitIdentity(identity), nil, c)
}

func (e *ClassEncoder) encode(identity string, pkgParts, enclosing []string, c *symbol.ClassSymbol) ([]Encoded, error) {
	if c.Kind == symbol.EnumEntry {
		return nil, nil
	}

	chain := make([]string, 0, len(enclosing)+1)
	chain = append(chain, enclosing...)
	chain = append(chain, c.Name)

	qualified := make([]string, 0, len(pkgParts)+len(chain))
	qualified = append(qualified, pkgParts...)
	qualified = append(qualified, chain...)

	msg, err := e.Schema.ClassMessage(c, qualified, e.Table)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", symbol.QualifiedName(identity, chain...), err)
	}

	out := []Encoded{{
		QualifiedName: symbol.QualifiedName(identity, chain...),
		Path:          ClassPath(identity, chain),
		Data:          msg,
	}}
	for _, nested := range sortutil.StableClassSort(c.Nested) {
		sub, err := e.encode(identity, pkgParts, chain, nested)
		if err != nil {
			return nil, err
		}
		out = append(out, sub...)
	}
	return out, nil
}
