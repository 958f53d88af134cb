// Package wire implements the builtins wire schema on top of protowire:
// message builders for class, package and bundle messages, the version
// envelope, and strict parsers for reading artifacts back.
package wire

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"builtins-serializer/internal/symbol"
)

// StringTable is the interning capability the message builders need. The
// production implementation is strtab.Table; tests may substitute their own.
type StringTable interface {
	Intern(s string) uint32
	InternQualified(parts []string) uint32
}

// Schema populates schema messages for symbols. The traversal and layout
// logic upstream depends only on this interface so it can be exercised with
// a fake encoder.
type Schema interface {
	// ClassMessage builds the class message for c. qualifiedName is the full
	// identity chain of c: package segments followed by the enclosing class
	// names and c's own name.
	ClassMessage(c *symbol.ClassSymbol, qualifiedName []string, tab StringTable) ([]byte, error)

	// PackageMessage builds the package-level message from the resolver's
	// fragment metadata.
	PackageMessage(p *symbol.PackageSymbol, tab StringTable) ([]byte, error)
}

// BuiltinSchema is the production Schema implementation.
type BuiltinSchema struct{}

// ClassMessage implements Schema.
func (BuiltinSchema) ClassMessage(c *symbol.ClassSymbol, qualifiedName []string, tab StringTable) ([]byte, error) {
	if !c.Kind.Known() {
		return nil, NewUnknownKindError(c)
	}
	if c.Kind == symbol.EnumEntry {
		return nil, fmt.Errorf("enum entry %q is a value, not an emittable declaration", c.Name)
	}

	var b []byte
	b = protowire.AppendTag(b, FieldClassName, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(tab.InternQualified(qualifiedName)))
	b = protowire.AppendTag(b, FieldClassKind, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(c.Kind))
	if c.Flags != 0 {
		b = protowire.AppendTag(b, FieldClassFlags, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(c.Flags))
	}
	for _, st := range c.Supertypes {
		b = protowire.AppendTag(b, FieldClassSupertype, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(tab.InternQualified(symbol.SplitIdentity(st))))
	}
	for _, n := range c.Nested {
		if !n.Kind.Known() {
			return nil, NewUnknownKindError(n)
		}
		if n.Kind == symbol.EnumEntry {
			continue
		}
		b = protowire.AppendTag(b, FieldClassNested, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(tab.Intern(n.Name)))
	}
	for _, m := range c.Members {
		b = protowire.AppendTag(b, FieldClassMember, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(tab.Intern(m)))
	}
	for _, n := range c.Nested {
		if n.Kind != symbol.EnumEntry {
			continue
		}
		b = protowire.AppendTag(b, FieldClassEnumEntry, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(tab.Intern(n.Name)))
	}
	return b, nil
}

// PackageMessage implements Schema. The root package (empty identity) is
// recorded as a single empty name segment so it still owns a table entry.
func (BuiltinSchema) PackageMessage(p *symbol.PackageSymbol, tab StringTable) ([]byte, error) {
	parts := symbol.SplitIdentity(p.Identity)
	if len(parts) == 0 {
		parts = []string{""}
	}

	var b []byte
	b = protowire.AppendTag(b, FieldPackageName, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(tab.InternQualified(parts)))
	for _, f := range p.Fragments {
		b = protowire.AppendTag(b, FieldPackageFragment, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(tab.Intern(f)))
	}
	return b, nil
}
