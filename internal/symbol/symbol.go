// Package symbol defines the resolved descriptor types consumed by the
// serializer: class-like declarations (possibly nested), package descriptors,
// and the kind tags that drive emission decisions.
//
// The forest is produced upstream by the resolver and is read-only input to
// this tool. Descriptors carry only the structural data the wire schema
// needs; resolution semantics live entirely upstream.
package symbol

import (
	"fmt"
	"strings"
)

// Kind tags a class-like declaration. EnumEntry is the only kind that is
// never emitted as a standalone declaration: entries are values of their
// enum class, not declarations of their own.
type Kind int32

const (
	Class Kind = iota
	Interface
	EnumClass
	EnumEntry
	AnnotationClass
	Object
	CompanionObject
)

var kindNames = map[Kind]string{
	Class:           "class",
	Interface:       "interface",
	EnumClass:       "enum_class",
	EnumEntry:       "enum_entry",
	AnnotationClass: "annotation_class",
	Object:          "object",
	CompanionObject: "companion_object",
}

// String returns the lowercase tag used in descriptor dumps.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int32(k))
}

// Known reports whether k is a kind this serializer understands.
func (k Kind) Known() bool {
	_, ok := kindNames[k]
	return ok
}

// ParseKind maps a descriptor-dump tag back to its Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unrecognized symbol kind %q", s)
}

// ClassSymbol is one class-like declaration. Top-level declarations carry
// PackageID; nested declarations inherit their identity from the owner chain
// during traversal and leave PackageID empty. Nested entries are exclusively
// owned by their parent.
type ClassSymbol struct {
	Name       string
	PackageID  string // dotted package identity; top-level symbols only
	Kind       Kind
	Flags      uint32 // packed visibility/modality bits, opaque upstream data
	Supertypes []string
	Members    []string
	Nested     []*ClassSymbol
}

// PackageSymbol describes one package: its dotted identity plus the names of
// the source fragments the resolver merged into it. Fragment contents are
// opaque to the serializer.
type PackageSymbol struct {
	Identity  string
	Fragments []string
}

// Forest is the complete serializer input: every top-level class-like
// declaration plus per-package fragment metadata keyed by package identity.
type Forest struct {
	Classes   []*ClassSymbol
	Fragments map[string][]string
}

// QualifiedName joins a dotted package identity with a chain of class names
// (outermost first). An empty identity yields just the chain.
func QualifiedName(packageID string, chain ...string) string {
	rel := strings.Join(chain, ".")
	if packageID == "" {
		return rel
	}
	if rel == "" {
		return packageID
	}
	return packageID + "." + rel
}

// SplitIdentity splits a dotted package identity into its segments.
// The empty identity (root package) has no segments.
func SplitIdentity(identity string) []string {
	if identity == "" {
		return nil
	}
	return strings.Split(identity, ".")
}
