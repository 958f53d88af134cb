package wire

import "google.golang.org/protobuf/encoding/protowire"

// Field numbers of the builtins wire schema. The schema is fixed: changing
// any number is a format break and requires a Version bump.
const (
	// StringPool message.
	FieldPoolString protowire.Number = 1

	// QualifiedNameTable message and its entries.
	FieldQualifiedEntry     protowire.Number = 1
	FieldQualifiedParent    protowire.Number = 1 // entry-scoped; 0 means "no parent"
	FieldQualifiedShortName protowire.Number = 2 // entry-scoped

	// Class message.
	FieldClassName      protowire.Number = 1 // qualified-name table index
	FieldClassKind      protowire.Number = 2
	FieldClassFlags     protowire.Number = 3
	FieldClassSupertype protowire.Number = 4 // repeated qualified-name index
	FieldClassNested    protowire.Number = 5 // repeated string-pool index (short names)
	FieldClassMember    protowire.Number = 6 // repeated string-pool index
	FieldClassEnumEntry protowire.Number = 7 // repeated string-pool index (values, not declarations)

	// Package message.
	FieldPackageName     protowire.Number = 1 // qualified-name table index
	FieldPackageFragment protowire.Number = 2 // repeated string-pool index

	// Bundle message.
	FieldBundleClass          protowire.Number = 1 // repeated embedded Class
	FieldBundlePackage        protowire.Number = 2 // embedded Package
	FieldBundleStringPool     protowire.Number = 3 // embedded StringPool
	FieldBundleQualifiedNames protowire.Number = 4 // embedded QualifiedNameTable
)
