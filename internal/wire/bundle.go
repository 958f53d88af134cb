package wire

import "google.golang.org/protobuf/encoding/protowire"

// AppendBundle appends the combined bundle message to dst: every class
// message of the package in emission order, the package message, and the two
// string-table messages. The caller prepends the version envelope.
//
// Class payloads are embedded by reference from the per-class encoding pass;
// they are not re-encoded.
func AppendBundle(dst []byte, classes [][]byte, pkg, stringPool, qualifiedNames []byte) []byte {
	for _, c := range classes {
		dst = protowire.AppendTag(dst, FieldBundleClass, protowire.BytesType)
		dst = protowire.AppendBytes(dst, c)
	}
	dst = protowire.AppendTag(dst, FieldBundlePackage, protowire.BytesType)
	dst = protowire.AppendBytes(dst, pkg)
	dst = protowire.AppendTag(dst, FieldBundleStringPool, protowire.BytesType)
	dst = protowire.AppendBytes(dst, stringPool)
	dst = protowire.AppendTag(dst, FieldBundleQualifiedNames, protowire.BytesType)
	dst = protowire.AppendBytes(dst, qualifiedNames)
	return dst
}
