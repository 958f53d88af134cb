package wire

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Parsed message forms. Readers of the artifact files (and this package's
// tests) decode into these; string-valued fields stay as table indices.

// ParsedQualifiedName is one composition link in the qualified-name table.
// Parent is -1 for a chain root.
type ParsedQualifiedName struct {
	Parent int32
	Short  uint32
}

// ParsedClass mirrors the class message with indices unresolved.
type ParsedClass struct {
	Name        uint32
	Kind        int32
	Flags       uint32
	Supertypes  []uint32
	Nested      []uint32
	Members     []uint32
	EnumEntries []uint32
}

// ParsedPackage mirrors the package message.
type ParsedPackage struct {
	Name      uint32
	Fragments []uint32
}

// ParsedBundle keeps the embedded messages of a combined bundle as raw bytes.
type ParsedBundle struct {
	Classes        [][]byte
	Package        []byte
	StringPool     []byte
	QualifiedNames []byte
}

// SplitStream consumes one length-delimited message from the head of b and
// returns the message bytes and the remainder.
func SplitStream(b []byte) (msg, rest []byte, err error) {
	ln, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return nil, nil, fmt.Errorf("stream length: %w", protowire.ParseError(n))
	}
	b = b[n:]
	if uint64(len(b)) < ln {
		return nil, nil, newTruncatedError("stream")
	}
	return b[:ln], b[ln:], nil
}

// consumeTag reads the next field tag from b.
func consumeTag(b []byte) (protowire.Number, protowire.Type, int, error) {
	num, typ, n := protowire.ConsumeTag(b)
	if n < 0 {
		return 0, 0, 0, fmt.Errorf("field tag: %w", protowire.ParseError(n))
	}
	return num, typ, n, nil
}

func consumeVarintField(b []byte, num protowire.Number, typ protowire.Type) (uint64, int, error) {
	if typ != protowire.VarintType {
		return 0, 0, fmt.Errorf("field #%d: expected varint, got %v", num, typ)
	}
	u, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, 0, fmt.Errorf("field #%d: %w", num, protowire.ParseError(n))
	}
	return u, n, nil
}

func consumeBytesField(b []byte, num protowire.Number, typ protowire.Type) ([]byte, int, error) {
	if typ != protowire.BytesType {
		return nil, 0, fmt.Errorf("field #%d: expected bytes, got %v", num, typ)
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, 0, fmt.Errorf("field #%d: %w", num, protowire.ParseError(n))
	}
	return v, n, nil
}

// ParseStringPool decodes the flat string pool message.
func ParseStringPool(b []byte) ([]string, error) {
	var pool []string
	for len(b) > 0 {
		num, typ, n, err := consumeTag(b)
		if err != nil {
			return nil, err
		}
		b = b[n:]
		if num != FieldPoolString {
			return nil, NewUnsupportedFieldError(num, typ)
		}
		v, n, err := consumeBytesField(b, num, typ)
		if err != nil {
			return nil, err
		}
		b = b[n:]
		pool = append(pool, string(v))
	}
	return pool, nil
}

// ParseQualifiedNames decodes the qualified-name composition table message.
func ParseQualifiedNames(b []byte) ([]ParsedQualifiedName, error) {
	var out []ParsedQualifiedName
	for len(b) > 0 {
		num, typ, n, err := consumeTag(b)
		if err != nil {
			return nil, err
		}
		b = b[n:]
		if num != FieldQualifiedEntry {
			return nil, NewUnsupportedFieldError(num, typ)
		}
		entry, n, err := consumeBytesField(b, num, typ)
		if err != nil {
			return nil, err
		}
		b = b[n:]

		q := ParsedQualifiedName{Parent: -1}
		for len(entry) > 0 {
			num, typ, n, err := consumeTag(entry)
			if err != nil {
				return nil, err
			}
			entry = entry[n:]
			u, n, err := consumeVarintField(entry, num, typ)
			if err != nil {
				return nil, err
			}
			entry = entry[n:]
			switch num {
			case FieldQualifiedParent:
				if u > 0 {
					q.Parent = int32(u - 1)
				}
			case FieldQualifiedShortName:
				q.Short = uint32(u)
			default:
				return nil, NewUnsupportedFieldError(num, typ)
			}
		}
		out = append(out, q)
	}
	return out, nil
}

// ParseClass decodes a class message.
func ParseClass(b []byte) (ParsedClass, error) {
	var c ParsedClass
	for len(b) > 0 {
		num, typ, n, err := consumeTag(b)
		if err != nil {
			return ParsedClass{}, err
		}
		b = b[n:]
		u, n, err := consumeVarintField(b, num, typ)
		if err != nil {
			return ParsedClass{}, err
		}
		b = b[n:]
		switch num {
		case FieldClassName:
			c.Name = uint32(u)
		case FieldClassKind:
			c.Kind = int32(u)
		case FieldClassFlags:
			c.Flags = uint32(u)
		case FieldClassSupertype:
			c.Supertypes = append(c.Supertypes, uint32(u))
		case FieldClassNested:
			c.Nested = append(c.Nested, uint32(u))
		case FieldClassMember:
			c.Members = append(c.Members, uint32(u))
		case FieldClassEnumEntry:
			c.EnumEntries = append(c.EnumEntries, uint32(u))
		default:
			return ParsedClass{}, NewUnsupportedFieldError(num, typ)
		}
	}
	return c, nil
}

// ParsePackage decodes a package message.
func ParsePackage(b []byte) (ParsedPackage, error) {
	var p ParsedPackage
	for len(b) > 0 {
		num, typ, n, err := consumeTag(b)
		if err != nil {
			return ParsedPackage{}, err
		}
		b = b[n:]
		u, n, err := consumeVarintField(b, num, typ)
		if err != nil {
			return ParsedPackage{}, err
		}
		b = b[n:]
		switch num {
		case FieldPackageName:
			p.Name = uint32(u)
		case FieldPackageFragment:
			p.Fragments = append(p.Fragments, uint32(u))
		default:
			return ParsedPackage{}, NewUnsupportedFieldError(num, typ)
		}
	}
	return p, nil
}

// ParseBundle decodes the combined bundle message, keeping the embedded
// messages as raw bytes for the caller to decode further.
func ParseBundle(b []byte) (ParsedBundle, error) {
	var bundle ParsedBundle
	for len(b) > 0 {
		num, typ, n, err := consumeTag(b)
		if err != nil {
			return ParsedBundle{}, err
		}
		b = b[n:]
		v, n, err := consumeBytesField(b, num, typ)
		if err != nil {
			return ParsedBundle{}, err
		}
		b = b[n:]
		switch num {
		case FieldBundleClass:
			bundle.Classes = append(bundle.Classes, v)
		case FieldBundlePackage:
			bundle.Package = v
		case FieldBundleStringPool:
			bundle.StringPool = v
		case FieldBundleQualifiedNames:
			bundle.QualifiedNames = v
		default:
			return ParsedBundle{}, NewUnsupportedFieldError(num, typ)
		}
	}
	return bundle, nil
}
