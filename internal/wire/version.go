package wire

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
)

// Version is the format revision tuple written in front of every combined
// bundle payload. A reader compares it against its own supported revision
// before attempting to parse the payload that follows.
type Version []uint32

// CurrentVersion is the revision produced by this serializer.
var CurrentVersion = Version{1, 0, 3}

// String renders the tuple in dotted form, e.g. "1.0.3".
func (v Version) String() string {
	parts := make([]string, len(v))
	for i, c := range v {
		parts[i] = strconv.FormatUint(uint64(c), 10)
	}
	return strings.Join(parts, ".")
}

// ParseVersion parses a dotted tuple such as "1.0.3".
func ParseVersion(s string) (Version, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("empty version tuple")
	}
	parts := strings.Split(s, ".")
	v := make(Version, 0, len(parts))
	for _, p := range parts {
		c, err := strconv.ParseUint(strings.TrimSpace(p), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("version component %q: %w", p, err)
		}
		v = append(v, uint32(c))
	}
	return v, nil
}

// AppendEnvelope appends the version envelope to dst: a 4-byte big-endian
// component count followed by each component as a 4-byte big-endian integer.
func AppendEnvelope(dst []byte, v Version) []byte {
	dst = binary.BigEndian.AppendUint32(dst, uint32(len(v)))
	for _, c := range v {
		dst = binary.BigEndian.AppendUint32(dst, c)
	}
	return dst
}

// ReadEnvelope reads the version envelope from the head of b, returning the
// tuple and the remaining payload bytes.
func ReadEnvelope(b []byte) (Version, []byte, error) {
	if len(b) < 4 {
		return nil, nil, fmt.Errorf("version envelope: buffer too short for component count")
	}
	n := binary.BigEndian.Uint32(b)
	b = b[4:]
	if n > 64 {
		return nil, nil, fmt.Errorf("version envelope: implausible component count %d", n)
	}
	if len(b) < int(n)*4 {
		return nil, nil, fmt.Errorf("version envelope: buffer too short for %d components", n)
	}
	v := make(Version, n)
	for i := range v {
		v[i] = binary.BigEndian.Uint32(b[i*4:])
	}
	return v, b[int(n)*4:], nil
}
