// Package strtab implements the per-bundle string table: a deduplicating,
// append-only store assigning dense indices to identifier strings and to
// qualified-name composition chains over them.
//
// Index stability is scoped to one combined bundle file, so every package
// serialization gets its own Table. Entries are never removed or rewritten:
// once an index is handed out it stays valid for the rest of the run.
package strtab

import (
	"builtins-serializer/internal/wire"

	"google.golang.org/protobuf/encoding/protowire"
)

type qualifiedKey struct {
	parent int32
	short  uint32
}

type qualifiedEntry struct {
	parent int32 // index of the enclosing chain link, -1 for a chain root
	short  uint32
}

// Table accumulates strings and qualified-name chains for one bundle.
type Table struct {
	index     map[string]uint32
	pool      []string
	qualIndex map[qualifiedKey]uint32
	qualified []qualifiedEntry
}

// New returns an empty Table.
func New() *Table {
	return &Table{
		index:     make(map[string]uint32),
		qualIndex: make(map[qualifiedKey]uint32),
	}
}

// Intern returns the index of s, assigning the next sequential index when s
// has not been seen before.
func (t *Table) Intern(s string) uint32 {
	if idx, ok := t.index[s]; ok {
		return idx
	}
	idx := uint32(len(t.pool))
	t.pool = append(t.pool, s)
	t.index[s] = idx
	return idx
}

// InternQualified interns every part of a qualified name and returns the
// index of the full composition chain. Chains share common prefixes: interning
// ["a","b"] and then ["a","c"] records three links, not four.
//
// InternQualified panics on an empty parts slice; callers always have at
// least the package root or class name segment.
func (t *Table) InternQualified(parts []string) uint32 {
	if len(parts) == 0 {
		panic("strtab: empty qualified name")
	}
	parent := int32(-1)
	var idx uint32
	for _, p := range parts {
		idx = t.internLink(parent, t.Intern(p))
		parent = int32(idx)
	}
	return idx
}

func (t *Table) internLink(parent int32, short uint32) uint32 {
	key := qualifiedKey{parent: parent, short: short}
	if idx, ok := t.qualIndex[key]; ok {
		return idx
	}
	idx := uint32(len(t.qualified))
	t.qualified = append(t.qualified, qualifiedEntry{parent: parent, short: short})
	t.qualIndex[key] = idx
	return idx
}

// Len returns the number of interned strings.
func (t *Table) Len() int { return len(t.pool) }

// QualifiedLen returns the number of recorded composition links.
func (t *Table) QualifiedLen() int { return len(t.qualified) }

// LookupString returns the interned string at idx.
func (t *Table) LookupString(idx uint32) (string, bool) {
	if int(idx) >= len(t.pool) {
		return "", false
	}
	return t.pool[idx], true
}

// StringsMessage serializes the flat string pool message.
func (t *Table) StringsMessage() []byte {
	var pool []byte
	for _, s := range t.pool {
		pool = protowire.AppendTag(pool, wire.FieldPoolString, protowire.BytesType)
		pool = protowire.AppendString(pool, s)
	}
	return pool
}

// QualifiedMessage serializes the qualified-name composition table message.
func (t *Table) QualifiedMessage() []byte {
	var quals []byte
	for _, q := range t.qualified {
		var entry []byte
		if q.parent >= 0 {
			entry = protowire.AppendTag(entry, wire.FieldQualifiedParent, protowire.VarintType)
			entry = protowire.AppendVarint(entry, uint64(q.parent)+1)
		}
		entry = protowire.AppendTag(entry, wire.FieldQualifiedShortName, protowire.VarintType)
		entry = protowire.AppendVarint(entry, uint64(q.short))
		quals = protowire.AppendTag(quals, wire.FieldQualifiedEntry, protowire.BytesType)
		quals = protowire.AppendBytes(quals, entry)
	}
	return quals
}

// Output serializes the table into its two wire streams: the flat string
// pool message and the qualified-name composition table message. Both are
// length-delimited (varint byte count, then the message) so they can be
// concatenated into a single file and split again with wire.SplitStream.
func (t *Table) Output() (stringStream, qualifiedStream []byte) {
	pool := t.StringsMessage()
	quals := t.QualifiedMessage()

	stringStream = protowire.AppendVarint(nil, uint64(len(pool)))
	stringStream = append(stringStream, pool...)
	qualifiedStream = protowire.AppendVarint(nil, uint64(len(quals)))
	qualifiedStream = append(qualifiedStream, quals...)
	return stringStream, qualifiedStream
}
