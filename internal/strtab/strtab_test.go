package strtab

import (
	"testing"

	"builtins-serializer/internal/wire"
)

func TestInternDedup(t *testing.T) {
	tab := New()
	a := tab.Intern("kotlin")
	b := tab.Intern("Any")
	c := tab.Intern("kotlin")
	if a != c {
		t.Fatalf("same string got distinct indices: %d vs %d", a, c)
	}
	if a == b {
		t.Fatalf("distinct strings share index %d", a)
	}
	if tab.Len() != 2 {
		t.Fatalf("pool size = %d, want 2", tab.Len())
	}
}

func TestInternIndicesAreDense(t *testing.T) {
	tab := New()
	for i, s := range []string{"a", "b", "c"} {
		if idx := tab.Intern(s); idx != uint32(i) {
			t.Fatalf("Intern(%q) = %d, want %d", s, idx, i)
		}
	}
}

func TestInternQualifiedSharesPrefix(t *testing.T) {
	tab := New()
	ab := tab.InternQualified([]string{"a", "b"})
	ac := tab.InternQualified([]string{"a", "c"})
	if ab == ac {
		t.Fatalf("distinct chains share index %d", ab)
	}
	// "a", "b", "c" links: the "a" root link is shared.
	if tab.QualifiedLen() != 3 {
		t.Fatalf("qualified links = %d, want 3", tab.QualifiedLen())
	}
	if again := tab.InternQualified([]string{"a", "b"}); again != ab {
		t.Fatalf("re-interned chain moved: %d vs %d", again, ab)
	}
}

func TestOutputRoundTrip(t *testing.T) {
	tab := New()
	tab.Intern("kotlin")
	qn := tab.InternQualified([]string{"kotlin", "Any"})

	stringStream, qualifiedStream := tab.Output()
	file := append(append([]byte{}, stringStream...), qualifiedStream...)

	poolMsg, rest, err := wire.SplitStream(file)
	if err != nil {
		t.Fatalf("split string stream: %v", err)
	}
	qualMsg, rest, err := wire.SplitStream(rest)
	if err != nil {
		t.Fatalf("split qualified stream: %v", err)
	}
	if len(rest) != 0 {
		t.Fatalf("trailing bytes after both streams: %d", len(rest))
	}

	pool, err := wire.ParseStringPool(poolMsg)
	if err != nil {
		t.Fatalf("parse string pool: %v", err)
	}
	if len(pool) != 2 || pool[0] != "kotlin" || pool[1] != "Any" {
		t.Fatalf("pool = %v", pool)
	}

	quals, err := wire.ParseQualifiedNames(qualMsg)
	if err != nil {
		t.Fatalf("parse qualified names: %v", err)
	}
	if len(quals) != 2 {
		t.Fatalf("qualified entries = %d, want 2", len(quals))
	}
	leaf := quals[qn]
	if leaf.Parent != 0 {
		t.Fatalf("leaf parent = %d, want 0", leaf.Parent)
	}
	if s, _ := tab.LookupString(leaf.Short); s != "Any" {
		t.Fatalf("leaf short name = %q, want Any", s)
	}
	if root := quals[leaf.Parent]; root.Parent != -1 {
		t.Fatalf("root parent = %d, want -1", root.Parent)
	}
}

func TestOutputEmptyTable(t *testing.T) {
	stringStream, qualifiedStream := New().Output()
	file := append(append([]byte{}, stringStream...), qualifiedStream...)

	poolMsg, rest, err := wire.SplitStream(file)
	if err != nil {
		t.Fatalf("split string stream: %v", err)
	}
	if len(poolMsg) != 0 {
		t.Fatalf("empty table produced pool bytes: %d", len(poolMsg))
	}
	qualMsg, rest, err := wire.SplitStream(rest)
	if err != nil {
		t.Fatalf("split qualified stream: %v", err)
	}
	if len(qualMsg) != 0 || len(rest) != 0 {
		t.Fatalf("unexpected trailing data")
	}
}
