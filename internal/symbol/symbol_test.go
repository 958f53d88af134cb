package symbol

import (
	"reflect"
	"testing"
)

func TestParseKindRoundTrip(t *testing.T) {
	kinds := []Kind{Class, Interface, EnumClass, EnumEntry, AnnotationClass, Object, CompanionObject}
	for _, k := range kinds {
		got, err := ParseKind(k.String())
		if err != nil {
			t.Fatalf("ParseKind(%q) error: %v", k.String(), err)
		}
		if got != k {
			t.Fatalf("ParseKind(%q) = %v, want %v", k.String(), got, k)
		}
	}
}

func TestParseKindUnknown(t *testing.T) {
	if _, err := ParseKind("typedef"); err == nil {
		t.Fatalf("expected error for unknown kind tag")
	}
}

func TestKindKnown(t *testing.T) {
	if !EnumEntry.Known() {
		t.Fatalf("EnumEntry should be known")
	}
	if Kind(99).Known() {
		t.Fatalf("Kind(99) should not be known")
	}
}

func TestQualifiedName(t *testing.T) {
	if got := QualifiedName("p", "A", "B"); got != "p.A.B" {
		t.Fatalf("got %q", got)
	}
	if got := QualifiedName("", "A"); got != "A" {
		t.Fatalf("root package: got %q", got)
	}
	if got := QualifiedName("a.b"); got != "a.b" {
		t.Fatalf("no chain: got %q", got)
	}
}

func TestSplitIdentity(t *testing.T) {
	if got := SplitIdentity("a.b.c"); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("got %v", got)
	}
	if got := SplitIdentity(""); got != nil {
		t.Fatalf("root identity should have no segments, got %v", got)
	}
}
