package loader

import (
	"os"
	"path/filepath"
	"testing"

	"builtins-serializer/internal/symbol"
)

const sampleDump = `{
  "formatVersion": "1",
  "packages": [
    {
      "identity": "p",
      "fragments": ["p.kt"],
      "classes": [
        {
          "name": "A",
          "kind": "class",
          "supertypes": ["kotlin.Any"],
          "members": ["foo"],
          "nested": [{"name": "B", "kind": "class"}]
        },
        {
          "name": "E",
          "kind": "enum_class",
          "nested": [
            {"name": "X", "kind": "enum_entry"},
            {"name": "Y", "kind": "enum_entry"}
          ]
        }
      ]
    }
  ]
}`

func TestParseSampleDump(t *testing.T) {
	forest, err := Parse([]byte(sampleDump))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(forest.Classes) != 2 {
		t.Fatalf("classes = %d, want 2", len(forest.Classes))
	}
	a := forest.Classes[0]
	if a.Name != "A" || a.PackageID != "p" || a.Kind != symbol.Class {
		t.Fatalf("class A = %+v", a)
	}
	if len(a.Nested) != 1 || a.Nested[0].Name != "B" {
		t.Fatalf("A nested = %+v", a.Nested)
	}
	e := forest.Classes[1]
	if e.Kind != symbol.EnumClass || len(e.Nested) != 2 || e.Nested[0].Kind != symbol.EnumEntry {
		t.Fatalf("class E = %+v", e)
	}
	if frags := forest.Fragments["p"]; len(frags) != 1 || frags[0] != "p.kt" {
		t.Fatalf("fragments = %v", forest.Fragments)
	}
}

func TestParseUnknownKind(t *testing.T) {
	_, err := Parse([]byte(`{"packages":[{"identity":"p","classes":[{"name":"A","kind":"typedef"}]}]}`))
	if err == nil {
		t.Fatalf("expected error for unknown kind tag")
	}
}

func TestParseMalformedJSON(t *testing.T) {
	if _, err := Parse([]byte(`{"packages": [`)); err == nil {
		t.Fatalf("expected error for malformed JSON")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.json")
	if err := os.WriteFile(path, []byte(sampleDump), 0o644); err != nil {
		t.Fatalf("write dump: %v", err)
	}
	forest, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(forest.Classes) != 2 {
		t.Fatalf("classes = %d", len(forest.Classes))
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatalf("expected error for missing dump")
	}
}
