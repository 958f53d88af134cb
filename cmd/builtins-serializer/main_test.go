package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"builtins-serializer/internal/wire"
)

func TestVersionFlag(t *testing.T) {
	v := wire.CurrentVersion
	f := &versionFlag{v: &v}
	if err := f.Set("2.1.0"); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if v.String() != "2.1.0" {
		t.Fatalf("version = %q", v.String())
	}
	if f.String() != "2.1.0" {
		t.Fatalf("String() = %q", f.String())
	}
	if err := f.Set("not.a.version"); err == nil {
		t.Fatalf("expected error for bad tuple")
	}
}

func TestCommandRequiresFlags(t *testing.T) {
	cmd := newCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error when required flags are missing")
	}
}

func TestCommandEndToEnd(t *testing.T) {
	dump := `{
  "packages": [
    {"identity": "p", "fragments": ["p.kt"], "classes": [
      {"name": "A", "kind": "class"}
    ]}
  ]
}`
	dir := t.TempDir()
	input := filepath.Join(dir, "dump.json")
	if err := os.WriteFile(input, []byte(dump), 0o644); err != nil {
		t.Fatalf("write dump: %v", err)
	}
	dest := filepath.Join(dir, "out")
	zipOut := filepath.Join(dir, "out.zip")

	var stdout bytes.Buffer
	cmd := newCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"-i", input, "-d", dest, "--zip", zipOut})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if !strings.Contains(stdout.String(), "files=4") {
		t.Fatalf("summary = %q", stdout.String())
	}
	for _, rel := range []string{"p/A.kcls", "p/package.kpkg", "p/strings.kstr", "p/p-builtins.kbundle"} {
		if _, err := os.Stat(filepath.Join(dest, filepath.FromSlash(rel))); err != nil {
			t.Fatalf("missing artifact %s: %v", rel, err)
		}
	}
	if _, err := os.Stat(zipOut); err != nil {
		t.Fatalf("missing zip export: %v", err)
	}
}

func TestCommandRejectsBadDump(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "dump.json")
	if err := os.WriteFile(input, []byte(`{"packages":[{"identity":"p","classes":[{"name":"A","kind":"typedef"}]}]}`), 0o644); err != nil {
		t.Fatalf("write dump: %v", err)
	}
	cmd := newCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"-i", input, "-d", filepath.Join(dir, "out")})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for unknown kind in dump")
	}
}
