// Package validate performs lightweight validation of the input symbol
// forest before serialization. It is not a resolver: it checks structural
// constraints that commonly catch malformed descriptor dumps.
//
// Goals:
//   - Aggregate multiple issues into a single error for better UX
//   - Deterministic, strict-enough checks without being overbearing
package validate

import (
	"errors"
	"fmt"
	"strings"

	"builtins-serializer/internal/symbol"
)

// Forest validates structural constraints on the input forest:
//
//   - Package identities must be well-formed dotted names (empty = root).
//   - Class names must be non-empty and free of path/name separators.
//   - Every kind tag must be recognized.
//   - Enum entries may only appear nested inside an enum class, never at
//     the top level.
//   - No duplicate fully-qualified names across the forest.
//
// The function returns nil if everything looks fine, or a single aggregated
// error describing all the issues found.
func Forest(f *symbol.Forest) error {
	var errs errlist

	for id := range f.Fragments {
		checkIdentity(&errs, id)
	}

	seen := make(map[string]struct{})
	for i, c := range f.Classes {
		prefix := fmt.Sprintf("classes[%d] (%s)", i, symbol.QualifiedName(c.PackageID, c.Name))
		checkIdentity(&errs, c.PackageID)
		if c.Kind == symbol.EnumEntry {
			errs.add("%s: enum entry at top level; entries belong inside an enum class", prefix)
		}
		checkClass(&errs, prefix, c, seen, c.PackageID, nil)
	}

	return errs.err()
}

func checkIdentity(errs *errlist, identity string) {
	if identity == "" {
		return // root package
	}
	if strings.Contains(identity, "/") || strings.Contains(identity, "\\") {
		errs.add("package %q: identity must use dots, not path separators", identity)
		return
	}
	for _, seg := range symbol.SplitIdentity(identity) {
		if seg == "" {
			errs.add("package %q: empty identity segment", identity)
			return
		}
	}
}

func checkClass(errs *errlist, prefix string, c *symbol.ClassSymbol, seen map[string]struct{}, identity string, enclosing []string) {
	if c.Name == "" {
		errs.add("%s: name must be non-empty", prefix)
		return
	}
	if strings.ContainsAny(c.Name, "./\\") {
		errs.add("%s: name %q must not contain '.', '/' or '\\'", prefix, c.Name)
	}
	if !c.Kind.Known() {
		errs.add("%s: unrecognized kind %d", prefix, int32(c.Kind))
	}

	chain := append(append([]string{}, enclosing...), c.Name)
	fq := symbol.QualifiedName(identity, chain...)
	if _, dup := seen[fq]; dup {
		errs.add("%s: duplicate fully-qualified name %q", prefix, fq)
	}
	seen[fq] = struct{}{}

	for _, n := range c.Nested {
		if n.Kind == symbol.EnumEntry && c.Kind != symbol.EnumClass {
			errs.add("%s: enum entry %q nested in non-enum %q", prefix, n.Name, c.Name)
			continue
		}
		checkClass(errs, prefix, n, seen, identity, chain)
	}
}

// errlist aggregates multiple validation issues into a single error.
type errlist struct {
	msgs []string
}

func (e *errlist) add(format string, args ...any) {
	if e == nil {
		return
	}
	e.msgs = append(e.msgs, fmt.Sprintf(format, args...))
}

func (e *errlist) err() error {
	if e == nil || len(e.msgs) == 0 {
		return nil
	}
	// Join with newline for readability.
	return errors.New(strings.Join(e.msgs, "\n"))
}
