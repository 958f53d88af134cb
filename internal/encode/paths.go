package encode

import (
	"strings"

	"builtins-serializer/internal/symbol"
)

// Artifact naming. Every path is destination-relative with '/' separators
// and derives deterministically from the package identity, so re-running
// serialization on unchanged input lands every byte in the same place.
const (
	classExt     = ".kcls"
	packageFile  = "package.kpkg"
	stringsFile  = "strings.kstr"
	bundleSuffix = "-builtins.kbundle"

	// rootPackageName stands in for the empty (root) package identity in
	// file names that need a non-empty segment.
	rootPackageName = "default"
)

// PackageDir maps a dotted package identity to its directory, e.g.
// "kotlin.collections" -> "kotlin/collections". The root package maps to the
// destination root.
func PackageDir(identity string) string {
	return strings.ReplaceAll(identity, ".", "/")
}

func inPackage(identity, name string) string {
	dir := PackageDir(identity)
	if dir == "" {
		return name
	}
	return dir + "/" + name
}

// ClassPath returns the standalone artifact path for a class identified by
// its enclosing chain (outermost first, own name last), e.g. chain
// ["Outer","Inner"] in package "p" -> "p/Outer.Inner.kcls".
func ClassPath(identity string, chain []string) string {
	return inPackage(identity, strings.Join(chain, ".")+classExt)
}

// PackagePath returns the package-message artifact path.
func PackagePath(identity string) string {
	return inPackage(identity, packageFile)
}

// StringsPath returns the string-table artifact path.
func StringsPath(identity string) string {
	return inPackage(identity, stringsFile)
}

// BundlePath returns the combined-bundle artifact path, named after the last
// identity segment, e.g. "kotlin.collections" ->
// "kotlin/collections/collections-builtins.kbundle".
func BundlePath(identity string) string {
	segs := symbol.SplitIdentity(identity)
	last := rootPackageName
	if len(segs) > 0 {
		last = segs[len(segs)-1]
	}
	return inPackage(identity, last+bundleSuffix)
}
