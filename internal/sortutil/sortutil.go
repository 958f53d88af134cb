package sortutil

import (
	"sort"

	"builtins-serializer/internal/symbol"
)

// StableClassSort returns a new slice containing the input classes sorted
// lexicographically by name. The original slice is not modified.
func StableClassSort(classes []*symbol.ClassSymbol) []*symbol.ClassSymbol {
	out := make([]*symbol.ClassSymbol, len(classes))
	copy(out, classes)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// StableIdentitySort returns a new slice containing the input package
// identities sorted lexicographically. The original slice is not modified.
func StableIdentitySort(identities []string) []string {
	out := make([]string, len(identities))
	copy(out, identities)
	sort.Strings(out)
	return out
}
