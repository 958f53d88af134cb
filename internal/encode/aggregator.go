package encode

import (
	"fmt"

	"builtins-serializer/internal/output"
	"builtins-serializer/internal/sortutil"
	"builtins-serializer/internal/strtab"
	"builtins-serializer/internal/symbol"
	"builtins-serializer/internal/wire"
)

// Aggregator serializes one package at a time: it encodes every class of
// the package, writes the standalone class files, the package message, the
// concatenated string-table streams, and the versioned combined bundle.
//
// Each SerializePackage call builds a fresh string table; indices are only
// stable within one combined bundle, never across packages.
type Aggregator struct {
	Schema  wire.Schema
	Sink    *output.Sink
	Version wire.Version
}

// SerializePackage writes the four artifact kinds for pkg. classes holds the
// package's top-level class-like symbols; nested symbols are reached through
// the recursion and land both in their own files and in the flattened bundle
// list. Any write failure is fatal for the whole run: a package is either
// fully serialized or the run aborts.
func (a *Aggregator) SerializePackage(pkg *symbol.PackageSymbol, classes []*symbol.ClassSymbol) error {
	tab := strtab.New()
	enc := &ClassEncoder{Schema: a.Schema, Table: tab}

	var all []Encoded
	for _, c := range sortutil.StableClassSort(classes) {
		encoded, err := enc.Encode(pkg.Identity, c)
		if err != nil {
			return err
		}
		all = append(all, encoded...)
	}

	for _, ec := range all {
		if err := a.Sink.WriteFile(ec.Path, ec.Data); err != nil {
			return err
		}
	}

	pkgMsg, err := a.Schema.PackageMessage(pkg, tab)
	if err != nil {
		return fmt.Errorf("encode package message: %w", err)
	}
	if err := a.Sink.WriteFile(PackagePath(pkg.Identity), pkgMsg); err != nil {
		return err
	}

	// The table is complete only after every message interned its strings;
	// build the streams last.
	stringStream, qualifiedStream := tab.Output()
	strFile := make([]byte, 0, len(stringStream)+len(qualifiedStream))
	strFile = append(strFile, stringStream...)
	strFile = append(strFile, qualifiedStream...)
	if err := a.Sink.WriteFile(StringsPath(pkg.Identity), strFile); err != nil {
		return err
	}

	classMsgs := make([][]byte, len(all))
	for i, ec := range all {
		classMsgs[i] = ec.Data
	}
	bundle := wire.AppendBundle(nil, classMsgs, pkgMsg, tab.StringsMessage(), tab.QualifiedMessage())

	payload := wire.AppendEnvelope(nil, a.Version)
	payload = append(payload, bundle...)
	return a.Sink.WriteFile(BundlePath(pkg.Identity), payload)
}
