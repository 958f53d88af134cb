package encode

import (
	"fmt"

	"go.uber.org/zap"

	"builtins-serializer/internal/output"
	"builtins-serializer/internal/sortutil"
	"builtins-serializer/internal/symbol"
	"builtins-serializer/internal/wire"
)

// Stats reports the outcome of one serialization run. Counters cover every
// file actually written; Digest is a canonical hash over the written tree
// (SHA-256 of sorted "path:hash" lines).
type Stats struct {
	TotalBytes int64
	TotalFiles int64
	Digest     string
}

// Options configures a serialization run. Zero values fall back to the
// production schema, the current format version and a no-op logger.
type Options struct {
	Dest    string
	Version wire.Version
	Schema  wire.Schema
	Logger  *zap.Logger
}

// Serialize runs the whole pipeline: prepares the destination, groups the
// forest by package identity, and serializes each package in lexicographic
// identity order. Execution is single-threaded and synchronous; a run either
// completes or aborts on the first write failure.
//
// Destination preparation failure alone does not abort the run: it is
// logged as a warning and the write phase is still attempted.
func Serialize(opts Options, forest *symbol.Forest) (Stats, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	schema := opts.Schema
	if schema == nil {
		schema = wire.BuiltinSchema{}
	}
	version := opts.Version
	if len(version) == 0 {
		version = wire.CurrentVersion
	}

	sink := output.NewSink(opts.Dest)
	if err := sink.Prepare(); err != nil {
		logger.Warn("destination preparation failed, attempting writes anyway",
			zap.String("dest", opts.Dest), zap.Error(err))
	}

	byPackage := make(map[string][]*symbol.ClassSymbol)
	for _, c := range forest.Classes {
		byPackage[c.PackageID] = append(byPackage[c.PackageID], c)
	}

	seen := make(map[string]struct{}, len(byPackage))
	identities := make([]string, 0, len(byPackage))
	for id := range byPackage {
		identities = append(identities, id)
		seen[id] = struct{}{}
	}
	for id := range forest.Fragments {
		if _, ok := seen[id]; !ok {
			identities = append(identities, id)
		}
	}

	agg := &Aggregator{Schema: schema, Sink: sink, Version: version}
	for _, id := range sortutil.StableIdentitySort(identities) {
		pkg := &symbol.PackageSymbol{Identity: id, Fragments: forest.Fragments[id]}
		if err := agg.SerializePackage(pkg, byPackage[id]); err != nil {
			return Stats{}, fmt.Errorf("serialize package %q: %w", id, err)
		}
		logger.Debug("package serialized", zap.String("package", id),
			zap.Int("classes", len(byPackage[id])))
	}

	totalBytes, totalFiles := sink.Totals()
	return Stats{TotalBytes: totalBytes, TotalFiles: totalFiles, Digest: sink.Digest()}, nil
}
