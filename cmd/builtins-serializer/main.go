// Package main provides the builtins-serializer CLI: it reads a resolver
// descriptor dump (JSON symbol forest), serializes every package into its
// four binary artifacts under the destination directory, and reports the
// totals.
//
// Usage:
//
//	builtins-serializer -i dump.json -d out/ [--format-version 1.0.3] [--zip out.zip]
//
// Key design goals:
//   - Deterministic output (stable ordering, per-package string tables)
//   - Destructive destination preparation with a warn-only failure channel
//   - Fatal, no-partial-success error handling during the write phase
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"builtins-serializer/internal/encode"
	"builtins-serializer/internal/loader"
	"builtins-serializer/internal/output"
	"builtins-serializer/internal/validate"
	"builtins-serializer/internal/wire"
)

// versionFlag binds a wire.Version to a pflag value.
type versionFlag struct {
	v *wire.Version
}

var _ pflag.Value = (*versionFlag)(nil)

func (x *versionFlag) String() string {
	if x.v == nil {
		return ""
	}
	return x.v.String()
}

func (x *versionFlag) Set(s string) error {
	v, err := wire.ParseVersion(s)
	if err != nil {
		return err
	}
	*x.v = v
	return nil
}

func (x *versionFlag) Type() string { return "version" }

type config struct {
	input   string
	dest    string
	zipOut  string
	verbose bool
	version wire.Version
}

func newCommand() *cobra.Command {
	cfg := config{version: wire.CurrentVersion}

	cmd := &cobra.Command{
		Use:          "builtins-serializer -i <dump.json> -d <dest-dir>",
		Short:        "Serialize a resolved symbol forest into per-package builtins artifacts",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, cfg)
		},
	}

	ff := cmd.Flags()
	ff.StringVarP(&cfg.input, "input", "i", "", "path to the resolver descriptor dump (JSON)")
	ff.StringVarP(&cfg.dest, "dest", "d", "", "destination directory (recreated on every run)")
	ff.StringVar(&cfg.zipOut, "zip", "", "optional path for a reproducible zip export of the artifact tree")
	ff.BoolVar(&cfg.verbose, "verbose", false, "enable debug logging")
	ff.Var(&versionFlag{v: &cfg.version}, "format-version", "format version tuple written to combined bundles")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("dest")

	return cmd
}

func newLogger(verbose bool) *zap.Logger {
	c := zap.NewProductionConfig()
	c.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	if verbose {
		c.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	c.Encoding = "console"
	c.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := c.Build(zap.AddStacktrace(zap.NewAtomicLevelAt(zap.FatalLevel)))
	if err != nil {
		panic(fmt.Sprintf("failed to build zap logger: %v", err))
	}
	return logger
}

func run(cmd *cobra.Command, cfg config) error {
	logger := newLogger(cfg.verbose)
	defer func() { _ = logger.Sync() }()

	forest, err := loader.Load(cfg.input)
	if err != nil {
		return err
	}
	if err := validate.Forest(forest); err != nil {
		return fmt.Errorf("invalid descriptor dump:\n%w", err)
	}

	stats, err := encode.Serialize(encode.Options{
		Dest:    cfg.dest,
		Version: cfg.version,
		Logger:  logger,
	}, forest)
	if err != nil {
		return err
	}

	if cfg.zipOut != "" {
		if err := output.WriteArchive(cfg.zipOut, cfg.dest); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(),
		"Wrote builtins to %s (files=%d, bytes=%d, digest=%s)\n",
		cfg.dest, stats.TotalFiles, stats.TotalBytes, stats.Digest[:12],
	)
	return nil
}

func main() {
	if err := newCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}
}
