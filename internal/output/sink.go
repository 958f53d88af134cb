// Package output owns the destination directory of a serialization run:
// destructive preparation, counted artifact writes, the canonical run
// digest, and an optional reproducible zip export of the whole tree.
//
// Conventions:
//   - All artifact paths are destination-relative with '/' separators.
//   - Every write is atomic (temp file + rename) so readers never observe a
//     partially-written artifact.
//   - Counters cover exactly the files written through the sink.
package output

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Sink writes artifacts under a destination root and keeps running totals.
// Not safe for concurrent use; a run is single-threaded.
type Sink struct {
	root  string
	bytes int64
	files int64
	// path -> content hash, for the canonical run digest
	written map[string]string
}

// NewSink returns a sink rooted at dest. Call Prepare before writing.
func NewSink(dest string) *Sink {
	return &Sink{root: dest, written: make(map[string]string)}
}

// Root returns the destination directory.
func (s *Sink) Root() string { return s.root }

// Prepare recreates the destination directory from scratch: recursive delete
// then mkdir. Destructive and not undoable. A failure here is reported to
// the caller but is intentionally a separate channel from write failures:
// the run warns and still attempts the write phase.
func (s *Sink) Prepare() error {
	if err := os.RemoveAll(s.root); err != nil {
		return fmt.Errorf("clear destination %s: %w", s.root, err)
	}
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("recreate destination %s: %w", s.root, err)
	}
	return nil
}

// WriteFile writes data to <root>/<rel> atomically, creating parent
// directories as needed, and updates the byte/file counters. Each artifact
// is written exactly once per run.
func (s *Sink) WriteFile(rel string, data []byte) error {
	full := filepath.Join(s.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("mkdir for %s: %w", rel, err)
	}

	f, err := os.CreateTemp(filepath.Dir(full), ".tmp-"+filepath.Base(full)+"-")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", rel, err)
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("write %s: %w", rel, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("sync %s: %w", rel, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close %s: %w", rel, err)
	}
	if err := os.Rename(tmp, full); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("finalize %s: %w", rel, err)
	}

	s.bytes += int64(len(data))
	s.files++
	sum := sha256.Sum256(data)
	s.written[rel] = hex.EncodeToString(sum[:])
	return nil
}

// Totals returns the bytes and files written so far.
func (s *Sink) Totals() (totalBytes, totalFiles int64) {
	return s.bytes, s.files
}

// Digest computes a canonical hash over everything written: SHA-256 of the
// sorted "path:hash\n" lines. Two runs over the same input produce the same
// digest, which makes reproducibility checkable without re-reading files.
func (s *Sink) Digest() string {
	if len(s.written) == 0 {
		sum := sha256.Sum256(nil)
		return hex.EncodeToString(sum[:])
	}
	lines := make([]string, 0, len(s.written))
	for p, h := range s.written {
		lines = append(lines, p+":"+h)
	}
	sort.Strings(lines)
	var buf bytes.Buffer
	for _, ln := range lines {
		buf.WriteString(ln)
		buf.WriteByte('\n')
	}
	sum := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:])
}

// Paths returns the destination-relative paths written so far, sorted.
func (s *Sink) Paths() []string {
	out := make([]string, 0, len(s.written))
	for p := range s.written {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
