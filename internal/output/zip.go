package output

import (
	"archive/zip"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// fixedZipTime ensures byte-for-byte reproducible archives (1980-01-01 UTC).
var fixedZipTime = time.Unix(315532800, 0).UTC()

// sanitizeZipPath normalizes ZIP entry paths (forward slashes, no drive, no
// leading '/') and removes '.' and '..' segments without escaping the root.
func sanitizeZipPath(p string) string {
	s := filepath.ToSlash(p)
	if len(s) > 1 && s[1] == ':' {
		s = s[2:]
	}
	s = strings.TrimLeft(s, "/")
	parts := strings.Split(s, "/")
	stack := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" || part == "." {
			continue
		}
		if part == ".." {
			if n := len(stack); n > 0 {
				stack = stack[:n-1]
			}
			continue
		}
		stack = append(stack, part)
	}
	s = strings.Join(stack, "/")
	if s == "" {
		return "entry"
	}
	return s
}

// WriteArchive packs the destination tree into a reproducible zip at
// zipPath: sorted entries, fixed timestamps, sanitized paths. The archive is
// a convenience export; the on-disk tree stays the canonical output.
func WriteArchive(zipPath, root string) error {
	var rels []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rels = append(rels, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk %s: %w", root, err)
	}
	sort.Strings(rels)

	if err := os.MkdirAll(filepath.Dir(zipPath), 0o755); err != nil {
		return fmt.Errorf("mkdir output: %w", err)
	}
	f, err := os.Create(zipPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, rel := range rels {
		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			return fmt.Errorf("read %s: %w", rel, err)
		}
		h := &zip.FileHeader{Name: sanitizeZipPath(rel), Method: zip.Deflate}
		h.SetMode(0o644)
		h.Modified = fixedZipTime
		w, err := zw.CreateHeader(h)
		if err != nil {
			return fmt.Errorf("create entry %s: %w", rel, err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("write entry %s: %w", rel, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize zip: %w", err)
	}
	return nil
}
