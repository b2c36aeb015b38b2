package snippet

import (
	"path/filepath"
	"strings"
)

// File identifies one discovered snippet file.
type File struct {
	// Path is the absolute location of the snippet on disk.
	Path string `json:"path"`
	// ID is the path relative to the snippets root, used for reporting
	// and selection. Unique per file and stable across runs.
	ID string `json:"id"`
}

// Identify derives the reporting identifier for path under root. Paths
// outside root fall back to the cleaned absolute path.
func Identify(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.Clean(path)
	}
	rel = filepath.Clean(rel)
	if rel == "." || strings.HasPrefix(rel, "..") {
		return filepath.Clean(path)
	}
	return rel
}

// Stem returns the snippet's base name without the suffix, the raw
// material for synthesized import module names.
func (f File) Stem(suffix string) string {
	base := filepath.Base(f.Path)
	return strings.TrimSuffix(base, suffix)
}
