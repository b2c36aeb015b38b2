package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bgricker/snipcheck/internal/snippet"
)

// ErrNoSnippets indicates that explicitly selected snippet paths resolved
// to nothing. A scan of the snippets root that finds no files is not an
// error; it simply returns an empty result.
var ErrNoSnippets = errors.New("no snippets selected")

// Options control a discovery scan.
type Options struct {
	// Suffix is the filename suffix snippets must carry, e.g. ".py".
	Suffix string
	// Exclude lists infrastructure filenames skipped at any depth,
	// e.g. "__init__.py" and "conftest.py".
	Exclude []string
}

// Snippets returns snippet files under root. If explicit paths are
// provided they are validated and returned in the order given. Otherwise
// root is walked recursively and results are deduplicated and sorted by
// full path so repeated runs produce identical ordering.
func Snippets(root string, opts Options, explicit []string) ([]snippet.File, error) {
	if len(explicit) > 0 {
		return resolveExplicit(root, explicit)
	}

	if _, err := os.Stat(root); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat snippets root %q: %w", root, err)
	}

	excluded := make(map[string]struct{}, len(opts.Exclude))
	for _, name := range opts.Exclude {
		excluded[name] = struct{}{}
	}

	matches := make(map[string]struct{})
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if !hasSuffix(name, opts.Suffix) {
			return nil
		}
		if _, skip := excluded[name]; skip {
			return nil
		}
		matches[path] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk snippets root %q: %w", root, err)
	}

	paths := make([]string, 0, len(matches))
	for p := range matches {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	files := make([]snippet.File, 0, len(paths))
	for _, p := range paths {
		files = append(files, snippet.File{Path: p, ID: snippet.Identify(root, p)})
	}
	return files, nil
}

func resolveExplicit(root string, explicit []string) ([]snippet.File, error) {
	seen := make(map[string]struct{})
	resolved := make([]snippet.File, 0, len(explicit))
	for _, input := range explicit {
		cleaned := strings.TrimSpace(input)
		if cleaned == "" {
			continue
		}
		if !filepath.IsAbs(cleaned) {
			cleaned = filepath.Join(root, cleaned)
		}
		info, err := os.Stat(cleaned)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("snippet %q not found", input)
			}
			return nil, fmt.Errorf("stat %q: %w", input, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("snippet %q is a directory", input)
		}
		id := snippet.Identify(root, cleaned)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		resolved = append(resolved, snippet.File{Path: cleaned, ID: id})
	}
	if len(resolved) == 0 {
		return nil, ErrNoSnippets
	}
	return resolved, nil
}

func hasSuffix(name, suffix string) bool {
	if suffix == "" {
		return true
	}
	return len(name) > len(suffix) && name[len(name)-len(suffix):] == suffix
}
