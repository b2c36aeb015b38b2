package discovery

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

var testOpts = Options{
	Suffix:  ".py",
	Exclude: []string{"__init__.py", "conftest.py"},
}

func TestSnippetsScan(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.py"))
	writeFile(t, filepath.Join(root, "a.py"))
	writeFile(t, filepath.Join(root, "__init__.py"))
	writeFile(t, filepath.Join(root, "conftest.py"))
	writeFile(t, filepath.Join(root, "notes.txt"))
	if err := os.MkdirAll(filepath.Join(root, "nested"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(root, "nested", "c.py"))
	writeFile(t, filepath.Join(root, "nested", "__init__.py"))
	writeFile(t, filepath.Join(root, "nested", "conftest.py"))

	got, err := Snippets(root, testOpts, nil)
	if err != nil {
		t.Fatalf("Snippets returned error: %v", err)
	}

	want := []string{"a.py", "b.py", filepath.Join("nested", "c.py")}
	if len(got) != len(want) {
		t.Fatalf("expected %d files, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("index %d: want ID %q, got %q", i, want[i], got[i].ID)
		}
		if !filepath.IsAbs(got[i].Path) {
			t.Fatalf("expected absolute path, got %q", got[i].Path)
		}
	}

	ids := make(map[string]struct{})
	for _, f := range got {
		if _, dup := ids[f.ID]; dup {
			t.Fatalf("duplicate identifier %q", f.ID)
		}
		ids[f.ID] = struct{}{}
	}
}

func TestSnippetsStableOrdering(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"z.py", "m.py", "a.py"} {
		writeFile(t, filepath.Join(root, name))
	}

	first, err := Snippets(root, testOpts, nil)
	if err != nil {
		t.Fatalf("first scan: %v", err)
	}
	second, err := Snippets(root, testOpts, nil)
	if err != nil {
		t.Fatalf("second scan: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("scan lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("index %d differs between scans: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestSnippetsEmptyAndMissingRoot(t *testing.T) {
	root := t.TempDir()

	got, err := Snippets(root, testOpts, nil)
	if err != nil {
		t.Fatalf("empty root should not error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected zero snippets, got %d", len(got))
	}

	got, err = Snippets(filepath.Join(root, "does-not-exist"), testOpts, nil)
	if err != nil {
		t.Fatalf("missing root should not error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected zero snippets for missing root, got %d", len(got))
	}
}

func TestSnippetsExplicit(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.py"))

	externalDir := t.TempDir()
	absOutside := filepath.Join(externalDir, "external.py")
	writeFile(t, absOutside)

	got, err := Snippets(root, testOpts, []string{"a.py", absOutside, "a.py"})
	if err != nil {
		t.Fatalf("Snippets returned error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 files, got %d: %+v", len(got), got)
	}
	if got[0].ID != "a.py" {
		t.Fatalf("first ID mismatch: got %q", got[0].ID)
	}
	if got[1].ID != absOutside {
		t.Fatalf("second ID mismatch: got %q want %q", got[1].ID, absOutside)
	}
}

func TestSnippetsExplicitErrors(t *testing.T) {
	root := t.TempDir()

	if _, err := Snippets(root, testOpts, []string{"missing.py"}); err == nil {
		t.Fatalf("expected error for missing file")
	}

	dir := filepath.Join(root, "dir.py")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if _, err := Snippets(root, testOpts, []string{"dir.py"}); err == nil {
		t.Fatalf("expected error for directory input")
	}

	if _, err := Snippets(root, testOpts, []string{"", "  "}); !errors.Is(err, ErrNoSnippets) {
		t.Fatalf("expected ErrNoSnippets, got %v", err)
	}
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("print('ok')\n"), 0o644); err != nil {
		t.Fatalf("write file %s: %v", path, err)
	}
}
