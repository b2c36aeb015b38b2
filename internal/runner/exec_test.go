package runner

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/bgricker/snipcheck/internal/report"
	"github.com/bgricker/snipcheck/internal/snippet"
)

// The exec check is interpreter-agnostic, so these tests drive it with sh
// and shell-script snippets to stay independent of a python install.
func shRunner(t *testing.T, opts Options) *Runner {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("exec tests require a POSIX shell")
	}
	opts.Interpreter = "sh"
	opts.Suffix = ".sh"
	if len(opts.Checks) == 0 {
		opts.Checks = []string{report.CheckExec}
	}
	return New(opts)
}

func writeSnippet(t *testing.T, root, name, body string) snippet.File {
	t.Helper()
	path := filepath.Join(root, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write snippet %s: %v", name, err)
	}
	return snippet.File{Path: path, ID: name}
}

func TestRunExecSuccess(t *testing.T) {
	root := t.TempDir()
	r := shRunner(t, Options{Root: root})
	f := writeSnippet(t, root, "ok.sh", "echo ok\n")

	results, summary, err := r.Run([]snippet.File{f})
	if err != nil {
		t.Fatalf("runner Run: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Status != report.StatusPassed {
		t.Fatalf("expected pass, got %+v", results[0])
	}
	if strings.TrimSpace(results[0].Stdout) != "ok" {
		t.Fatalf("expected stdout 'ok', got %q", results[0].Stdout)
	}
	if summary.Passed != 1 || summary.ExitCode != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestRunExecFailureCapturesStreams(t *testing.T) {
	root := t.TempDir()
	r := shRunner(t, Options{Root: root})
	f := writeSnippet(t, root, "bad.sh", "echo partial\necho broken >&2\nexit 3\n")

	results, summary, err := r.Run([]snippet.File{f})
	if err != nil {
		t.Fatalf("runner Run: %v", err)
	}

	result := results[0]
	if result.Status != report.StatusFailed {
		t.Fatalf("expected failure, got %+v", result)
	}
	if result.Reason != report.ReasonExecFailure {
		t.Fatalf("expected execution_failure reason, got %q", result.Reason)
	}
	if result.ExitCode != 3 {
		t.Fatalf("expected exit code 3, got %d", result.ExitCode)
	}
	for _, want := range []string{"bad.sh", "exit 3", "stdout:", "partial", "stderr:", "broken"} {
		if !strings.Contains(result.Message, want) {
			t.Fatalf("message missing %q:\n%s", want, result.Message)
		}
	}
	if summary.Failed != 1 || summary.ExitCode != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestRunExecTimeoutIsDistinct(t *testing.T) {
	root := t.TempDir()
	r := shRunner(t, Options{Root: root, Timeout: 200 * time.Millisecond})
	f := writeSnippet(t, root, "slow.sh", "sleep 5\n")

	results, summary, err := r.Run([]snippet.File{f})
	if err != nil {
		t.Fatalf("runner Run: %v", err)
	}

	result := results[0]
	if result.Status != report.StatusFailed {
		t.Fatalf("expected failure, got %+v", result)
	}
	if result.Reason != report.ReasonTimeout || !result.TimedOut {
		t.Fatalf("expected distinct timeout failure, got %+v", result)
	}
	if !strings.Contains(result.Message, "timed out") {
		t.Fatalf("expected timeout message, got %q", result.Message)
	}
	if summary.Failed != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestRunFailureDoesNotAbortRun(t *testing.T) {
	root := t.TempDir()
	r := shRunner(t, Options{Root: root})
	bad := writeSnippet(t, root, "a_bad.sh", "exit 1\n")
	good := writeSnippet(t, root, "b_good.sh", "echo ok\n")

	results, summary, err := r.Run([]snippet.File{bad, good})
	if err != nil {
		t.Fatalf("runner Run: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Status != report.StatusFailed || results[1].Status != report.StatusPassed {
		t.Fatalf("failure leaked into the next snippet: %+v", results)
	}
	if summary.Passed != 1 || summary.Failed != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestRunWorkingDirectoryIsRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "fixture.txt"), []byte("data"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	r := shRunner(t, Options{Root: root})
	f := writeSnippet(t, root, "reads.sh", "cat fixture.txt\n")

	results, _, err := r.Run([]snippet.File{f})
	if err != nil {
		t.Fatalf("runner Run: %v", err)
	}
	if results[0].Status != report.StatusPassed || !strings.Contains(results[0].Stdout, "data") {
		t.Fatalf("expected fixture read relative to root, got %+v", results[0])
	}
}

func TestRunDryRun(t *testing.T) {
	root := t.TempDir()
	r := New(Options{Root: root, DryRun: true})
	f := snippet.File{Path: filepath.Join(root, "a.py"), ID: "a.py"}

	results, summary, err := r.Run([]snippet.File{f})
	if err != nil {
		t.Fatalf("runner Run: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected exec and import results, got %d", len(results))
	}
	for _, result := range results {
		if result.Status != report.StatusSkipped || !result.DryRun {
			t.Fatalf("expected skipped dry run, got %+v", result)
		}
	}
	if summary.Skipped != 2 || summary.TotalChecks != 2 || summary.TotalSnippets != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestTailLines(t *testing.T) {
	if got := tailLines("1\n2\n3\n", 2); got != "2\n3" {
		t.Fatalf("tailLines = %q", got)
	}
	if got := tailLines("1\n2", 5); got != "1\n2" {
		t.Fatalf("tailLines short input = %q", got)
	}
	if got := tailLines("", 5); got != "" {
		t.Fatalf("tailLines empty = %q", got)
	}
}
