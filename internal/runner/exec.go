package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/bgricker/snipcheck/internal/report"
	"github.com/bgricker/snipcheck/internal/snippet"
)

// DefaultTimeout bounds each check subprocess. Generous because some
// documentation examples run optimization loops.
const DefaultTimeout = 120 * time.Second

// Options configure how the runner verifies snippets.
type Options struct {
	// Root is the snippets directory; every check runs with it as the
	// working directory so relative fixture paths inside snippets resolve.
	Root        string
	Interpreter string
	Timeout     time.Duration
	Suffix      string
	Checks      []string
	Stdout      io.Writer
	Stderr      io.Writer
	Verbose     bool
	DryRun      bool
	TailLines   int
	Env         []string
	Now         func() time.Time
	// ModuleID synthesizes the unique module name for the import check.
	// Overridable for tests; defaults to a uuid-suffixed name.
	ModuleID func(stem string) string
}

// Runner verifies snippets sequentially, one check at a time.
type Runner struct {
	opts Options
}

// New creates a runner with the supplied options.
func New(opts Options) *Runner {
	if opts.Interpreter == "" {
		opts.Interpreter = "python3"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Suffix == "" {
		opts.Suffix = ".py"
	}
	if len(opts.Checks) == 0 {
		opts.Checks = []string{report.CheckExec, report.CheckImport}
	}
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	if opts.Stderr == nil {
		opts.Stderr = io.Discard
	}
	if opts.TailLines <= 0 {
		opts.TailLines = 50
	}
	if opts.Env == nil {
		opts.Env = os.Environ()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ModuleID == nil {
		opts.ModuleID = defaultModuleID
	}
	opts.Checks = append([]string{}, opts.Checks...)
	return &Runner{opts: opts}
}

// Run verifies the provided snippets, returning one result per check per
// snippet in discovery order, exec before import. A failing check never
// aborts the run; failures are scoped to their snippet.
func (r *Runner) Run(files []snippet.File) ([]report.CheckResult, report.Summary, error) {
	summary := report.Summary{TotalSnippets: len(files)}
	results := make([]report.CheckResult, 0, len(files)*len(r.opts.Checks))

	for _, f := range files {
		for _, check := range r.opts.Checks {
			summary.TotalChecks++

			result := report.CheckResult{
				SnippetID: f.ID,
				Path:      f.Path,
				Check:     check,
				DryRun:    r.opts.DryRun,
			}

			if r.opts.DryRun {
				result.Status = report.StatusSkipped
				summary.Skipped++
				results = append(results, result)
				continue
			}

			start := r.opts.Now()
			r.runCheck(f, check, &result)
			result.Duration = r.opts.Now().Sub(start)
			result.DurationMS = result.Duration.Milliseconds()

			if result.Status == report.StatusFailed {
				result.Stdout = tailLines(result.Stdout, r.opts.TailLines)
				result.Stderr = tailLines(result.Stderr, r.opts.TailLines)
				result.Message = failureMessage(f, result)
				summary.Failed++
				summary.ExitCode = 1
			} else {
				summary.Passed++
			}

			summary.Duration += result.Duration
			results = append(results, result)
		}
	}

	summary.DurationMS = summary.Duration.Milliseconds()
	return results, summary, nil
}

func (r *Runner) runCheck(f snippet.File, check string, result *report.CheckResult) {
	var args []string
	switch check {
	case report.CheckExec:
		args = []string{f.Path}
	case report.CheckImport:
		args = []string{"-c", importProgram, f.Path, r.opts.ModuleID(f.Stem(r.opts.Suffix))}
	default:
		result.Status = report.StatusFailed
		result.Reason = report.ReasonExecFailure
		result.Stderr = fmt.Sprintf("unknown check %q", check)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.opts.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.opts.Interpreter, args...)
	cmd.Dir = r.opts.Root
	cmd.Env = r.opts.Env

	var stdoutBuf, stderrBuf strings.Builder
	if r.opts.Verbose {
		cmd.Stdout = io.MultiWriter(r.opts.Stdout, &stdoutBuf)
		cmd.Stderr = io.MultiWriter(r.opts.Stderr, &stderrBuf)
	} else {
		cmd.Stdout = &stdoutBuf
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	result.Stdout = stdoutBuf.String()
	result.Stderr = stderrBuf.String()
	result.ExitCode = exitCode(err)

	if ctx.Err() == context.DeadlineExceeded {
		result.Status = report.StatusFailed
		result.Reason = report.ReasonTimeout
		result.TimedOut = true
		return
	}
	if err != nil {
		result.Status = report.StatusFailed
		result.Reason = failureReason(check, result.ExitCode)
		return
	}
	result.Status = report.StatusPassed
}

// failureReason classifies a nonzero exit. The import
// loader exits 3 when it cannot build a loader for the file and 1 when
// top-level execution raises; any other nonzero exit (a snippet calling
// sys.exit during import) still counts as an import failure.
func failureReason(check string, exitCode int) string {
	if check == report.CheckImport {
		if exitCode == importLoadFailureExit {
			return report.ReasonLoadFailure
		}
		return report.ReasonImportFailure
	}
	return report.ReasonExecFailure
}

func failureMessage(f snippet.File, result report.CheckResult) string {
	var sb strings.Builder
	switch {
	case result.TimedOut:
		fmt.Fprintf(&sb, "snippet %s timed out during the %s check\n", f.ID, result.Check)
	case result.Reason == report.ReasonLoadFailure:
		fmt.Fprintf(&sb, "snippet %s could not be loaded\n", f.ID)
	case result.Check == report.CheckImport:
		fmt.Fprintf(&sb, "snippet %s failed to import\n", f.ID)
	default:
		fmt.Fprintf(&sb, "snippet %s failed to execute (exit %d)\n", f.ID, result.ExitCode)
	}
	fmt.Fprintf(&sb, "stdout:\n%s\n", result.Stdout)
	fmt.Fprintf(&sb, "stderr:\n%s", result.Stderr)
	return sb.String()
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}

func tailLines(input string, maxLines int) string {
	if input == "" {
		return ""
	}
	lines := strings.Split(strings.TrimRight(input, "\n"), "\n")
	if len(lines) <= maxLines {
		return strings.Join(lines, "\n")
	}
	return strings.Join(lines[len(lines)-maxLines:], "\n")
}
