package report

import "time"

// Check names.
const (
	CheckExec   = "exec"
	CheckImport = "import"
)

// Check statuses.
const (
	StatusPassed  = "passed"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// Failure reasons. Timeout is shared by both checks since each runs as a
// bounded subprocess.
const (
	ReasonExecFailure   = "execution_failure"
	ReasonTimeout       = "timeout"
	ReasonLoadFailure   = "load_failure"
	ReasonImportFailure = "import_failure"
)

// CheckResult captures the outcome of a single check on a single snippet.
type CheckResult struct {
	SnippetID  string        `json:"snippet_id"`
	Path       string        `json:"path"`
	Check      string        `json:"check"`
	Status     string        `json:"status"`
	Reason     string        `json:"reason,omitempty"`
	ExitCode   int           `json:"exit_code"`
	Stdout     string        `json:"stdout,omitempty"`
	Stderr     string        `json:"stderr,omitempty"`
	TimedOut   bool          `json:"timed_out,omitempty"`
	Message    string        `json:"message,omitempty"`
	Duration   time.Duration `json:"-"`
	DurationMS int64         `json:"duration_ms"`
	DryRun     bool          `json:"dry_run,omitempty"`
}

// Summary aggregates a verification run.
type Summary struct {
	TotalSnippets int           `json:"total_snippets"`
	TotalChecks   int           `json:"total_checks"`
	Passed        int           `json:"passed"`
	Failed        int           `json:"failed"`
	Skipped       int           `json:"skipped"`
	Duration      time.Duration `json:"-"`
	DurationMS    int64         `json:"duration_ms"`
	ExitCode      int           `json:"exit_code"`
}
