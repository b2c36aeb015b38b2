package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/bgricker/snipcheck/internal/config"
	"github.com/bgricker/snipcheck/internal/history"
	"github.com/bgricker/snipcheck/internal/output"
	"github.com/bgricker/snipcheck/internal/report"
	"github.com/bgricker/snipcheck/internal/runner"
	"github.com/spf13/cobra"
)

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Run execution and import checks on every snippet",
		RunE:  runVerify,
	}
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, root, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	checks, err := checksFor(cfg)
	if err != nil {
		return err
	}

	files, err := discoverSnippets(root, cfg)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No snippets found")
		return nil
	}

	warnings := detectInterpreterWarnings(root, cfg)

	execRunner := runner.New(runner.Options{
		Root:        snippetsRoot(root, cfg),
		Interpreter: cfg.Interpreter,
		Timeout:     cfg.Timeout(),
		Suffix:      cfg.Suffix,
		Checks:      checks,
		Stdout:      cmd.OutOrStdout(),
		Stderr:      cmd.ErrOrStderr(),
		Verbose:     cfg.Verbose,
		DryRun:      cfg.DryRun,
	})
	results, summary, err := execRunner.Run(files)
	if err != nil {
		return err
	}

	if cfg.History.Enabled {
		if recordErr := recordRun(root, cfg, results, summary); recordErr != nil {
			warnings = append(warnings, fmt.Sprintf("record history: %v", recordErr))
		}
	}

	switch strings.ToLower(cfg.Format) {
	case config.FormatPretty:
		renderer := output.NewPretty(cmd.OutOrStdout())
		if err := renderer.RenderResults(results, summary); err != nil {
			return err
		}
		for _, msg := range warnings {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", msg)
		}
	case config.FormatJSON:
		renderer := output.NewJSON(cmd.OutOrStdout())
		if err := renderer.Render(output.Report{
			SnippetsDir: cfg.SnippetsDir,
			Interpreter: cfg.Interpreter,
			Checks:      results,
			Summary:     summary,
			Warnings:    warnings,
		}); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q", cfg.Format)
	}

	if summary.ExitCode != 0 {
		return fmt.Errorf("one or more snippet checks failed")
	}

	return nil
}

func recordRun(root string, cfg config.Config, results []report.CheckResult, summary report.Summary) error {
	path := cfg.History.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	var failed []string
	for _, result := range results {
		if result.Status == report.StatusFailed {
			failed = append(failed, fmt.Sprintf("%s [%s]", result.SnippetID, result.Check))
		}
	}

	return store.Append(&history.Entry{
		RecordedAt:    time.Now().UTC(),
		SnippetsDir:   cfg.SnippetsDir,
		Interpreter:   cfg.Interpreter,
		TotalSnippets: summary.TotalSnippets,
		TotalChecks:   summary.TotalChecks,
		Passed:        summary.Passed,
		Failed:        summary.Failed,
		Skipped:       summary.Skipped,
		DurationMS:    summary.DurationMS,
		FailedChecks:  failed,
	})
}
