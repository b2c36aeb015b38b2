package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bgricker/snipcheck/internal/config"
	"github.com/bgricker/snipcheck/internal/history"
	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded verification runs",
		RunE:  runHistory,
	}
	cmd.Flags().Int("limit", 20, "maximum number of runs to show")
	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, root, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return fmt.Errorf("parse --limit: %w", err)
	}

	path := cfg.History.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	store, err := history.Open(path)
	if err != nil {
		return fmt.Errorf("open history %q: %w", path, err)
	}
	defer store.Close()

	entries, err := store.Recent(limit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No recorded runs")
		return nil
	}

	switch strings.ToLower(cfg.Format) {
	case config.FormatPretty:
		for _, e := range entries {
			fmt.Fprintf(cmd.OutOrStdout(), "#%d %s  %d snippets  %d passed  %d failed  %d skipped  %dms\n",
				e.ID, e.RecordedAt.Format("2006-01-02 15:04:05"), e.TotalSnippets, e.Passed, e.Failed, e.Skipped, e.DurationMS)
			for _, check := range e.FailedChecks {
				fmt.Fprintf(cmd.OutOrStdout(), "    failed: %s\n", check)
			}
		}
		return nil
	case config.FormatJSON:
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	default:
		return fmt.Errorf("unsupported format %q", cfg.Format)
	}
}
