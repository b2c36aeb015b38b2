package main

import (
	"fmt"

	"github.com/bgricker/snipcheck/internal/config"
	"github.com/spf13/cobra"
)

func gatherFlags(cmd *cobra.Command) (config.FlagValues, error) {
	flags := cmd.Flags()
	var values config.FlagValues

	if flags.Changed("snippets-dir") {
		v, err := flags.GetString("snippets-dir")
		if err != nil {
			return values, fmt.Errorf("parse --snippets-dir: %w", err)
		}
		values.SnippetsDir = config.StringFlag{Value: v, Set: true}
	}

	if flags.Changed("docs-dir") {
		v, err := flags.GetString("docs-dir")
		if err != nil {
			return values, fmt.Errorf("parse --docs-dir: %w", err)
		}
		values.DocsDir = config.StringFlag{Value: v, Set: true}
	}

	if flags.Changed("interpreter") {
		v, err := flags.GetString("interpreter")
		if err != nil {
			return values, fmt.Errorf("parse --interpreter: %w", err)
		}
		values.Interpreter = config.StringFlag{Value: v, Set: true}
	}

	if flags.Changed("timeout") {
		v, err := flags.GetInt("timeout")
		if err != nil {
			return values, fmt.Errorf("parse --timeout: %w", err)
		}
		values.Timeout = config.IntFlag{Value: v, Set: true}
	}

	if flags.Changed("snippet") {
		v, err := flags.GetStringArray("snippet")
		if err != nil {
			return values, fmt.Errorf("parse --snippet: %w", err)
		}
		values.Snippets = config.SliceFlag{Values: append([]string{}, v...)}
	}

	if flags.Changed("only") {
		v, err := flags.GetStringArray("only")
		if err != nil {
			return values, fmt.Errorf("parse --only: %w", err)
		}
		values.Only = config.SliceFlag{Values: append([]string{}, v...)}
	}

	if flags.Changed("skip") {
		v, err := flags.GetStringArray("skip")
		if err != nil {
			return values, fmt.Errorf("parse --skip: %w", err)
		}
		values.Skip = config.SliceFlag{Values: append([]string{}, v...)}
	}

	if flags.Changed("check") {
		v, err := flags.GetString("check")
		if err != nil {
			return values, fmt.Errorf("parse --check: %w", err)
		}
		values.Check = config.StringFlag{Value: v, Set: true}
	}

	if flags.Changed("format") {
		v, err := flags.GetString("format")
		if err != nil {
			return values, fmt.Errorf("parse --format: %w", err)
		}
		values.Format = config.StringFlag{Value: v, Set: true}
	}

	if flags.Changed("dry-run") {
		v, err := flags.GetBool("dry-run")
		if err != nil {
			return values, fmt.Errorf("parse --dry-run: %w", err)
		}
		values.DryRun = config.BoolFlag{Value: v, Set: true}
	}

	if flags.Changed("verbose") {
		v, err := flags.GetBool("verbose")
		if err != nil {
			return values, fmt.Errorf("parse --verbose: %w", err)
		}
		values.Verbose = config.BoolFlag{Value: v, Set: true}
	}

	if flags.Changed("record") {
		v, err := flags.GetBool("record")
		if err != nil {
			return values, fmt.Errorf("parse --record: %w", err)
		}
		values.Record = config.BoolFlag{Value: v, Set: true}
	}

	return values, nil
}
