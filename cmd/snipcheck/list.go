package main

import (
	"fmt"
	"strings"

	"github.com/bgricker/snipcheck/internal/config"
	"github.com/bgricker/snipcheck/internal/output"
	"github.com/bgricker/snipcheck/internal/report"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List discovered snippet files",
		RunE:  runList,
	}
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, root, err := loadConfig(cmd)
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

	switch strings.ToLower(cfg.Format) {
	case config.FormatPretty:
		renderer := output.NewPretty(cmd.OutOrStdout())
		return renderer.RenderList(files)
	case config.FormatJSON:
		renderer := output.NewJSON(cmd.OutOrStdout())
		return renderer.Render(output.Report{
			SnippetsDir: cfg.SnippetsDir,
			Interpreter: cfg.Interpreter,
			Snippets:    files,
			Summary:     report.Summary{TotalSnippets: len(files)},
		})
	default:
		return fmt.Errorf("unsupported format %q", cfg.Format)
	}
}
