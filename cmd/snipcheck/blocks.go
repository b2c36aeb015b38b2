package main

import (
	"fmt"
	"strings"

	"github.com/bgricker/snipcheck/internal/config"
	"github.com/bgricker/snipcheck/internal/markdown"
	"github.com/bgricker/snipcheck/internal/output"
	"github.com/spf13/cobra"
)

func newBlocksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "blocks",
		Short: "Scan documentation markdown for fenced code blocks",
		Long: "Scan documentation markdown for fenced code blocks and warn " +
			"about inline python examples, which are invisible to snippet " +
			"verification.",
		RunE: runBlocks,
	}
}

func runBlocks(cmd *cobra.Command, args []string) error {
	cfg, root, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	scanner := markdown.NewScanner()
	blocks, err := scanner.ScanTree(docsRoot(root, cfg))
	if err != nil {
		return err
	}

	warnings := inlinePythonWarnings(blocks)

	switch strings.ToLower(cfg.Format) {
	case config.FormatPretty:
		renderer := output.NewPretty(cmd.OutOrStdout())
		if err := renderer.RenderBlocks(blocks, markdown.Counts(blocks)); err != nil {
			return err
		}
		for _, msg := range warnings {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", msg)
		}
	case config.FormatJSON:
		renderer := output.NewJSON(cmd.OutOrStdout())
		if err := renderer.Render(output.Report{
			Blocks:   blocks,
			Warnings: warnings,
		}); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q", cfg.Format)
	}

	return nil
}

// inlinePythonWarnings flags python fences: they live outside the snippets
// tree, so nothing runs them and they rot silently.
func inlinePythonWarnings(blocks []markdown.Block) []string {
	var warnings []string
	for _, b := range blocks {
		lang := strings.ToLower(b.Language)
		if lang != "python" && lang != "py" && lang != "python3" {
			continue
		}
		warnings = append(warnings, fmt.Sprintf("inline python block at %s:%d is not covered by snippet verification", b.File, b.Line))
	}
	return warnings
}
