package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "snipcheck",
		Short:         "Snipcheck verifies runnable documentation snippets",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	persistent := cmd.PersistentFlags()
	persistent.String("snippets-dir", "", "directory scanned for snippet files")
	persistent.String("docs-dir", "", "documentation root scanned for markdown")
	persistent.String("interpreter", "", "interpreter used to run snippets")
	persistent.Int("timeout", 0, "per-check timeout in seconds")
	persistent.StringArray("snippet", nil, "snippet file to include (repeatable)")
	persistent.StringArray("only", nil, "include only snippets matching pattern")
	persistent.StringArray("skip", nil, "exclude snippets matching pattern")
	persistent.String("check", "", "checks to run (exec|import|all)")
	persistent.Bool("dry-run", false, "print checks without executing them")
	persistent.BoolP("verbose", "v", false, "stream snippet output in real time")
	persistent.Bool("record", false, "record the run in the history database")
	persistent.String("format", "pretty", "output format (pretty|json)")

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newVerifyCmd())
	cmd.AddCommand(newBlocksCmd())
	cmd.AddCommand(newHistoryCmd())

	return cmd
}
