package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/bgricker/snipcheck/internal/markdown"
	"github.com/bgricker/snipcheck/internal/report"
	"github.com/bgricker/snipcheck/internal/snippet"
)

// PrettyRenderer renders verification results in a human-friendly format.
// Color is applied only when the destination is a terminal.
type PrettyRenderer struct {
	out  io.Writer
	pass func(a ...interface{}) string
	fail func(a ...interface{}) string
	skip func(a ...interface{}) string
	dim  func(a ...interface{}) string
}

// NewPretty creates a PrettyRenderer writing to the provided writer.
func NewPretty(out io.Writer) *PrettyRenderer {
	colored := false
	if f, ok := out.(*os.File); ok {
		colored = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return newPretty(out, colored)
}

func newPretty(out io.Writer, colored bool) *PrettyRenderer {
	plain := func(a ...interface{}) string { return fmt.Sprint(a...) }
	p := &PrettyRenderer{out: out, pass: plain, fail: plain, skip: plain, dim: plain}
	if colored {
		p.pass = color.New(color.FgGreen).SprintFunc()
		p.fail = color.New(color.FgRed).SprintFunc()
		p.skip = color.New(color.FgYellow).SprintFunc()
		p.dim = color.New(color.Faint).SprintFunc()
	}
	return p
}

// RenderList renders discovered snippet identifiers.
func (p *PrettyRenderer) RenderList(files []snippet.File) error {
	for _, f := range files {
		if _, err := fmt.Fprintf(p.out, "%s\n", f.ID); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(p.out, "\n%d snippets\n", len(files))
	return err
}

// RenderResults shows check outcomes per snippet with a summary line.
func (p *PrettyRenderer) RenderResults(results []report.CheckResult, summary report.Summary) error {
	for _, result := range results {
		label := fmt.Sprintf("%s [%s]", result.SnippetID, result.Check)
		switch result.Status {
		case report.StatusPassed:
			if _, err := fmt.Fprintf(p.out, "%s %s %s\n", p.pass("PASS"), label, p.dim(fmt.Sprintf("(%dms)", result.DurationMS))); err != nil {
				return err
			}
		case report.StatusSkipped:
			if _, err := fmt.Fprintf(p.out, "%s %s\n", p.skip("SKIP"), label); err != nil {
				return err
			}
		default:
			reason := result.Reason
			if _, err := fmt.Fprintf(p.out, "%s %s %s\n", p.fail("FAIL"), label, p.dim("("+reason+")")); err != nil {
				return err
			}
			if result.Message != "" {
				if _, err := fmt.Fprintln(p.out, indent(result.Message, "    ")); err != nil {
					return err
				}
			}
		}
	}

	_, err := fmt.Fprintf(p.out, "\n%d snippets, %d checks: %s, %s, %s in %dms\n",
		summary.TotalSnippets,
		summary.TotalChecks,
		p.pass(fmt.Sprintf("%d passed", summary.Passed)),
		p.fail(fmt.Sprintf("%d failed", summary.Failed)),
		p.skip(fmt.Sprintf("%d skipped", summary.Skipped)),
		summary.DurationMS,
	)
	return err
}

// RenderBlocks shows fenced code blocks found in the documentation tree.
func (p *PrettyRenderer) RenderBlocks(blocks []markdown.Block, counts map[string]int) error {
	for _, b := range blocks {
		lang := b.Language
		if lang == "" {
			lang = "plain"
		}
		if _, err := fmt.Fprintf(p.out, "%s:%d %s\n", b.File, b.Line, p.dim(lang)); err != nil {
			return err
		}
	}
	if len(counts) == 0 {
		_, err := fmt.Fprintln(p.out, "No fenced code blocks found")
		return err
	}
	if _, err := fmt.Fprintln(p.out); err != nil {
		return err
	}
	for _, lang := range sortedKeys(counts) {
		label := lang
		if label == "" {
			label = "plain"
		}
		if _, err := fmt.Fprintf(p.out, "%s: %d\n", label, counts[lang]); err != nil {
			return err
		}
	}
	return nil
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
