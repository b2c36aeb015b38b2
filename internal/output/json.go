package output

import (
	"encoding/json"
	"io"

	"github.com/bgricker/snipcheck/internal/markdown"
	"github.com/bgricker/snipcheck/internal/report"
	"github.com/bgricker/snipcheck/internal/snippet"
)

// JSONRenderer emits structured verification data.
type JSONRenderer struct {
	out io.Writer
}

// NewJSON creates a JSON renderer writing to out.
func NewJSON(out io.Writer) *JSONRenderer {
	return &JSONRenderer{out: out}
}

// Report captures JSON output schema.
type Report struct {
	SnippetsDir string               `json:"snippets_dir,omitempty"`
	Interpreter string               `json:"interpreter,omitempty"`
	Snippets    []snippet.File       `json:"snippets,omitempty"`
	Checks      []report.CheckResult `json:"checks,omitempty"`
	Blocks      []markdown.Block     `json:"blocks,omitempty"`
	Summary     report.Summary       `json:"summary"`
	Warnings    []string             `json:"warnings,omitempty"`
}

// Render encodes the report as JSON.
func (j *JSONRenderer) Render(report Report) error {
	enc := json.NewEncoder(j.out)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
