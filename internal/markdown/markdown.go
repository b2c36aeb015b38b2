// Package markdown scans documentation markdown for fenced code blocks so
// inline examples that bypass the snippet harness can be surfaced.
package markdown

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Block describes one fenced code block found in a markdown file.
type Block struct {
	// File is the path relative to the scanned documentation root.
	File string `json:"file"`
	// Line is the 1-based line of the opening fence, 0 when the block is
	// empty and carries no info string.
	Line     int    `json:"line"`
	Language string `json:"language,omitempty"`
	Body     string `json:"-"`
}

// Scanner extracts fenced code blocks from markdown trees.
type Scanner struct {
	markdown goldmark.Markdown
}

// NewScanner creates a Scanner with a default goldmark parser.
func NewScanner() *Scanner {
	return &Scanner{markdown: goldmark.New()}
}

// ScanTree walks root for markdown files and returns their fenced code
// blocks in walk order. A missing root yields an empty result.
func (s *Scanner) ScanTree(root string) ([]Block, error) {
	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat docs root %q: %w", root, err)
	}

	var blocks []Block
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		if ext != ".md" && ext != ".markdown" {
			return nil
		}
		source, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %q: %w", path, err)
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		fileBlocks, err := s.scan(rel, source)
		if err != nil {
			return err
		}
		blocks = append(blocks, fileBlocks...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk docs root %q: %w", root, err)
	}
	return blocks, nil
}

func (s *Scanner) scan(file string, source []byte) ([]Block, error) {
	doc := s.markdown.Parser().Parse(text.NewReader(source))

	var blocks []Block
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		block := Block{File: file}
		if lang := fcb.Language(source); lang != nil {
			block.Language = string(lang)
		}
		block.Line = fenceLine(fcb, source)

		var body bytes.Buffer
		lines := fcb.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			body.Write(seg.Value(source))
		}
		block.Body = body.String()

		blocks = append(blocks, block)
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk markdown %q: %w", file, err)
	}
	return blocks, nil
}

// fenceLine locates the opening fence. The AST keeps offsets only for the
// info string and the body, so the fence line is derived from whichever is
// present.
func fenceLine(fcb *ast.FencedCodeBlock, source []byte) int {
	if fcb.Info != nil {
		return lineAt(source, fcb.Info.Segment.Start)
	}
	if fcb.Lines().Len() > 0 {
		return lineAt(source, fcb.Lines().At(0).Start) - 1
	}
	return 0
}

func lineAt(source []byte, offset int) int {
	if offset > len(source) {
		offset = len(source)
	}
	return bytes.Count(source[:offset], []byte("\n")) + 1
}

// Counts aggregates blocks per language label. Blocks without an info
// string count under the empty key.
func Counts(blocks []Block) map[string]int {
	counts := make(map[string]int, len(blocks))
	for _, b := range blocks {
		counts[b.Language]++
	}
	return counts
}
