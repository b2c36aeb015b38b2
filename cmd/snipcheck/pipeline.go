package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bgricker/snipcheck/internal/config"
	"github.com/bgricker/snipcheck/internal/discovery"
	"github.com/bgricker/snipcheck/internal/filter"
	"github.com/bgricker/snipcheck/internal/report"
	"github.com/bgricker/snipcheck/internal/snippet"
	"github.com/bgricker/snipcheck/internal/version"
	"github.com/spf13/cobra"
)

func loadConfig(cmd *cobra.Command) (config.Config, string, error) {
	root, err := os.Getwd()
	if err != nil {
		return config.Config{}, "", fmt.Errorf("determine working directory: %w", err)
	}

	cfg, err := config.Load(root)
	if err != nil {
		return config.Config{}, "", err
	}

	flags, err := gatherFlags(cmd)
	if err != nil {
		return config.Config{}, "", err
	}
	config.ApplyFlags(&cfg, flags)

	return cfg, root, nil
}

// snippetsRoot resolves the snippets directory against the project root.
func snippetsRoot(root string, cfg config.Config) string {
	dir := cfg.SnippetsDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	return dir
}

func docsRoot(root string, cfg config.Config) string {
	dir := cfg.DocsDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	return dir
}

// discoverSnippets runs discovery and applies the only/skip filters.
func discoverSnippets(root string, cfg config.Config) ([]snippet.File, error) {
	opts := discovery.Options{Suffix: cfg.Suffix, Exclude: cfg.Exclude}
	files, err := discovery.Snippets(snippetsRoot(root, cfg), opts, cfg.Snippets)
	if err != nil {
		return nil, err
	}

	onlyPatterns, err := filter.Compile(cfg.Only)
	if err != nil {
		return nil, err
	}
	skipPatterns, err := filter.Compile(cfg.Skip)
	if err != nil {
		return nil, err
	}

	return filter.Apply(files, onlyPatterns, skipPatterns), nil
}

// checksFor maps the check selector to runner check names.
func checksFor(cfg config.Config) ([]string, error) {
	switch strings.ToLower(cfg.Check) {
	case "", config.CheckAll:
		return []string{report.CheckExec, report.CheckImport}, nil
	case config.CheckExec:
		return []string{report.CheckExec}, nil
	case config.CheckImport:
		return []string{report.CheckImport}, nil
	default:
		return nil, fmt.Errorf("unsupported check %q", cfg.Check)
	}
}

// detectInterpreterWarnings reports a missing interpreter binary and a
// mismatch against a .python-version pin when one exists.
func detectInterpreterWarnings(root string, cfg config.Config) []string {
	if !cfg.Warn.InterpreterMismatch {
		return nil
	}

	info, detectErr := version.DetectInterpreter(cfg.Interpreter)
	if detectErr != nil {
		if version.Missing(detectErr) {
			return []string{fmt.Sprintf("interpreter %q not found on PATH", cfg.Interpreter)}
		}
		return []string{fmt.Sprintf("unable to detect %s version: %v", cfg.Interpreter, detectErr)}
	}

	pinPath := filepath.Join(root, ".python-version")
	contents, err := os.ReadFile(pinPath)
	if err != nil {
		return nil
	}
	required := strings.TrimSpace(string(contents))
	if required == "" {
		return nil
	}
	if !version.CompareMajorMinor(required, info.Version) {
		return []string{fmt.Sprintf("interpreter version mismatch: required %s (from .python-version) but %s is %s", required, cfg.Interpreter, info.Version)}
	}
	return nil
}
