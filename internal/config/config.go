package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config captures CLI options sourced from config files or flags.
type Config struct {
	SnippetsDir string   `yaml:"snippets_dir"`
	DocsDir     string   `yaml:"docs_dir"`
	Suffix      string   `yaml:"suffix"`
	Exclude     []string `yaml:"exclude"`

	Interpreter    string `yaml:"interpreter"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`

	Snippets []string `yaml:"snippets"`
	Only     []string `yaml:"only"`
	Skip     []string `yaml:"skip"`

	Check   string `yaml:"check"`
	DryRun  bool   `yaml:"dry_run"`
	Verbose bool   `yaml:"verbose"`
	Format  string `yaml:"format"`

	History HistoryConfig `yaml:"history"`
	Warn    WarnConfig    `yaml:"warn"`
}

// HistoryConfig controls recording of verification runs.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// WarnConfig controls additional warning behaviour.
type WarnConfig struct {
	InterpreterMismatch bool `yaml:"interpreter_mismatch"`
}

const (
	// CheckExec runs only the isolated-execution check.
	CheckExec = "exec"
	// CheckImport runs only the import check.
	CheckImport = "import"
	// CheckAll runs both checks per snippet.
	CheckAll = "all"

	// FormatPretty renders human readable output.
	FormatPretty = "pretty"
	// FormatJSON renders machine readable output.
	FormatJSON = "json"
)

// Default returns the baseline configuration used when no flags or config file specify values.
func Default() Config {
	return Config{
		SnippetsDir:    filepath.Join("docs", "source", "_snippets"),
		DocsDir:        "docs",
		Suffix:         ".py",
		Exclude:        []string{"__init__.py", "conftest.py"},
		Interpreter:    "python3",
		TimeoutSeconds: 120,
		Check:          CheckAll,
		Format:         FormatPretty,
		History: HistoryConfig{
			Path: ".snipcheck.db",
		},
		Warn: WarnConfig{
			InterpreterMismatch: true,
		},
	}
}

// Timeout returns the per-check deadline.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Load reads .snipcheck.yml from the project root when present. Missing files are ignored.
func Load(root string) (Config, error) {
	cfg := Default()
	path := filepath.Join(root, ".snipcheck.yml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}

	cfg = merge(cfg, fileCfg)
	return cfg, nil
}

func merge(base, override Config) Config {
	out := base

	if override.SnippetsDir != "" {
		out.SnippetsDir = override.SnippetsDir
	}
	if override.DocsDir != "" {
		out.DocsDir = override.DocsDir
	}
	if override.Suffix != "" {
		out.Suffix = override.Suffix
	}
	if len(override.Exclude) > 0 {
		out.Exclude = append([]string{}, override.Exclude...)
	}
	if override.Interpreter != "" {
		out.Interpreter = override.Interpreter
	}
	if override.TimeoutSeconds > 0 {
		out.TimeoutSeconds = override.TimeoutSeconds
	}
	if len(override.Snippets) > 0 {
		out.Snippets = append([]string{}, override.Snippets...)
	}
	if len(override.Only) > 0 {
		out.Only = append([]string{}, override.Only...)
	}
	if len(override.Skip) > 0 {
		out.Skip = append([]string{}, override.Skip...)
	}
	if override.Check != "" {
		out.Check = override.Check
	}
	if override.Format != "" {
		out.Format = override.Format
	}
	if override.DryRun {
		out.DryRun = true
	}
	if override.Verbose {
		out.Verbose = true
	}
	if override.History.Enabled {
		out.History.Enabled = true
	}
	if override.History.Path != "" {
		out.History.Path = override.History.Path
	}
	if override.Warn.InterpreterMismatch {
		out.Warn.InterpreterMismatch = true
	}

	return out
}

// ApplyFlags mutates cfg by applying values from CLI flags when they are present.
func ApplyFlags(cfg *Config, flags FlagValues) {
	if flags.SnippetsDir.Set {
		cfg.SnippetsDir = flags.SnippetsDir.Value
	}
	if flags.DocsDir.Set {
		cfg.DocsDir = flags.DocsDir.Value
	}
	if flags.Interpreter.Set {
		cfg.Interpreter = flags.Interpreter.Value
	}
	if flags.Timeout.Set {
		cfg.TimeoutSeconds = flags.Timeout.Value
	}
	if len(flags.Snippets.Values) > 0 {
		cfg.Snippets = append([]string{}, flags.Snippets.Values...)
	}
	if len(flags.Only.Values) > 0 {
		cfg.Only = append([]string{}, flags.Only.Values...)
	}
	if len(flags.Skip.Values) > 0 {
		cfg.Skip = append([]string{}, flags.Skip.Values...)
	}
	if flags.Check.Set {
		cfg.Check = flags.Check.Value
	}
	if flags.Format.Set {
		cfg.Format = flags.Format.Value
	}
	if flags.DryRun.Set {
		cfg.DryRun = flags.DryRun.Value
	}
	if flags.Verbose.Set {
		cfg.Verbose = flags.Verbose.Value
	}
	if flags.Record.Set {
		cfg.History.Enabled = flags.Record.Value
	}
}

// FlagValues captures CLI flag state with knowledge of whether each flag was set explicitly.
type FlagValues struct {
	SnippetsDir StringFlag
	DocsDir     StringFlag
	Interpreter StringFlag
	Timeout     IntFlag
	Snippets    SliceFlag
	Only        SliceFlag
	Skip        SliceFlag
	Check       StringFlag
	Format      StringFlag
	DryRun      BoolFlag
	Verbose     BoolFlag
	Record      BoolFlag
}

// StringFlag represents a string flag and whether it was set.
type StringFlag struct {
	Value string
	Set   bool
}

// IntFlag represents an integer flag and whether it was set.
type IntFlag struct {
	Value int
	Set   bool
}

// SliceFlag represents a slice flag and whether it captured values via CLI.
type SliceFlag struct {
	Values []string
}

// BoolFlag represents a bool flag and whether it was set.
type BoolFlag struct {
	Value bool
	Set   bool
}
