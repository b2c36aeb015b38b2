package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bgricker/snipcheck/internal/snippet"
)

// Pattern represents a compiled filter condition supporting substring and regex matching.
type Pattern struct {
	raw   string
	regex *regexp.Regexp
	lower string
}

// Compile transforms raw pattern strings into Pattern values. Patterns
// wrapped in slashes compile as regular expressions; anything else matches
// as a case-insensitive substring.
func Compile(patterns []string) ([]Pattern, error) {
	result := make([]Pattern, 0, len(patterns))
	for _, raw := range patterns {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if strings.HasPrefix(raw, "/") && strings.HasSuffix(raw, "/") && len(raw) >= 2 {
			expr := raw[1 : len(raw)-1]
			re, err := regexp.Compile(expr)
			if err != nil {
				return nil, fmt.Errorf("compile regexp %q: %w", raw, err)
			}
			result = append(result, Pattern{raw: raw, regex: re})
			continue
		}
		result = append(result, Pattern{raw: raw, lower: strings.ToLower(raw)})
	}
	return result, nil
}

// Match reports whether the pattern matches the supplied string.
func (p Pattern) Match(s string) bool {
	if s == "" {
		return false
	}
	if p.regex != nil {
		return p.regex.MatchString(s)
	}
	return strings.Contains(strings.ToLower(s), p.lower)
}

// Apply filters snippet files by identifier, keeping files that match any
// only-pattern (all, when none are given) and no skip-pattern.
func Apply(files []snippet.File, onlyPatterns, skipPatterns []Pattern) []snippet.File {
	if len(files) == 0 {
		return nil
	}
	result := make([]snippet.File, 0, len(files))
	for _, f := range files {
		if len(onlyPatterns) > 0 && !matchesAny(f.ID, onlyPatterns) {
			continue
		}
		if len(skipPatterns) > 0 && matchesAny(f.ID, skipPatterns) {
			continue
		}
		result = append(result, f)
	}
	return result
}

func matchesAny(id string, patterns []Pattern) bool {
	for _, pattern := range patterns {
		if pattern.Match(id) {
			return true
		}
	}
	return false
}
