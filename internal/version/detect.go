package version

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// Info captures an interpreter version installed on the system.
type Info struct {
	Name    string
	Version string
}

var pythonRegex = regexp.MustCompile(`(?i)python\s+(\d+\.\d+(?:\.\d+)?)`)

// DetectInterpreter returns the version of the configured snippet
// interpreter by calling `<interpreter> --version`.
func DetectInterpreter(interpreter string) (Info, error) {
	out, err := runCommand(interpreter, "--version")
	if err != nil {
		return Info{}, err
	}
	version := parseVersion(out)
	if version == "" {
		return Info{}, fmt.Errorf("unable to parse interpreter version from %q", out)
	}
	return Info{Name: interpreter, Version: version}, nil
}

func parseVersion(out string) string {
	match := pythonRegex.FindStringSubmatch(out)
	if len(match) >= 2 {
		return match[1]
	}
	return ""
}

func runCommand(name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Stdin = nil
	var buf bytes.Buffer
	cmd.Stdout = &buf
	// Older interpreters print --version to stderr.
	cmd.Stderr = &buf
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

// CompareMajorMinor compares major.minor portions of two semver-like versions.
func CompareMajorMinor(desired, actual string) bool {
	d := semverPrefix(desired)
	a := semverPrefix(actual)
	if d == "" || a == "" {
		return false
	}
	return strings.EqualFold(d, a)
}

func semverPrefix(version string) string {
	parts := strings.Split(version, ".")
	if len(parts) < 2 {
		return ""
	}
	return fmt.Sprintf("%s.%s", parts[0], parts[1])
}

// Missing reports whether executing the command returns a not-found error.
func Missing(cmdErr error) bool {
	return errors.Is(cmdErr, exec.ErrNotFound)
}
