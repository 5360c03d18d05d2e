// Package simtest writes fake xcrun executables for tests that exercise
// simctl invocations without Xcode.
package simtest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type rule struct {
	pattern string
	stdout  string
	stderr  string
	exit    int
}

// Stub is a shell script standing in for xcrun. Each invocation appends its
// arguments to a log so tests can assert which simctl calls happened.
type Stub struct {
	t     testing.TB
	dir   string
	rules []rule
}

// New creates a stub in a fresh temp dir.
func New(t testing.TB) *Stub {
	t.Helper()
	return &Stub{t: t, dir: t.TempDir()}
}

// On answers invocations whose joined arguments match pattern. Each "*" in
// pattern matches any run of characters.
func (s *Stub) On(pattern, stdout string) *Stub {
	s.rules = append(s.rules, rule{pattern: pattern, stdout: stdout})
	return s
}

// Fail makes matching invocations print stderr and exit 1.
func (s *Stub) Fail(pattern, stderr string) *Stub {
	s.rules = append(s.rules, rule{pattern: pattern, stderr: stderr, exit: 1})
	return s
}

// Path writes the script and returns its location.
func (s *Stub) Path() string {
	s.t.Helper()

	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	fmt.Fprintf(&b, "printf '%%s\\n' \"$*\" >> %s\n", quote(s.logPath()))
	b.WriteString("case \"$*\" in\n")
	for i, r := range s.rules {
		out := filepath.Join(s.dir, fmt.Sprintf("stdout-%d", i))
		errOut := filepath.Join(s.dir, fmt.Sprintf("stderr-%d", i))
		s.write(out, r.stdout)
		s.write(errOut, r.stderr)

		fmt.Fprintf(&b, "  %s)\n", casePattern(r.pattern))
		fmt.Fprintf(&b, "    cat %s\n", quote(out))
		fmt.Fprintf(&b, "    cat %s >&2\n", quote(errOut))
		fmt.Fprintf(&b, "    exit %d\n", r.exit)
		b.WriteString("    ;;\n")
	}
	b.WriteString("  *)\n    echo \"stub: unsupported xcrun args: $*\" >&2\n    exit 1\n    ;;\nesac\n")

	path := filepath.Join(s.dir, "xcrun")
	if err := os.WriteFile(path, []byte(b.String()), 0o755); err != nil {
		s.t.Fatalf("write stub xcrun: %v", err)
	}
	return path
}

// Calls returns the argument lines of every invocation so far.
func (s *Stub) Calls() []string {
	s.t.Helper()
	data, err := os.ReadFile(s.logPath())
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		s.t.Fatalf("read stub log: %v", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

// CallsWithPrefix filters Calls to those starting with prefix.
func (s *Stub) CallsWithPrefix(prefix string) []string {
	var out []string
	for _, c := range s.Calls() {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}

func (s *Stub) logPath() string { return filepath.Join(s.dir, "calls.log") }

func (s *Stub) write(path, content string) {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		s.t.Fatalf("write stub fixture: %v", err)
	}
}

// casePattern quotes the literal parts of p and leaves each "*" as a glob.
func casePattern(p string) string {
	parts := strings.Split(p, "*")
	for i, part := range parts {
		if part != "" {
			parts[i] = quote(part)
		}
	}
	return strings.Join(parts, "*")
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
