// Package matcher finds timestamp-shaped substrings in raw log lines.
package matcher

import (
	"fmt"
	"regexp"
)

// DefaultPattern matches a YYYY-MM-DD HH:mm:ss,sss shaped timestamp.
const DefaultPattern = `([\d-]{10})\s([\d:,]{12})`

// Matcher applies a compiled pattern to individual lines.
// It holds no mutable state and is safe for concurrent use.
type Matcher struct {
	pattern *regexp.Regexp
}

// New compiles pattern into a Matcher.
func New(pattern string) (*Matcher, error) {
	if pattern == "" {
		return nil, fmt.Errorf("pattern is empty")
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return &Matcher{pattern: re}, nil
}

// FromRegexp wraps an already compiled expression.
func FromRegexp(re *regexp.Regexp) *Matcher {
	return &Matcher{pattern: re}
}

// Default returns a Matcher for DefaultPattern.
func Default() *Matcher {
	return &Matcher{pattern: regexp.MustCompile(DefaultPattern)}
}

// Find returns the leftmost match within line. The line must not include
// its trailing newline. The returned slice aliases line.
func (m *Matcher) Find(line []byte) ([]byte, bool) {
	loc := m.pattern.FindIndex(line)
	if loc == nil {
		return nil, false
	}
	return line[loc[0]:loc[1]], true
}

// String returns the source text of the pattern.
func (m *Matcher) String() string {
	return m.pattern.String()
}
