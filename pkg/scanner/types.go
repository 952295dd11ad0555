// Package scanner locates the first and last timestamp in a log file.
//
// Forward reads a file from the start and stops at the first matching line.
// Backward walks lines from the end of the file toward the start and stops at
// the first matching line it sees, which is the last matching line of the
// file. Both scanners split on '\n', exclude the newline from the line handed
// to the matcher, and treat a trailing newline as terminating the final line
// rather than starting an empty one, so they visit exactly the same lines.
package scanner

import (
	"bytes"
	"encoding/json"
)

// Match is the outcome of a scan: either the matched text or no match.
// The zero value is NoMatch, which is distinct from a match of "".
type Match struct {
	// Text is the matched substring. Only meaningful when Found is true.
	Text string
	// Found reports whether the pattern matched at all.
	Found bool
}

// NoMatch is the result of a scan in which the pattern never matched.
var NoMatch = Match{}

// Matched returns a Match holding text.
func Matched(text string) Match {
	return Match{Text: text, Found: true}
}

// String returns the matched text, or "" for NoMatch.
func (m Match) String() string {
	if !m.Found {
		return ""
	}
	return m.Text
}

// MarshalJSON encodes NoMatch as null and a match as a JSON string.
func (m Match) MarshalJSON() ([]byte, error) {
	if !m.Found {
		return []byte("null"), nil
	}
	return json.Marshal(m.Text)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (m *Match) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*m = NoMatch
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	*m = Matched(text)
	return nil
}
