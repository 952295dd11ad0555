package scanner

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/ccollicutt/logspan/pkg/matcher"
)

// Forward reads r from its current position and returns the match on the
// first line that matches m. Lines have no length limit.
func Forward(r io.Reader, m *matcher.Matcher) (Match, error) {
	br := bufio.NewReaderSize(r, DefaultBlockSize)

	for {
		line, err := br.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return NoMatch, fmt.Errorf("reading line: %w", err)
		}

		// A terminated line, or a final line without a newline. The empty
		// read at EOF after a trailing newline is not a line.
		if err == nil || len(line) > 0 {
			if err == nil {
				line = line[:len(line)-1]
			}
			if hit, ok := m.Find(line); ok {
				return Matched(string(hit)), nil
			}
		}

		if err != nil {
			return NoMatch, nil
		}
	}
}
