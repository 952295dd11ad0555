package scanner

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ccollicutt/logspan/pkg/matcher"
)

// DefaultBlockSize is the number of bytes read per step of a scan.
const DefaultBlockSize = 64 * 1024

// Option configures Backward.
type Option func(*backwardOptions)

type backwardOptions struct {
	blockSize int
}

// WithBlockSize sets how many bytes Backward reads per step (default 64 KiB).
func WithBlockSize(n int) Option {
	return func(o *backwardOptions) {
		if n > 0 {
			o.blockSize = n
		}
	}
}

// Backward returns the match on the last line of r that matches m, where r
// holds size bytes. Lines are examined from the end toward offset 0 and the
// walk stops at the first hit, so only the tail of the file after the last
// matching line (plus at most one block) is read.
func Backward(r io.ReaderAt, size int64, m *matcher.Matcher, opts ...Option) (Match, error) {
	o := backwardOptions{blockSize: DefaultBlockSize}
	for _, opt := range opts {
		opt(&o)
	}

	if size <= 0 {
		return NoMatch, nil
	}

	// A final newline terminates the last line; it does not start a new one.
	end := size
	final := make([]byte, 1)
	if err := readFull(r, final, end-1); err != nil {
		return NoMatch, err
	}
	if final[0] == '\n' {
		end--
	}

	buf := make([]byte, o.blockSize)

	// pieces holds the parts of the current line that lie to the right of
	// the block being searched, rightmost first.
	var pieces [][]byte

	for pos := end; pos > 0; {
		n := int64(len(buf))
		if n > pos {
			n = pos
		}
		pos -= n

		block := buf[:n]
		if err := readFull(r, block, pos); err != nil {
			return NoMatch, err
		}

		for {
			i := bytes.LastIndexByte(block, '\n')
			if i < 0 {
				pieces = append(pieces, bytes.Clone(block))
				break
			}

			if hit, ok := m.Find(joinLine(block[i+1:], pieces)); ok {
				return Matched(string(hit)), nil
			}

			pieces = nil
			block = block[:i]
		}
	}

	// The walk reached offset 0: the pieces make up the first line.
	if hit, ok := m.Find(joinLine(nil, pieces)); ok {
		return Matched(string(hit)), nil
	}
	return NoMatch, nil
}

// joinLine returns head followed by pieces in reverse order. Each byte of a
// line is copied once, however many blocks the line spans.
func joinLine(head []byte, pieces [][]byte) []byte {
	if len(pieces) == 0 {
		return head
	}
	n := len(head)
	for _, p := range pieces {
		n += len(p)
	}
	line := make([]byte, 0, n)
	line = append(line, head...)
	for i := len(pieces) - 1; i >= 0; i-- {
		line = append(line, pieces[i]...)
	}
	return line
}

// readFull fills p from r at off. A short read is an error even when the
// reader reports none.
func readFull(r io.ReaderAt, p []byte, off int64) error {
	n, err := r.ReadAt(p, off)
	if n == len(p) {
		return nil
	}
	if err == nil {
		err = io.ErrUnexpectedEOF
	}
	return fmt.Errorf("reading %d bytes at offset %d: %w", len(p), off, err)
}
