// Package extractor produces the first and last timestamp of log files.
package extractor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/ccollicutt/logspan/pkg/matcher"
	"github.com/ccollicutt/logspan/pkg/results"
	"github.com/ccollicutt/logspan/pkg/scanner"
)

// ErrUnreadable marks files that could not be opened for scanning.
// ExtractAll skips such files instead of failing.
var ErrUnreadable = errors.New("log file not readable")

// Stats counts the work done by an Extractor.
type Stats struct {
	// Files is the number of files scanned.
	Files int
	// ForwardScans is the number of forward (first timestamp) scans.
	ForwardScans int
	// BackwardScans is the number of backward (last timestamp) scans.
	BackwardScans int
	// BackwardSkipped counts files whose backward scan was skipped
	// because the forward scan found no timestamp.
	BackwardSkipped int
}

// Extractor scans log files for their first and last timestamp.
// An Extractor is not safe for concurrent use.
type Extractor struct {
	matcher   *matcher.Matcher
	log       zerolog.Logger
	blockSize int
	stats     Stats
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger used for per-file diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Extractor) {
		e.log = l
	}
}

// WithBlockSize sets the read size used by the backward scan.
func WithBlockSize(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.blockSize = n
		}
	}
}

// New creates an Extractor that looks for m in every file.
func New(m *matcher.Matcher, opts ...Option) *Extractor {
	e := &Extractor{
		matcher:   m,
		log:       zerolog.Nop(),
		blockSize: scanner.DefaultBlockSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Stats returns the counters accumulated so far.
func (e *Extractor) Stats() Stats {
	return e.stats
}

// Extract finds the first and last timestamp in the size bytes of r.
// When the forward scan finds nothing the file has no matching line at all,
// so the backward scan is skipped.
func (e *Extractor) Extract(r io.ReaderAt, size int64) (results.Pair, error) {
	e.stats.Files++

	e.stats.ForwardScans++
	first, err := scanner.Forward(io.NewSectionReader(r, 0, size), e.matcher)
	if err != nil {
		return results.Pair{}, fmt.Errorf("scanning for first timestamp: %w", err)
	}
	if !first.Found {
		e.stats.BackwardSkipped++
		return results.Pair{First: scanner.NoMatch, Last: scanner.NoMatch}, nil
	}

	e.stats.BackwardScans++
	last, err := scanner.Backward(r, size, e.matcher, scanner.WithBlockSize(e.blockSize))
	if err != nil {
		return results.Pair{}, fmt.Errorf("scanning for last timestamp: %w", err)
	}

	return results.Pair{First: first, Last: last}, nil
}

// ExtractFile opens path, extracts its pair and closes it again.
// Errors opening the file wrap ErrUnreadable.
func (e *Extractor) ExtractFile(ctx context.Context, path string) (results.Pair, error) {
	if err := ctx.Err(); err != nil {
		return results.Pair{}, err
	}

	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return results.Pair{}, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return results.Pair{}, fmt.Errorf("%w: %s: %w", ErrUnreadable, path, err)
	}
	if !info.Mode().IsRegular() {
		return results.Pair{}, fmt.Errorf("%w: %s is not a regular file", ErrUnreadable, path)
	}

	pair, err := e.Extract(f, info.Size())
	if err != nil {
		return results.Pair{}, fmt.Errorf("%s: %w", path, err)
	}
	return pair, nil
}

// ExtractAll processes paths one at a time in order and collects the pairs.
// Unreadable files are left out of the set. Any other error stops the run.
func (e *Extractor) ExtractAll(ctx context.Context, paths []string) (*results.Set, error) {
	set := results.NewSet()

	for _, path := range paths {
		e.log.Debug().Str("file", path).Msg("Processing")

		pair, err := e.ExtractFile(ctx, path)
		if errors.Is(err, ErrUnreadable) {
			e.log.Debug().Err(err).Str("file", path).Msg("Skipping unreadable file")
			continue
		}
		if err != nil {
			return nil, err
		}

		set.Add(path, pair)
		e.log.Debug().
			Str("file", path).
			Str("first", pair.First.String()).
			Str("last", pair.Last.String()).
			Bool("found", pair.First.Found).
			Msg("Finished")
	}

	return set, nil
}
