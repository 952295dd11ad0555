// Package detector suggests a timestamp pattern for a log file.
package detector

import (
	"bufio"
	"context"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Pseudo-layouts for numeric epoch timestamps.
const (
	LayoutUnixSeconds = "UNIX_SECONDS"
	LayoutUnixMillis  = "UNIX_MILLIS"
)

// DetectionResult holds the result of analyzing a log file.
type DetectionResult struct {
	Matches      []FormatMatch // Formats that matched, sorted by confidence descending
	SampledLines int           // Number of lines sampled
	MatchedLines int           // Number of lines the best format matched
	Notes        []string      // Warnings about the best format
}

// FormatMatch represents a format that matched with its confidence score.
type FormatMatch struct {
	Format      *TimestampFormat
	Confidence  float64 // 0.0 to 1.0 (fraction of sampled lines matched)
	MatchCount  int     // Number of lines that matched
	SampleLine  string  // Example line that matched
	SampleMatch string  // What logspan would report for SampleLine
}

// Detector samples log lines and ranks known timestamp formats.
type Detector struct {
	formats    []*TimestampFormat
	sampleSize int
}

// Option configures the Detector.
type Option func(*Detector)

// WithSampleSize sets the number of lines to sample (default 100).
func WithSampleSize(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.sampleSize = n
		}
	}
}

// WithFormats replaces the built-in format catalogue.
func WithFormats(formats []*TimestampFormat) Option {
	return func(d *Detector) {
		d.formats = formats
	}
}

// New creates a new Detector with default formats.
func New(opts ...Option) *Detector {
	d := &Detector{
		formats:    DefaultFormats(),
		sampleSize: 100,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectFromFile samples the head of a log file and ranks formats.
func (d *Detector) DetectFromFile(ctx context.Context, path string) (*DetectionResult, error) {
	lines, err := d.sampleFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return d.DetectFromLines(lines), nil
}

// DetectFromLines ranks formats by the fraction of lines they match.
// A line counts for a format only if the matched text also parses with the
// format's layout.
func (d *Detector) DetectFromLines(lines []string) *DetectionResult {
	result := &DetectionResult{
		SampledLines: len(lines),
	}

	if len(lines) == 0 {
		return result
	}

	stats := make(map[*TimestampFormat]*FormatMatch)

	for _, line := range lines {
		for _, format := range d.formats {
			hit := format.Pattern.FindString(line)
			if hit == "" || !validTimestamp(hit, format.Layout) {
				continue
			}

			s, ok := stats[format]
			if !ok {
				s = &FormatMatch{Format: format, SampleLine: line, SampleMatch: hit}
				stats[format] = s
			}
			s.MatchCount++
		}
	}

	for _, s := range stats {
		s.Confidence = float64(s.MatchCount) / float64(len(lines))
		result.Matches = append(result.Matches, *s)
	}

	// Sort by confidence descending, then by length of the matched text
	// (a format that also captures milliseconds or a zone is more specific)
	sort.Slice(result.Matches, func(i, j int) bool {
		a, b := result.Matches[i], result.Matches[j]
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		if len(a.SampleMatch) != len(b.SampleMatch) {
			return len(a.SampleMatch) > len(b.SampleMatch)
		}
		return a.Format.Name < b.Format.Name
	})

	if best := result.BestMatch(); best != nil {
		result.MatchedLines = best.MatchCount
		if !best.Format.Sortable {
			result.Notes = append(result.Notes,
				"Timestamps in this format do not sort chronologically as text; "+
					"--sort FIRST and --sort LAST order them lexicographically.")
		}
		if best.Format.Ambiguous {
			result.Notes = append(result.Notes,
				"This format has date ordering ambiguity (MM/DD vs DD/MM). "+
					"Verify the sample match against your log.")
		}
	}

	return result
}

// validTimestamp reports whether s parses with layout.
func validTimestamp(s, layout string) bool {
	switch layout {
	case LayoutUnixSeconds, LayoutUnixMillis:
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return false
		}
		if layout == LayoutUnixMillis {
			v /= 1000
		}
		// Sanity check: reasonable Unix timestamp range (1970-2100)
		return v >= 0 && v <= 4102444800
	default:
		// Patterns may accept any whitespace between date and time.
		s = strings.Join(strings.Fields(s), " ")
		_, err := time.Parse(layout, s)
		return err == nil
	}
}

// sampleFile reads up to sampleSize non-empty, non-comment lines from a file.
func (d *Detector) sampleFile(ctx context.Context, path string) ([]string, error) {
	// #nosec G304 - path is provided by user via CLI
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() && len(lines) < d.sampleSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			lines = append(lines, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

// BestMatch returns the highest confidence match, or nil if none found.
func (r *DetectionResult) BestMatch() *FormatMatch {
	if len(r.Matches) == 0 {
		return nil
	}
	return &r.Matches[0]
}

// HasMatch returns true if at least one format matched.
func (r *DetectionResult) HasMatch() bool {
	return len(r.Matches) > 0
}
