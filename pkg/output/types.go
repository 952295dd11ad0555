// Package output renders timestamp reports for humans and machines.
package output

import (
	"time"

	"github.com/ccollicutt/logspan/pkg/extractor"
	"github.com/ccollicutt/logspan/pkg/results"
)

// Report is the complete output of a run.
type Report struct {
	// Files holds one entry per scanned file, in the requested order.
	Files []results.Entry `json:"files"`

	// Summary provides aggregate statistics.
	Summary Summary `json:"summary"`

	// Metadata provides context about the run.
	Metadata Metadata `json:"metadata"`
}

// Summary provides aggregate statistics.
type Summary struct {
	// FilesProcessed is the number of files that were scanned.
	FilesProcessed int `json:"files_processed"`

	// FilesSkipped is the number of inputs that were missing or unreadable.
	FilesSkipped int `json:"files_skipped"`

	// FilesWithoutTimestamps is the number of scanned files with no match.
	FilesWithoutTimestamps int `json:"files_without_timestamps"`

	// BackwardScansSkipped is the number of files whose backward scan was
	// not needed.
	BackwardScansSkipped int `json:"backward_scans_skipped"`
}

// Metadata provides context about the run.
type Metadata struct {
	// Pattern is the timestamp regex that was applied.
	Pattern string `json:"pattern"`

	// Sort is the order of Files.
	Sort results.SortKey `json:"sort"`

	// Skipped lists inputs that were not scanned.
	Skipped []string `json:"skipped,omitempty"`

	// GeneratedAt is when the report was built.
	GeneratedAt time.Time `json:"generated_at"`

	// Duration is how long scanning took.
	Duration time.Duration `json:"duration"`
}

// NewReport builds a report from a result set sorted by key.
func NewReport(set *results.Set, key results.SortKey, stats extractor.Stats, skipped []string) *Report {
	entries := set.Sorted(key)

	without := 0
	for _, e := range entries {
		if !e.First.Found {
			without++
		}
	}

	return &Report{
		Files: entries,
		Summary: Summary{
			FilesProcessed:         len(entries),
			FilesSkipped:           len(skipped),
			FilesWithoutTimestamps: without,
			BackwardScansSkipped:   stats.BackwardSkipped,
		},
		Metadata: Metadata{
			Sort:        key,
			Skipped:     skipped,
			GeneratedAt: time.Now(),
		},
	}
}
