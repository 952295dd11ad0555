package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/logspan/pkg/config"
	"github.com/ccollicutt/logspan/pkg/detector"
)

// DetectOptions holds command-line options for the detect command.
type DetectOptions struct {
	Output      string
	SampleSize  int
	ShowAll     bool
	WriteConfig string
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	opts := &DetectOptions{}

	cmd := &cobra.Command{
		Use:   "detect <log-file>",
		Short: "Suggest a timestamp regex for a log file",
		Long: `Sample the head of a log file and suggest a --regex for it.

Lines are tested against common timestamp shapes. The best shape is reported
with its confidence, what logspan would extract from a sample line, and
whether the timestamps sort chronologically as text (which --sort FIRST and
--sort LAST rely on).

Optionally generates a starter config file with --write-config.

Example:
  logspan detect /var/log/myapp.log
  logspan detect --sample 500 /var/log/large.log
  logspan detect --write-config logspan.yaml /var/log/app.log`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().IntVarP(&opts.SampleSize, "sample", "n", 100, "Number of lines to sample")
	cmd.Flags().BoolVar(&opts.ShowAll, "all", false, "Show all detected formats, not just the best match")
	cmd.Flags().StringVarP(&opts.WriteConfig, "write-config", "w", "", "Write starter config to file (will not overwrite)")

	return cmd
}

func runDetect(cmd *cobra.Command, args []string, opts *DetectOptions) error {
	logFile := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if _, err := os.Stat(logFile); os.IsNotExist(err) {
		return fmt.Errorf("log file not found: %s", logFile)
	}

	d := detector.New(detector.WithSampleSize(opts.SampleSize))

	result, err := d.DetectFromFile(ctx, logFile)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	out := cmd.OutOrStdout()

	if opts.WriteConfig != "" {
		if err := writeStarterConfig(result, logFile, opts.WriteConfig); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "Wrote starter config to: %s\n\n", opts.WriteConfig)
	}

	switch opts.Output {
	case "json":
		return outputDetectJSON(out, result, logFile, opts)
	case "text":
		return outputDetectText(out, result, logFile, opts)
	default:
		return fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
	}
}

func outputDetectText(w io.Writer, result *detector.DetectionResult, logFile string, opts *DetectOptions) error {
	p := func(format string, a ...any) {
		_, _ = fmt.Fprintf(w, format, a...)
	}

	p("=== Timestamp Format Detection ===\n\n")
	p("File: %s\n", logFile)
	p("Lines sampled: %d\n", result.SampledLines)
	p("Lines with timestamps: %d\n\n", result.MatchedLines)

	if !result.HasMatch() {
		p("No timestamp format detected.\n\n")
		p("Tip: The file may use an uncommon format.\n")
		p("Check the first few lines manually and pass a pattern with --regex.\n")
		return nil
	}

	best := result.BestMatch()
	p("Detected Format: %s\n", best.Format.Name)
	p("Confidence: %.1f%% (%d/%d lines matched)\n\n",
		best.Confidence*100, best.MatchCount, result.SampledLines)
	p("Sample line:\n  %s\n", best.SampleLine)
	p("Extracted as: %s\n\n", best.SampleMatch)

	for _, note := range result.Notes {
		p("Note: %s\n", note)
	}
	if len(result.Notes) > 0 {
		p("\n")
	}

	p("--- Usage ---\n\n")
	p("  logspan --regex '%s' <files>\n\n", best.Format.PatternStr)
	p("--- Configuration snippet (copy to your config file) ---\n\n")
	p("pattern: '%s'\n\n", best.Format.PatternStr)

	if opts.ShowAll && len(result.Matches) > 1 {
		p("--- Alternative formats detected ---\n")
		for i, m := range result.Matches[1:] {
			p("%d. %s (%.1f%% confidence)\n", i+2, m.Format.Name, m.Confidence*100)
			p("   pattern: '%s'\n", m.Format.PatternStr)
			p("   extracts: %s\n", m.SampleMatch)
		}
		p("\n")
	}

	return nil
}

// JSONMatch represents a format match in JSON output.
type JSONMatch struct {
	Name        string  `json:"name"`
	Pattern     string  `json:"pattern"`
	Confidence  float64 `json:"confidence"`
	MatchCount  int     `json:"match_count"`
	SampleLine  string  `json:"sample_line"`
	SampleMatch string  `json:"sample_match"`
	Sortable    bool    `json:"sortable"`
	Ambiguous   bool    `json:"ambiguous,omitempty"`
}

// JSONOutput represents the full JSON output.
type JSONOutput struct {
	File         string      `json:"file"`
	Matches      []JSONMatch `json:"matches"`
	SampledLines int         `json:"sampled_lines"`
	MatchedLines int         `json:"matched_lines"`
	Notes        []string    `json:"notes,omitempty"`
}

func outputDetectJSON(w io.Writer, result *detector.DetectionResult, logFile string, opts *DetectOptions) error {
	out := JSONOutput{
		File:         logFile,
		SampledLines: result.SampledLines,
		MatchedLines: result.MatchedLines,
		Notes:        result.Notes,
		Matches:      make([]JSONMatch, 0),
	}

	matches := result.Matches
	if !opts.ShowAll && len(matches) > 1 {
		matches = matches[:1]
	}

	for _, m := range matches {
		out.Matches = append(out.Matches, JSONMatch{
			Name:        m.Format.Name,
			Pattern:     m.Format.PatternStr,
			Confidence:  m.Confidence,
			MatchCount:  m.MatchCount,
			SampleLine:  m.SampleLine,
			SampleMatch: m.SampleMatch,
			Sortable:    m.Format.Sortable,
			Ambiguous:   m.Format.Ambiguous,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// writeStarterConfig writes a config for logFile using the best detected
// format. An existing file at configPath is never overwritten.
func writeStarterConfig(result *detector.DetectionResult, logFile, configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s (will not overwrite)", configPath)
	}

	if !result.HasMatch() {
		return fmt.Errorf("cannot generate config: no timestamp format detected")
	}

	data, err := generateStarterConfig(logFile, result.BestMatch())
	if err != nil {
		return fmt.Errorf("generating config: %w", err)
	}

	return writeExclusive(configPath, data)
}

// createExclusive creates path for writing and fails if it already exists,
// so a file created since the Stat in writeStarterConfig is not clobbered.
var createExclusive = func(path string) (io.WriteCloser, error) {
	// #nosec G302 G304 - config file doesn't need restrictive permissions; path is from CLI
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
}

// writeExclusive writes data to a new file at path. A failed write removes
// the partial file so a later run can create it.
func writeExclusive(path string, data []byte) error {
	f, err := createExclusive(path)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	_, err = f.Write(data)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// generateStarterConfig renders a YAML config for logFile.
func generateStarterConfig(logFile string, match *detector.FormatMatch) ([]byte, error) {
	absLogFile := logFile
	if abs, err := filepath.Abs(logFile); err == nil {
		absLogFile = abs
	}

	cfg := config.DefaultConfig()
	cfg.LogSources = []string{absLogFile}
	cfg.Pattern = match.Format.PatternStr

	body, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}

	header := fmt.Sprintf(`# logspan configuration
# Generated by: logspan detect
# Detected format: %s (%.0f%% confidence)
# Add more log files or globs under log_sources, e.g. /var/log/myapp/*.log
`, match.Format.Name, match.Confidence*100)

	return append([]byte(header), body...), nil
}
