package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/logspan/internal/logs"
	"github.com/ccollicutt/logspan/pkg/config"
	"github.com/ccollicutt/logspan/pkg/extractor"
	"github.com/ccollicutt/logspan/pkg/files"
	"github.com/ccollicutt/logspan/pkg/output"
)

// ScanOptions holds command-line options for scanning log files.
type ScanOptions struct {
	Sort       string
	Regex      string
	Output     string
	ConfigPath string
	Verbose    bool
}

// AddScanFlags registers the scan flags on cmd.
func AddScanFlags(cmd *cobra.Command, opts *ScanOptions) {
	cmd.Flags().StringVarP(&opts.Sort, "sort", "s", config.DefaultSort, "Sort order (FILENAME|FIRST|LAST)")
	cmd.Flags().StringVarP(&opts.Regex, "regex", "r", config.DefaultPattern, "Regex that matches a timestamp")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", config.DefaultOutput, "Output format (text|json)")
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Config file (.yaml, .yml or .toml)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Log per-file progress to stderr")
}

// RunScan extracts the first and last timestamp of every file in args
// (or the config's log sources) and prints the sorted report.
func RunScan(cmd *cobra.Command, args []string, opts *ScanOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := resolveConfig(ctx, cmd, opts)
	if err != nil {
		return err
	}

	sources := args
	if len(sources) == 0 {
		sources = cfg.LogSources
	}
	if len(sources) == 0 {
		return errors.New("no log files given (pass files or globs, or set log_sources in a config file)")
	}

	formatter, err := output.New(cfg.Output, output.FormatOptions{Verbose: cfg.Verbose})
	if err != nil {
		return err
	}

	log := logs.New(logs.Options{
		Verbose: cfg.Verbose,
		Pretty:  logs.IsTerminal(cmd.ErrOrStderr()),
		Out:     cmd.ErrOrStderr(),
	})

	found, skipped := files.ExpandGlobs(sources)
	for _, s := range skipped {
		log.Debug().Str("file", s).Msg("Skipping missing file")
	}

	start := time.Now()
	ex := extractor.New(cfg.Matcher(), extractor.WithLogger(log))
	set, err := ex.ExtractAll(ctx, found)
	if err != nil {
		return fmt.Errorf("scanning log files: %w", err)
	}

	// Files that expanded but could not be opened are skipped too.
	for _, f := range found {
		if _, ok := set.Get(f); !ok {
			skipped = append(skipped, f)
		}
	}

	log.Debug().Str("sort", cfg.Sort).Int("files", set.Len()).Msg("Sorting")
	report := output.NewReport(set, cfg.SortKey(), ex.Stats(), skipped)
	report.Metadata.Pattern = cfg.Pattern
	report.Metadata.Duration = time.Since(start)

	log.Debug().Str("output", formatter.Name()).Msg("Printing results")
	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	return nil
}

// resolveConfig layers flags over environment over config file over defaults
// and validates the result before any log file is touched.
func resolveConfig(ctx context.Context, cmd *cobra.Command, opts *ScanOptions) (*config.Config, error) {
	cfg, err := config.Read(ctx, opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("sort") {
		cfg.Sort = opts.Sort
	}
	if flags.Changed("regex") {
		cfg.Pattern = opts.Regex
	}
	if flags.Changed("output") {
		cfg.Output = opts.Output
	}
	if flags.Changed("verbose") {
		cfg.Verbose = opts.Verbose
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
