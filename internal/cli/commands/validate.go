package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/logspan/pkg/config"
	"github.com/ccollicutt/logspan/pkg/files"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a logspan configuration file without scanning any logs.

Checks:
  - YAML or TOML syntax
  - Regex pattern validity
  - Sort order and output format
  - Log source file existence (warning only)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	out := cmd.OutOrStdout()
	p := func(format string, a ...any) {
		_, _ = fmt.Fprintf(out, format, a...)
	}

	p("Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	p("\nConfiguration valid!\n")
	p("  Pattern:     %s\n", cfg.Pattern)
	p("  Sort:        %s\n", cfg.Sort)
	p("  Output:      %s\n", cfg.Output)
	p("  Log sources: %d pattern(s)\n", len(cfg.LogSources))

	if len(cfg.LogSources) == 0 {
		p("\nNo log sources configured; pass files on the command line.\n")
		return nil
	}

	found, missing := files.ExpandGlobs(cfg.LogSources)
	if len(found) == 0 {
		p("\nWarning: No files match log source patterns\n")
	} else {
		p("\nLog files matched: %d\n", len(found))
		for _, f := range found {
			p("  - %s\n", f)
		}
	}
	for _, m := range missing {
		p("Warning: not found: %s\n", m)
	}

	return nil
}
