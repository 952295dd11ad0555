// Package cli provides the command-line interface for logspan.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/logspan/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return 0
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	opts := &commands.ScanOptions{}

	rootCmd := &cobra.Command{
		Use:   "logspan [flags] <file|glob>...",
		Short: "Show the first and last timestamp of each log file",
		Long: `logspan reports the first and last timestamp found in each log file.

The first timestamp is found by reading forward from the start of the file;
the last by reading backward from the end, so only the tail of a large file
is read. Timestamps are matched with a regular expression (default:
'YYYY-MM-DD HH:mm:ss,sss') and compared as text when sorting.

Missing files are skipped. Files without a matching line are listed with '-'.

Example:
  logspan /var/log/app/*.log
  logspan --sort LAST app.log app.log.1 app.log.2
  logspan --regex '\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}' -o json api.log
  logspan --config logspan.yaml`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunScan(cmd, args, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	commands.AddScanFlags(rootCmd, opts)

	rootCmd.AddCommand(commands.NewDetectCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
