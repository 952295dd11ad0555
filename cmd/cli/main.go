// logspan - first and last timestamp of log files
//
// logspan scans each log file forward for its first timestamp and backward
// from the end for its last, and prints them as a sortable table.
package main

import (
	"os"

	"github.com/ccollicutt/logspan/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
