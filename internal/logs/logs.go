// Package logs builds the diagnostic logger shared by logspan commands.
package logs

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Options controls logger construction.
type Options struct {
	// Verbose lowers the level to debug so per-file progress is shown.
	Verbose bool
	// Pretty selects the human-readable console writer instead of JSON lines.
	Pretty bool
	// Out is where log records go. Defaults to stderr.
	Out io.Writer
}

// New returns a logger configured by opts. Without Verbose only warnings and
// errors are written.
func New(opts Options) zerolog.Logger {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	level := zerolog.WarnLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}

	w := out
	if opts.Pretty {
		w = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.StampMilli,
			NoColor:    !IsTerminal(out),
		}
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
