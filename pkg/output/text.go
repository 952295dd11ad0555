package output

import (
	"context"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ccollicutt/logspan/pkg/scanner"
)

// NoMatchText is shown in place of a timestamp that was not found.
const NoMatchText = "-"

// columnStyle draws plain left-aligned columns with no borders.
var columnStyle = func() table.Style {
	s := table.StyleDefault
	s.Name = "columns"
	s.Options = table.OptionsNoBordersAndSeparators
	s.Box.PaddingLeft = ""
	s.Box.PaddingRight = "  "
	s.Format.Header = text.FormatDefault
	s.Format.HeaderAlign = text.AlignLeft
	s.Format.RowAlign = text.AlignLeft
	return s
}()

// TextFormatter formats reports as a column-aligned table.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as a FILENAME FIRST LAST table, each column as
// wide as its longest value.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	tw := table.NewWriter()
	tw.SetStyle(columnStyle)
	tw.AppendHeader(table.Row{"FILENAME", "FIRST", "LAST"})

	for _, e := range report.Files {
		tw.AppendRow(table.Row{e.Filename, display(e.First), display(e.Last)})
	}

	if _, err := fmt.Fprintln(w, tw.Render()); err != nil {
		return err
	}

	if !f.opts.Verbose {
		return nil
	}

	_, err := fmt.Fprintf(w, "\nSummary: %d files processed, %d skipped, %d without timestamps\nDuration: %s\n",
		report.Summary.FilesProcessed,
		report.Summary.FilesSkipped,
		report.Summary.FilesWithoutTimestamps,
		report.Metadata.Duration.Round(1e6))
	return err
}

func display(m scanner.Match) string {
	if !m.Found {
		return NoMatchText
	}
	return m.Text
}
