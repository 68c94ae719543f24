package reporter

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/term"

	"github.com/yaklabco/regionfold/internal/ui/pretty"
	"github.com/yaklabco/regionfold/pkg/runner"
)

// fallbackWidth is the table width when the writer is not a terminal.
const fallbackWidth = 100

// TableReporter renders every region of the run as one table.
type TableReporter struct {
	terminal

	table *pretty.TableFormatter
}

// NewTableReporter returns a table reporter sized to the writer's terminal.
func NewTableReporter(opts Options) *TableReporter {
	t := newTerminal(opts)
	return &TableReporter{
		terminal: t,
		table:    pretty.NewTableFormatter(t.styles, terminalWidth(opts.Writer)),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer r.flush(&err)

	if r.nothingScanned(result) {
		return 0, nil
	}

	var rows []pretty.TableRow
	for _, file := range result.Files {
		path := r.opts.displayPath(file.Path)
		if file.Error != nil {
			r.fileError(path, file.Error)
			continue
		}
		for _, region := range file.Regions {
			rows = append(rows, r.table.RegionToTableRow(path, region))
		}
	}

	if len(rows) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.w, r.styles.Success.Render("No regions found."))
			fmt.Fprintln(r.w, r.styles.Dim.Render(fmt.Sprintf("%d files scanned", result.Stats.FilesProcessed)))
		}
		return 0, nil
	}

	fmt.Fprint(r.w, r.table.FormatTable(rows))

	if r.opts.ShowSummary {
		fmt.Fprintf(r.w, "\n%s\n", r.table.FormatTableSummary(result.Stats))
		if result.Transition != nil {
			fmt.Fprintln(r.w, r.styles.Dim.Render(" * state changed by "+result.Transition.String()))
		}
	}
	return len(rows), nil
}

func terminalWidth(w io.Writer) int {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return fallbackWidth
	}
	if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
		return width
	}
	return fallbackWidth
}
