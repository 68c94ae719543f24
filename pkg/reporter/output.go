package reporter

import (
	"bufio"
	"fmt"
	"io"

	"github.com/yaklabco/regionfold/internal/ui/pretty"
	"github.com/yaklabco/regionfold/pkg/runner"
)

const bufferSize = 64 << 10

// sink buffers a reporter's writes.
type sink struct {
	w *bufio.Writer
}

func newSink(w io.Writer) sink {
	return sink{w: bufio.NewWriterSize(w, bufferSize)}
}

// flush is deferred by Report with its named error result, which a failed
// flush fills in unless an earlier error is already set.
func (s sink) flush(err *error) {
	if flushErr := s.w.Flush(); *err == nil {
		*err = flushErr
	}
}

// terminal is the shared state of the styled, human-facing reporters.
type terminal struct {
	sink

	opts   Options
	styles *pretty.Styles
}

func newTerminal(opts Options) terminal {
	return terminal{
		sink:   newSink(opts.Writer),
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
	}
}

// nothingScanned writes the empty-run notice and reports whether result
// has no files at all.
func (t terminal) nothingScanned(result *runner.Result) bool {
	if result != nil && len(result.Files) > 0 {
		return false
	}
	if t.opts.ShowSummary {
		fmt.Fprintln(t.w, t.styles.Success.Render("No files to scan."))
	}
	return true
}

func (t terminal) fileError(path string, err error) {
	fmt.Fprintf(t.w, "%s: %s\n",
		t.styles.FilePath.Render(path),
		t.styles.Error.Render("error: "+err.Error()),
	)
}
