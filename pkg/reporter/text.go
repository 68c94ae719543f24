package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/regionfold/pkg/runner"
)

// TextReporter lists regions grouped under a header per file. In verbose
// mode it also lists files without regions and ends with a summary block.
type TextReporter struct {
	terminal
}

// NewTextReporter returns a text reporter for opts.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{terminal: newTerminal(opts)}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (listed int, err error) {
	defer r.flush(&err)

	if r.nothingScanned(result) {
		return 0, nil
	}

	for _, file := range result.Files {
		path := r.opts.displayPath(file.Path)
		switch {
		case file.Error != nil:
			r.fileError(path, file.Error)
			continue
		case len(file.Regions) == 0 && !r.opts.Verbose:
			continue
		}

		fmt.Fprintln(r.w, r.styles.FormatFileHeader(path, len(file.Regions)))
		for _, region := range file.Regions {
			fmt.Fprint(r.w, r.styles.FormatRegion(region))
		}
		fmt.Fprintln(r.w)
		listed += len(file.Regions)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.w, r.styles.FormatSummaryOneLine(result.Stats, result.Transition))
		if r.opts.Verbose {
			fmt.Fprint(r.w, r.styles.FormatSummary(result.Stats))
		}
	}
	return listed, nil
}
