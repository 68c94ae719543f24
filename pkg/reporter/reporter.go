// Package reporter writes runner results as text, tables or JSON.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/regionfold/pkg/runner"
)

// Reporter writes a fold result.
type Reporter interface {
	// Report renders result and returns how many regions it listed.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

//nolint:gochecknoglobals // fixed format table
var constructors = map[Format]func(Options) Reporter{
	FormatText:  func(o Options) Reporter { return NewTextReporter(o) },
	FormatTable: func(o Options) Reporter { return NewTableReporter(o) },
	FormatJSON:  func(o Options) Reporter { return NewJSONReporter(o) },
}

// New returns the reporter for opts.Format, writing to stdout when
// opts.Writer is nil. An empty format selects text.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	if opts.Format == "" {
		opts.Format = FormatText
	}

	build, ok := constructors[opts.Format]
	if !ok {
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}
	return build(opts), nil
}
