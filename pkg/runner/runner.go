package runner

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/yaklabco/regionfold/internal/logging"
	"github.com/yaklabco/regionfold/pkg/commands"
	"github.com/yaklabco/regionfold/pkg/config"
	"github.com/yaklabco/regionfold/pkg/fold"
	"github.com/yaklabco/regionfold/pkg/fsutil"
	"github.com/yaklabco/regionfold/pkg/langdetect"
	"github.com/yaklabco/regionfold/pkg/marker"
	"github.com/yaklabco/regionfold/pkg/outline"
)

// Runner processes files concurrently. Each file gets its own document,
// outlining manager and command context, so workers share no fold state.
type Runner struct {
	markers  *outline.MarkerOutliner
	markdown *outline.MarkdownOutliner
}

// New creates a Runner.
func New() *Runner {
	return &Runner{
		markers:  outline.NewMarkerOutliner(),
		markdown: outline.NewMarkdownOutliner(),
	}
}

// Run discovers files under opts.Paths and processes them concurrently.
// It returns outcomes in sorted path order and aggregate stats.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Transition: opts.Transition,
		Files:      make([]FileOutcome, 0, len(files)),
		Stats:      newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Go(func() {
			for path := range workCh {
				if ctx.Err() != nil {
					return
				}
				select {
				case <-ctx.Done():
					return
				case outCh <- r.ProcessFile(ctx, path, opts):
				}
			}
		})
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	logging.FromContext(opts.withLogger(ctx)).Debug("run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithRegion, result.Stats.FilesWithRegions,
		logging.FieldRegionsTotal, result.Stats.RegionsTotal,
	)

	return result, nil
}

// ProcessFile outlines one file and applies opts.Transition to its regions.
func (r *Runner) ProcessFile(ctx context.Context, path string, opts Options) FileOutcome {
	outcome := FileOutcome{Path: path}

	ctx, logger := logging.With(opts.withLogger(ctx), logging.FieldPath, path)

	content, err := fsutil.ReadSource(ctx, path)
	if err != nil {
		outcome.Error = fmt.Errorf("read file: %w", err)
		return outcome
	}

	outcome.Language = langdetect.Detect(path, content)

	doc := outline.NewDocument(path, content)
	folds, err := r.outliner(opts.Outliner, outcome.Language).Outline(ctx, doc)
	if err != nil {
		outcome.Error = fmt.Errorf("outline: %w", err)
		return outcome
	}

	buffer := outline.NewBuffer(doc)
	manager := outline.NewManager(buffer, folds,
		outline.WithInitialState(opts.InitialState),
		outline.WithCollapsedLines(opts.CollapsedLines...),
	)
	workspace := outline.NewWorkspace()
	workspace.Open(buffer, manager)

	cmds := commands.New(workspace,
		commands.WithClassifier(marker.NewClassifier(opts.Syntaxes...)),
		commands.WithLogger(logger),
		commands.WithDisposal(ctx),
	)
	defer cmds.Close()

	regions, err := cmds.Regions()
	if err != nil {
		outcome.Error = err
		return outcome
	}

	logger.Debug("outlined",
		logging.FieldLanguage, outcome.Language,
		logging.FieldRegions, len(regions),
	)

	if opts.Transition != nil {
		res := <-cmds.Dispatch(*opts.Transition)
		if res.Err != nil {
			outcome.Error = res.Err
			return outcome
		}
		outcome.Report = res.Report
	}

	outcome.Regions = describeRegions(doc, regions, outcome.Report)
	return outcome
}

func (r *Runner) outliner(mode config.OutlinerMode, language string) outline.Outliner {
	switch mode {
	case config.OutlinerMarkers:
		return r.markers
	case config.OutlinerMarkdown:
		return r.markdown
	default:
		if langdetect.IsMarkdown(language) {
			return r.markdown
		}
		return r.markers
	}
}

func describeRegions(doc *outline.Document, regions []fold.RegionSpan, report fold.Report) []Region {
	if len(regions) == 0 {
		return nil
	}

	changes := make(map[fold.SpanID]fold.Change, len(report.Changes))
	for _, change := range report.Changes {
		changes[change.Region.ID] = change
	}

	out := make([]Region, 0, len(regions))
	for _, region := range regions {
		described := Region{
			ID:        region.ID,
			Syntax:    region.Syntax,
			StartLine: doc.LineAt(region.Extent.Start),
			EndLine:   doc.LineAt(region.Extent.End()),
			Depth:     region.Depth,
			Label:     label(region.ExtentText()),
			Before:    region.State,
			After:     region.State,
		}

		if change, ok := changes[region.ID]; ok {
			described.After = change.After()
			described.Action = change.Action
			described.Err = change.Err
		}

		out = append(out, described)
	}
	return out
}

// label returns the first line of a region's text, trimmed.
func label(text string) string {
	first, _, _ := strings.Cut(text, "\n")
	return strings.TrimSpace(first)
}

// withLogger attaches o.Logger to ctx when set, so it takes precedence over
// a logger the caller already carries.
func (o Options) withLogger(ctx context.Context) context.Context {
	return logging.WithLogger(ctx, o.Logger)
}
