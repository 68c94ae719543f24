package runner

import (
	"github.com/yaklabco/regionfold/pkg/fold"
	"github.com/yaklabco/regionfold/pkg/marker"
)

// Region describes one region of a processed file.
type Region struct {
	ID        fold.SpanID
	Syntax    marker.Syntax
	StartLine int
	EndLine   int
	Depth     int

	// Label is the marker line with surrounding whitespace removed.
	Label string

	Before fold.State
	After  fold.State
	Action fold.Action

	// Err is set when the host refused the transition for this region.
	Err error
}

// FileOutcome is the result of processing one file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Language is the detected language of the file.
	Language string

	// Regions lists the file's regions in document order.
	Regions []Region

	// Report is the transition report. It is zero when only listing.
	Report fold.Report

	// Error is set if the file could not be processed.
	Error error
}

// Changed returns how many regions changed state.
func (o FileOutcome) Changed() int {
	return o.Report.Count(fold.ActionExpanded) + o.Report.Count(fold.ActionCollapsed)
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully processed.
	FilesProcessed int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// FilesWithRegions is the number of files with at least one region.
	FilesWithRegions int

	// RegionsTotal is the number of regions across all files.
	RegionsTotal int

	// RegionsBySyntax maps marker syntax names to counts.
	RegionsBySyntax map[string]int

	// RegionsExpanded and RegionsCollapsed count state changes.
	RegionsExpanded  int
	RegionsCollapsed int

	// RegionsFailed counts regions whose transition the host refused.
	RegionsFailed int
}

// Result is the overall runner result.
type Result struct {
	// Transition is the transition that was applied, or nil for a listing.
	Transition *fold.Transition

	// Files contains the outcome for each processed file, sorted by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any file errored or any region transition
// was refused.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0 || r.Stats.RegionsFailed > 0
}

// HasRegions reports whether any region was found.
func (r *Result) HasRegions() bool {
	if r == nil {
		return false
	}
	return r.Stats.RegionsTotal > 0
}

func newStats() Stats {
	return Stats{
		RegionsBySyntax: make(map[string]int),
	}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.RegionsTotal += len(outcome.Regions)
	if len(outcome.Regions) > 0 {
		r.Stats.FilesWithRegions++
	}

	for _, region := range outcome.Regions {
		r.Stats.RegionsBySyntax[region.Syntax.String()]++
	}

	r.Stats.RegionsExpanded += outcome.Report.Count(fold.ActionExpanded)
	r.Stats.RegionsCollapsed += outcome.Report.Count(fold.ActionCollapsed)
	r.Stats.RegionsFailed += outcome.Report.Count(fold.ActionFailed)
}
