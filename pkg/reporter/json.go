package reporter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/regionfold/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version    string           `json:"version"`
	Transition string           `json:"transition,omitempty"`
	Files      []JSONFileResult `json:"files"`
	Summary    JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path     string       `json:"path"`
	Language string       `json:"language,omitempty"`
	Regions  []JSONRegion `json:"regions"`
	Error    string       `json:"error,omitempty"`
}

// JSONRegion represents a single region.
type JSONRegion struct {
	ID        int    `json:"id"`
	Syntax    string `json:"syntax"`
	StartLine int    `json:"startLine"`
	EndLine   int    `json:"endLine"`
	Depth     int    `json:"depth"`
	Label     string `json:"label"`
	Before    string `json:"before"`
	After     string `json:"after"`
	Action    string `json:"action,omitempty"`
	Error     string `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesScanned     int            `json:"filesScanned"`
	FilesWithRegions int            `json:"filesWithRegions"`
	FilesErrored     int            `json:"filesErrored"`
	Regions          int            `json:"regions"`
	BySyntax         map[string]int `json:"bySyntax"`
	Expanded         int            `json:"expanded"`
	Collapsed        int            `json:"collapsed"`
	Refused          int            `json:"refused"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	sink

	opts Options
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{sink: newSink(opts.Writer), opts: opts}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer r.flush(&err)

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.w)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.Regions, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: "1.0.0",
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{BySyntax: make(map[string]int)},
	}

	if result == nil {
		return output
	}

	if result.Transition != nil {
		output.Transition = result.Transition.String()
	}

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:     r.opts.displayPath(file.Path),
			Language: file.Language,
			Regions:  make([]JSONRegion, 0, len(file.Regions)),
		}

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}

		for _, region := range file.Regions {
			jsonRegion := JSONRegion{
				ID:        int(region.ID),
				Syntax:    region.Syntax.String(),
				StartLine: region.StartLine,
				EndLine:   region.EndLine,
				Depth:     region.Depth,
				Label:     region.Label,
				Before:    region.Before.String(),
				After:     region.After.String(),
			}
			if result.Transition != nil {
				jsonRegion.Action = region.Action.String()
			}
			if region.Err != nil {
				jsonRegion.Error = region.Err.Error()
			}
			fileResult.Regions = append(fileResult.Regions, jsonRegion)
		}

		output.Files = append(output.Files, fileResult)
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesScanned:     stats.FilesProcessed,
		FilesWithRegions: stats.FilesWithRegions,
		FilesErrored:     stats.FilesErrored,
		Regions:          stats.RegionsTotal,
		BySyntax:         stats.RegionsBySyntax,
		Expanded:         stats.RegionsExpanded,
		Collapsed:        stats.RegionsCollapsed,
		Refused:          stats.RegionsFailed,
	}
	if output.Summary.BySyntax == nil {
		output.Summary.BySyntax = make(map[string]int)
	}

	return output
}
