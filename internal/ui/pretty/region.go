package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/regionfold/pkg/fold"
	"github.com/yaklabco/regionfold/pkg/runner"
)

// indentUnit is the per-depth indentation of nested regions.
const indentUnit = "  "

// FormatState returns a styled fold state.
func (s *Styles) FormatState(state fold.State) string {
	if state == fold.StateCollapsed {
		return s.Collapsed.Render(state.String())
	}
	return s.Expanded.Render(state.String())
}

// FormatTransition describes what happened to a region: its state when
// nothing changed, "before -> after" when it changed, or the refusal.
func (s *Styles) FormatTransition(region runner.Region) string {
	switch region.Action {
	case fold.ActionExpanded, fold.ActionCollapsed:
		return s.FormatState(region.Before) + s.Dim.Render(" -> ") + s.FormatState(region.After)
	case fold.ActionFailed:
		return s.Failure.Render("refused")
	default:
		return s.FormatState(region.After)
	}
}

// FormatRegion formats one region as an indented line:
//
//	12-40   c-region  expanded  #region Helpers
func (s *Styles) FormatRegion(region runner.Region) string {
	var builder strings.Builder

	builder.WriteString("  ")
	builder.WriteString(s.Guide.Render(strings.Repeat(indentUnit, region.Depth)))
	builder.WriteString(s.Location.Render(fmt.Sprintf("%-7s", lineRange(region))))
	builder.WriteString(" ")
	builder.WriteString(s.Syntax.Render(fmt.Sprintf("%-13s", region.Syntax.String())))
	builder.WriteString(" ")
	builder.WriteString(s.FormatTransition(region))
	builder.WriteString("  ")
	builder.WriteString(s.Label.Render(region.Label))
	builder.WriteString("\n")

	if region.Err != nil {
		builder.WriteString("    " + s.Dim.Render("reason:") + " " + s.Error.Render(region.Err.Error()) + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, regionCount int) string {
	header := s.FilePath.Render(path)
	if regionCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", regionCount, plural(regionCount, "region", "regions")))
	}
	return header
}

func lineRange(region runner.Region) string {
	if region.EndLine <= region.StartLine {
		return fmt.Sprintf("%d", region.StartLine)
	}
	return fmt.Sprintf("%d-%d", region.StartLine, region.EndLine)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
