package pretty

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/regionfold/pkg/fold"
	"github.com/yaklabco/regionfold/pkg/runner"
)

const summaryDividerWidth = 40

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "5 regions in 2 files, 3 collapsed, 1 refused (4 files scanned)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats, transition *fold.Transition) string {
	scanned := s.Dim.Render(fmt.Sprintf(" (%d %s scanned)",
		stats.FilesProcessed, plural(stats.FilesProcessed, "file", "files")))

	if stats.RegionsTotal == 0 {
		msg := s.Success.Render("No regions found") + scanned
		if stats.FilesErrored > 0 {
			msg += ", " + s.Failure.Render(fmt.Sprintf("%d %s failed", stats.FilesErrored, plural(stats.FilesErrored, "file", "files")))
		}
		return msg + "\n"
	}

	parts := []string{fmt.Sprintf("%d %s in %d %s",
		stats.RegionsTotal, plural(stats.RegionsTotal, "region", "regions"),
		stats.FilesWithRegions, plural(stats.FilesWithRegions, "file", "files"),
	)}

	if transition != nil {
		changed := stats.RegionsExpanded + stats.RegionsCollapsed
		if changed == 0 {
			parts = append(parts, s.Dim.Render("nothing to "+transition.String()))
		}
		if stats.RegionsExpanded > 0 {
			parts = append(parts, s.Expanded.Render(fmt.Sprintf("%d expanded", stats.RegionsExpanded)))
		}
		if stats.RegionsCollapsed > 0 {
			parts = append(parts, s.Collapsed.Render(fmt.Sprintf("%d collapsed", stats.RegionsCollapsed)))
		}
	}

	if stats.RegionsFailed > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d refused", stats.RegionsFailed)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d %s failed", stats.FilesErrored, plural(stats.FilesErrored, "file", "files"))))
	}

	return strings.Join(parts, ", ") + scanned + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	row := func(label string, value string) {
		builder.WriteString(fmt.Sprintf("  %-18s %s\n", label+":", value))
	}

	builder.WriteString("\n")
	builder.WriteString(s.Bold.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Files scanned", strconv.Itoa(stats.FilesProcessed))
	row("Files with regions", strconv.Itoa(stats.FilesWithRegions))
	if stats.FilesErrored > 0 {
		row("Files failed", s.Failure.Render(strconv.Itoa(stats.FilesErrored)))
	}

	builder.WriteString("\n")
	row("Regions", strconv.Itoa(stats.RegionsTotal))

	syntaxes := make([]string, 0, len(stats.RegionsBySyntax))
	for name := range stats.RegionsBySyntax {
		syntaxes = append(syntaxes, name)
	}
	slices.Sort(syntaxes)
	for _, name := range syntaxes {
		row("  "+name, s.Syntax.Render(strconv.Itoa(stats.RegionsBySyntax[name])))
	}

	if stats.RegionsExpanded > 0 {
		row("Expanded", s.Expanded.Render(strconv.Itoa(stats.RegionsExpanded)))
	}
	if stats.RegionsCollapsed > 0 {
		row("Collapsed", s.Collapsed.Render(strconv.Itoa(stats.RegionsCollapsed)))
	}
	if stats.RegionsFailed > 0 {
		row("Refused", s.Failure.Render(strconv.Itoa(stats.RegionsFailed)))
	}

	return builder.String()
}
