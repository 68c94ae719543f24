package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/regionfold/pkg/fold"
	"github.com/yaklabco/regionfold/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 5 // FILE, LINES, SYNTAX, STATE, LABEL
	minFileWidth     = 16
	minLinesWidth    = 7
	minSyntaxWidth   = 13
	minStateWidth    = 9
	minLabelWidth    = 20
	heavySeparator   = "="
	defaultTermWidth = 100
)

// TableRow represents a single region in the table.
type TableRow struct {
	File   string
	Lines  string
	Syntax string
	Depth  int
	Label  string

	// State is the plain state text; Style colours it.
	State string
	Style lipgloss.Style
}

// TableFormatter formats regions as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

// RegionToTableRow converts a region of the file at path to a table row.
func (t *TableFormatter) RegionToTableRow(path string, region runner.Region) TableRow {
	row := TableRow{
		File:   path,
		Lines:  lineRange(region),
		Syntax: region.Syntax.String(),
		Depth:  region.Depth,
		Label:  region.Label,
		State:  region.After.String(),
		Style:  t.styles.Expanded,
	}

	if region.Action == fold.ActionFailed {
		row.State = "refused"
		row.Style = t.styles.Failure
		return row
	}

	if region.Action != fold.ActionUnchanged {
		row.State += "*"
	}
	if region.After == fold.StateCollapsed {
		row.Style = t.styles.Collapsed
	}

	return row
}

type columnWidths struct {
	file   int
	lines  int
	syntax int
	state  int
	label  int
}

// FormatTable formats rows as a table with a header. Changed states are
// marked with "*".
func (t *TableFormatter) FormatTable(rows []TableRow) string {
	if len(rows) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder
	builder.WriteString(t.styles.TableHeader.Render(fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s  %s",
		widths.file, "FILE",
		widths.lines, "LINES",
		widths.syntax, "SYNTAX",
		widths.state, "STATE",
		"LABEL",
	)))
	builder.WriteString("\n")
	builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, t.totalWidth(widths))))
	builder.WriteString("\n")

	previous := ""
	for _, row := range rows {
		file := truncateFilePath(row.File, widths.file)
		if row.File == previous {
			file = ""
		}
		previous = row.File

		label := truncateString(strings.Repeat(indentUnit, row.Depth)+row.Label, widths.label)

		builder.WriteString(fmt.Sprintf(" %s  %s  %s  %s  %s\n",
			t.styles.FilePath.Render(pad(file, widths.file)),
			t.styles.Location.Render(pad(row.Lines, widths.lines)),
			t.styles.Syntax.Render(pad(row.Syntax, widths.syntax)),
			row.Style.Render(pad(row.State, widths.state)),
			t.styles.Label.Render(label),
		))
	}

	return builder.String()
}

// FormatTableSummary formats a summary line for table output.
func (t *TableFormatter) FormatTableSummary(stats runner.Stats) string {
	parts := []string{
		fmt.Sprintf("%d files scanned", stats.FilesProcessed),
		fmt.Sprintf("%d regions", stats.RegionsTotal),
	}

	if stats.RegionsExpanded > 0 {
		parts = append(parts, t.styles.Expanded.Render(fmt.Sprintf("%d expanded", stats.RegionsExpanded)))
	}
	if stats.RegionsCollapsed > 0 {
		parts = append(parts, t.styles.Collapsed.Render(fmt.Sprintf("%d collapsed", stats.RegionsCollapsed)))
	}
	if stats.RegionsFailed > 0 {
		parts = append(parts, t.styles.Failure.Render(fmt.Sprintf("%d refused", stats.RegionsFailed)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, t.styles.Error.Render(fmt.Sprintf("%d files failed", stats.FilesErrored)))
	}

	return " " + strings.Join(parts, " | ")
}

func (t *TableFormatter) calculateColumnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{
		file:   minFileWidth,
		lines:  minLinesWidth,
		syntax: minSyntaxWidth,
		state:  minStateWidth,
		label:  minLabelWidth,
	}

	for _, row := range rows {
		widths.file = max(widths.file, len(row.File))
		widths.lines = max(widths.lines, len(row.Lines))
		widths.syntax = max(widths.syntax, len(row.Syntax))
		widths.state = max(widths.state, len(row.State))
		widths.label = max(widths.label, len(indentUnit)*row.Depth+len(row.Label))
	}

	// Shrink the label first, then the file column.
	if excess := t.totalWidth(widths) - t.termWidth; excess > 0 {
		widths.label = max(minLabelWidth, widths.label-excess)
	}
	if excess := t.totalWidth(widths) - t.termWidth; excess > 0 {
		widths.file = max(minFileWidth, widths.file-excess)
	}

	return widths
}

func (t *TableFormatter) totalWidth(widths columnWidths) int {
	return widths.file + widths.lines + widths.syntax + widths.state + widths.label +
		tablePadding*tableColumnCount
}

func pad(s string, width int) string {
	return fmt.Sprintf("%-*s", width, s)
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
