package pretty_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/regionfold/internal/ui/pretty"
	"github.com/yaklabco/regionfold/pkg/fold"
	"github.com/yaklabco/regionfold/pkg/marker"
	"github.com/yaklabco/regionfold/pkg/runner"
)

func TestFormatRegion(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	listed := runner.Region{
		Syntax: marker.SyntaxCRegion, StartLine: 3, EndLine: 9,
		Label: "#region Fields",
	}
	assert.Equal(t, "  3-9     c-region      expanded  #region Fields\n", styles.FormatRegion(listed))

	nested := listed
	nested.Depth = 1
	nested.Before = fold.StateExpanded
	nested.After = fold.StateCollapsed
	nested.Action = fold.ActionCollapsed
	assert.Equal(t, "    3-9     c-region      expanded -> collapsed  #region Fields\n", styles.FormatRegion(nested))

	refused := listed
	refused.Action = fold.ActionFailed
	refused.Err = errors.New("collapse span 1: host refused the transition")
	out := styles.FormatRegion(refused)
	assert.Contains(t, out, "refused")
	assert.Contains(t, out, "reason: collapse span 1")
}

func TestFormatFileHeader(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "a.cs (1 region)", styles.FormatFileHeader("a.cs", 1))
	assert.Equal(t, "a.cs (2 regions)", styles.FormatFileHeader("a.cs", 2))
	assert.Equal(t, "a.cs", styles.FormatFileHeader("a.cs", 0))
}

func TestTableFormatter(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	table := pretty.NewTableFormatter(styles, 80)

	rows := []pretty.TableRow{
		table.RegionToTableRow("src/a.cs", runner.Region{
			Syntax: marker.SyntaxCRegion, StartLine: 1, EndLine: 20, Label: "#region Outer",
			After: fold.StateCollapsed, Action: fold.ActionCollapsed,
		}),
		table.RegionToTableRow("src/a.cs", runner.Region{
			Syntax: marker.SyntaxCRegion, StartLine: 4, EndLine: 8, Depth: 1, Label: "#region Inner",
			After: fold.StateCollapsed,
		}),
		table.RegionToTableRow("web/index.html", runner.Region{
			Syntax: marker.SyntaxHTMLRegion, StartLine: 2, EndLine: 2, Label: strings.Repeat("x", 200),
			Action: fold.ActionFailed,
		}),
	}

	assert.Equal(t, "collapsed*", rows[0].State)
	assert.Equal(t, "collapsed", rows[1].State)
	assert.Equal(t, "refused", rows[2].State)
	assert.Equal(t, "2", rows[2].Lines)

	out := table.FormatTable(rows)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)

	assert.Contains(t, lines[0], "FILE")
	assert.Contains(t, lines[0], "LABEL")
	assert.Contains(t, lines[2], "src/a.cs")
	assert.NotContains(t, lines[3], "src/a.cs", "repeated file names are blanked")
	assert.Contains(t, lines[3], "  #region Inner")
	assert.Contains(t, lines[4], "...")
	for _, line := range lines {
		assert.LessOrEqual(t, len(line), 80)
	}

	assert.Empty(t, table.FormatTable(nil))
}

func TestTableFormatter_FormatTableSummary(t *testing.T) {
	t.Parallel()

	table := pretty.NewTableFormatter(pretty.NewStyles(false), 0)
	out := table.FormatTableSummary(runner.Stats{FilesProcessed: 2, RegionsTotal: 5, RegionsCollapsed: 3})
	assert.Equal(t, " 2 files scanned | 5 regions | 3 collapsed", out)
}
