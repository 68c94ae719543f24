package outline_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/regionfold/pkg/outline"
)

type foldView struct {
	Kind      outline.Kind
	StartLine int
	EndLine   int
	Head      string
}

func describe(doc *outline.Document, folds []outline.Fold) []foldView {
	out := make([]foldView, 0, len(folds))
	for _, f := range folds {
		text := doc.Text(f.Extent)
		head, _, _ := strings.Cut(text, "\n")
		out = append(out, foldView{
			Kind:      f.Kind,
			StartLine: doc.LineAt(f.Extent.Start),
			EndLine:   doc.LineAt(f.Extent.End()),
			Head:      head,
		})
	}
	return out
}

const csharpSource = `using System;
#region Outer
class A {
    #region Inner
    void F() {
        return;
    }
    #endregion
}
#endregion
`

func TestMarkerOutliner_NestedRegionsAndBlocks(t *testing.T) {
	t.Parallel()

	doc := outline.NewDocument("a.cs", []byte(csharpSource))
	folds, err := outline.NewMarkerOutliner().Outline(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, []foldView{
		{outline.KindRegion, 2, 10, "#region Outer"},
		{outline.KindBlock, 3, 9, "class A {"},
		{outline.KindRegion, 4, 8, "#region Inner"},
		{outline.KindBlock, 5, 7, "void F() {"},
	}, describe(doc, folds))
}

func TestMarkerOutliner_PragmaAndHTML(t *testing.T) {
	t.Parallel()

	src := strings.Join([]string{
		"#pragma region Helpers",
		"int helper();",
		"#pragma endregion",
		"<!-- region nav -->",
		"<nav></nav>",
		"<!-- endregion -->",
		"<!--",
		"  the region is unclear",
		"-->",
		"<!-- single line -->",
	}, "\n")

	doc := outline.NewDocument("x.h", []byte(src))
	folds, err := outline.NewMarkerOutliner().Outline(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, []foldView{
		{outline.KindRegion, 1, 3, "#pragma region Helpers"},
		{outline.KindRegion, 4, 6, "<!-- region nav -->"},
		{outline.KindComment, 7, 9, "<!--"},
	}, describe(doc, folds))
}

func TestMarkerOutliner_Unbalanced(t *testing.T) {
	t.Parallel()

	src := strings.Join([]string{
		"#endregion",
		"#region A",
		"#region B",
		"#pragma region C",
		"#endregion",
		"#region D",
	}, "\n")

	doc := outline.NewDocument("x.cs", []byte(src))
	folds, err := outline.NewMarkerOutliner().Outline(context.Background(), doc)
	require.NoError(t, err)

	// The stray end is ignored, B closes, A/C/D never close.
	assert.Equal(t, []foldView{
		{outline.KindRegion, 3, 5, "#region B"},
	}, describe(doc, folds))
}

func TestMarkerOutliner_ExtentStartsAtMarker(t *testing.T) {
	t.Parallel()

	doc := outline.NewDocument("x.cs", []byte("    #region Indented\n    #endregion"))
	folds, err := outline.NewMarkerOutliner().Outline(context.Background(), doc)
	require.NoError(t, err)
	require.Len(t, folds, 1)

	assert.Equal(t, 4, folds[0].Extent.Start)
	assert.True(t, strings.HasPrefix(doc.Text(folds[0].Extent), "#region Indented"))
	assert.True(t, strings.HasSuffix(doc.Text(folds[0].Extent), "#endregion"))
}

func TestMarkerOutliner_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := outline.NewMarkerOutliner().Outline(ctx, outline.NewDocument("x", []byte("#region\n#endregion")))
	require.ErrorIs(t, err, context.Canceled)
}

const markdownSource = "# Title\n" +
	"\n" +
	"Intro.\n" +
	"\n" +
	"<!-- region Setup -->\n" +
	"## Install\n" +
	"\n" +
	"```sh\n" +
	"go install ./...\n" +
	"```\n" +
	"<!-- endregion -->\n" +
	"\n" +
	"## Usage\n" +
	"\n" +
	"<!--\n" +
	"hidden notes\n" +
	"-->\n"

func TestMarkdownOutliner(t *testing.T) {
	t.Parallel()

	doc := outline.NewDocument("README.md", []byte(markdownSource))
	folds, err := outline.NewMarkdownOutliner().Outline(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, []foldView{
		{outline.KindHeading, 1, 17, "# Title"},
		{outline.KindRegion, 5, 11, "<!-- region Setup -->"},
		{outline.KindHeading, 6, 11, "## Install"},
		{outline.KindCode, 8, 10, "```sh"},
		{outline.KindHeading, 13, 17, "## Usage"},
		{outline.KindComment, 15, 17, "<!--"},
	}, describe(doc, folds))
}

func TestMarkdownOutliner_Empty(t *testing.T) {
	t.Parallel()

	folds, err := outline.NewMarkdownOutliner().Outline(context.Background(), outline.NewDocument("e.md", nil))
	require.NoError(t, err)
	assert.Empty(t, folds)
}
