package fold_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/regionfold/pkg/fold"
	"github.com/yaklabco/regionfold/pkg/marker"
)

func nestedExample() *fakeManager {
	return newFakeManager(
		fakeEntry{"#region Outer", false},
		fakeEntry{"#region Inner", true},
		fakeEntry{"<!-- not a region -->", false},
	)
}

func TestSelect_NestedExample(t *testing.T) {
	t.Parallel()

	mgr := nestedExample()
	sel, err := fold.Select(&fakeHost{manager: mgr}, nil)
	require.NoError(t, err)
	require.Len(t, sel.Regions, 2)

	assert.Equal(t, fold.SpanID(1), sel.Regions[0].ID)
	assert.Equal(t, fold.SpanID(2), sel.Regions[1].ID)
	assert.Equal(t, marker.SyntaxCRegion, sel.Regions[0].Syntax)
	assert.Same(t, mgr, sel.Manager)
}

func TestSelect_ServiceUnavailable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		host    *fakeHost
		service string
	}{
		{"no text manager", &fakeHost{manager: nestedExample(), noTextManager: true}, fold.ServiceTextManager},
		{"no outlining", &fakeHost{manager: nestedExample(), noOutlining: true}, fold.ServiceOutlining},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sel, err := fold.Select(tt.host, nil)
			require.Error(t, err)
			assert.Nil(t, sel)
			assert.ErrorIs(t, err, fold.ErrServiceUnavailable)

			var unavailable *fold.ServiceUnavailableError
			require.True(t, errors.As(err, &unavailable))
			assert.Equal(t, tt.service, unavailable.Service)
			assert.Contains(t, err.Error(), tt.service)
		})
	}
}

func TestSelect_NoActiveDocumentIsEmpty(t *testing.T) {
	t.Parallel()

	hosts := map[string]*fakeHost{
		"no view":        {manager: nestedExample(), noView: true},
		"no manager":     {manager: nestedExample(), noManager: true},
		"empty snapshot": {manager: nestedExample(), emptySnapshot: true},
	}

	for name, host := range hosts {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			sel, err := fold.Select(host, nil)
			require.NoError(t, err)
			assert.True(t, sel.Empty())

			report := fold.Toggle(host.manager, sel.Regions)
			assert.Empty(t, report.Changes)
			assert.Empty(t, host.manager.calls)
		})
	}
}

func TestSelectRegions_FilterLaw(t *testing.T) {
	t.Parallel()

	mgr := newFakeManager(
		fakeEntry{"func main() {", false},
		fakeEntry{"#region A", false},
		fakeEntry{"<!-- foo -->", true},
		fakeEntry{"<!-- region B -->", true},
		fakeEntry{"  #region indented", false},
		fakeEntry{"#pragma region C", false},
		fakeEntry{"#pragma once", false},
	)
	spans := mgr.AllRegions(fold.Range{Start: 0, Length: mgr.buffer.Len()})

	regions := fold.SelectRegions(spans, nil)

	var ids []fold.SpanID
	for _, r := range regions {
		ids = append(ids, r.ID)
		assert.True(t, marker.IsRegionMarker(r.ExtentText()))
	}
	assert.Equal(t, []fold.SpanID{2, 4, 6}, ids)

	// Output is a subsequence of the input.
	pos := 0
	for _, r := range regions {
		for pos < len(spans) && spans[pos].ID != r.ID {
			pos++
		}
		require.Less(t, pos, len(spans), "region %d not found in order", r.ID)
		assert.Equal(t, spans[pos], r.Span)
	}
}

func TestSelectRegions_Classifier(t *testing.T) {
	t.Parallel()

	mgr := newFakeManager(
		fakeEntry{"#region A", false},
		fakeEntry{"<!-- region B -->", false},
	)
	spans := mgr.AllRegions(fold.Range{Start: 0, Length: mgr.buffer.Len()})

	regions := fold.SelectRegions(spans, marker.NewClassifier(marker.SyntaxHTMLRegion))
	require.Len(t, regions, 1)
	assert.Equal(t, marker.SyntaxHTMLRegion, regions[0].Syntax)
}

func TestSelectRegions_Nesting(t *testing.T) {
	t.Parallel()

	text := "#region A\n#region B\n#region C\n#endregion\n#endregion\n#endregion\n#region D\n#endregion"
	buffer := &textBuffer{text: text}
	span := func(id int, start, end int) fold.Span {
		return fold.Span{ID: fold.SpanID(id), Extent: fold.Range{Start: start, Length: end - start}, Source: buffer}
	}
	spans := []fold.Span{
		span(1, 0, 62),
		span(2, 10, 51),
		span(3, 20, 40),
		span(4, 63, len(text)),
	}

	regions := fold.SelectRegions(spans, nil)
	require.Len(t, regions, 4)

	assert.Equal(t, []int{0, 1, 2, 0}, []int{regions[0].Depth, regions[1].Depth, regions[2].Depth, regions[3].Depth})
	assert.Equal(t, []int{-1, 0, 1, -1}, []int{regions[0].Parent, regions[1].Parent, regions[2].Parent, regions[3].Parent})
}

func TestSpan_ExtentTextWithoutSource(t *testing.T) {
	t.Parallel()

	span := fold.Span{Extent: fold.Range{Start: 0, Length: 7}}
	assert.Empty(t, span.ExtentText())
	assert.Empty(t, fold.SelectRegions([]fold.Span{span}, nil))
}

func TestRange(t *testing.T) {
	t.Parallel()

	r := fold.Range{Start: 5, Length: 10}
	assert.Equal(t, 15, r.End())
	assert.True(t, r.Contains(fold.Range{Start: 5, Length: 10}))
	assert.True(t, r.Contains(fold.Range{Start: 6, Length: 2}))
	assert.False(t, r.Contains(fold.Range{Start: 4, Length: 2}))
	assert.True(t, r.Overlaps(fold.Range{Start: 14, Length: 3}))
	assert.False(t, r.Overlaps(fold.Range{Start: 15, Length: 3}))
	assert.Equal(t, "[5,15)", r.String())
}
