package outline

import (
	"context"
	"slices"

	"github.com/yaklabco/regionfold/pkg/fold"
)

// Kind describes what produced a fold.
type Kind string

// Fold kinds.
const (
	KindRegion  Kind = "region"
	KindBlock   Kind = "block"
	KindComment Kind = "comment"
	KindHeading Kind = "heading"
	KindCode    Kind = "code"
)

// Fold is a foldable range discovered in a document.
type Fold struct {
	Extent fold.Range
	Kind   Kind
}

// Outliner discovers foldable ranges in a document.
type Outliner interface {
	Outline(ctx context.Context, doc *Document) ([]Fold, error)
}

// sortFolds orders folds by start offset, outer (longer) folds first, and
// drops exact duplicates.
func sortFolds(folds []Fold) []Fold {
	slices.SortStableFunc(folds, func(a, b Fold) int {
		if a.Extent.Start != b.Extent.Start {
			return a.Extent.Start - b.Extent.Start
		}
		return b.Extent.Length - a.Extent.Length
	})

	return slices.CompactFunc(folds, func(a, b Fold) bool {
		return a.Extent == b.Extent
	})
}

func span(start, end int) fold.Range {
	return fold.Range{Start: start, Length: end - start}
}
