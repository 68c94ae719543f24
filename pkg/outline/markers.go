package outline

import (
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/regionfold/pkg/marker"
)

// MarkerOutliner scans source text line by line. It pairs region start and
// end markers, and also reports multi-line brace blocks and multi-line
// HTML comments.
type MarkerOutliner struct{}

// NewMarkerOutliner returns a MarkerOutliner.
func NewMarkerOutliner() *MarkerOutliner {
	return &MarkerOutliner{}
}

type openRegion struct {
	syntax marker.Syntax
	start  int
}

type openBlock struct {
	line  int
	start int
}

// Outline implements Outliner.
//
// A region fold starts at its marker token and ends at the end of its
// matching end-marker line. An end marker closes the innermost open region
// of the same syntax; regions opened after it are unterminated and dropped.
func (o *MarkerOutliner) Outline(ctx context.Context, doc *Document) ([]Fold, error) {
	var (
		folds   []Fold
		regions []openRegion
		blocks  []openBlock
	)
	comment, commentLine := -1, 0

	for idx, info := range doc.Lines {
		if idx%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("outline cancelled: %w", err)
			}
		}

		line := string(doc.Content[info.StartOffset:info.NewlineStart])
		lineNo := idx + 1

		if comment >= 0 {
			if strings.Contains(line, "-->") {
				if lineNo > commentLine {
					folds = append(folds, Fold{Extent: span(comment, info.NewlineStart), Kind: KindComment})
				}
				comment = -1
			}
			continue
		}

		if syntax := marker.EndMarker(line); syntax != marker.SyntaxNone {
			if top := lastRegion(regions, syntax); top >= 0 {
				folds = append(folds, Fold{Extent: span(regions[top].start, info.NewlineStart), Kind: KindRegion})
				regions = regions[:top]
			}
			continue
		}

		if syntax, offset := marker.StartMarker(line); syntax != marker.SyntaxNone {
			regions = append(regions, openRegion{syntax: syntax, start: info.StartOffset + offset})
			continue
		}

		trimmed := strings.TrimSpace(line)
		indent := len(line) - len(strings.TrimLeft(line, " \t"))

		if open := strings.Index(line, "<!--"); open >= 0 && !strings.Contains(line[open:], "-->") {
			comment = info.StartOffset + open
			commentLine = lineNo
			continue
		}

		if strings.HasPrefix(trimmed, "}") && len(blocks) > 0 {
			top := blocks[len(blocks)-1]
			blocks = blocks[:len(blocks)-1]
			if lineNo > top.line {
				end := info.StartOffset + strings.Index(line, "}") + 1
				folds = append(folds, Fold{Extent: span(top.start, end), Kind: KindBlock})
			}
		}

		if strings.HasSuffix(trimmed, "{") {
			blocks = append(blocks, openBlock{line: lineNo, start: info.StartOffset + indent})
		}
	}

	return sortFolds(folds), nil
}

// lastRegion returns the index of the innermost open region with the given
// syntax, or -1.
func lastRegion(regions []openRegion, syntax marker.Syntax) int {
	for idx := len(regions) - 1; idx >= 0; idx-- {
		if regions[idx].syntax == syntax {
			return idx
		}
	}
	return -1
}
