package outline

import (
	"context"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/regionfold/pkg/fold"
)

// MarkdownOutliner folds Markdown structure: heading sections, fenced code
// blocks and multi-line HTML blocks. Region markers are found by an
// embedded MarkerOutliner and merged in.
type MarkdownOutliner struct {
	md      goldmark.Markdown
	markers *MarkerOutliner
}

// NewMarkdownOutliner returns an outliner parsing GitHub Flavored Markdown.
func NewMarkdownOutliner() *MarkdownOutliner {
	return &MarkdownOutliner{
		md:      goldmark.New(goldmark.WithExtensions(extension.GFM)),
		markers: NewMarkerOutliner(),
	}
}

type heading struct {
	level int
	line  int
}

// Outline implements Outliner.
func (o *MarkdownOutliner) Outline(ctx context.Context, doc *Document) ([]Fold, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("outline cancelled: %w", err)
	}

	folds, err := o.markers.Outline(ctx, doc)
	if err != nil {
		return nil, err
	}

	if doc.Len() == 0 {
		return folds, nil
	}

	root := o.md.Parser().Parse(text.NewReader(doc.Content), parser.WithContext(parser.NewContext()))

	var headings []heading

	walkErr := ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || node.Type() != ast.TypeBlock {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			if n.Lines().Len() > 0 {
				headings = append(headings, heading{level: n.Level, line: doc.LineAt(n.Lines().At(0).Start)})
			}
		case *ast.FencedCodeBlock:
			if f, ok := fencedCodeFold(doc, n); ok {
				folds = append(folds, f)
			}
		case *ast.HTMLBlock:
			if f, ok := htmlBlockFold(doc, n); ok {
				folds = append(folds, f)
			}
		}
		return ast.WalkContinue, nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk markdown: %w", walkErr)
	}

	folds = append(folds, headingFolds(doc, headings)...)

	return sortFolds(folds), nil
}

// headingFolds folds each heading through the line before the next heading
// of the same or a higher level, ignoring trailing blank lines.
func headingFolds(doc *Document, headings []heading) []Fold {
	var folds []Fold

	for idx, h := range headings {
		last := doc.LineCount()
		for _, next := range headings[idx+1:] {
			if next.level <= h.level {
				last = next.line - 1
				break
			}
		}
		for last > h.line && strings.TrimSpace(doc.LineText(last)) == "" {
			last--
		}
		if last <= h.line {
			continue
		}
		folds = append(folds, Fold{
			Extent: lineSpan(doc, h.line, last),
			Kind:   KindHeading,
		})
	}

	return folds
}

// fencedCodeFold folds a fenced block from its opening fence through its
// closing fence.
func fencedCodeFold(doc *Document, block *ast.FencedCodeBlock) (Fold, bool) {
	lines := block.Lines()

	var first, last int
	switch {
	case lines.Len() > 0:
		first = doc.LineAt(lines.At(0).Start) - 1
		last = doc.LineAt(lines.At(lines.Len() - 1).Start)
	case block.Info != nil:
		first = doc.LineAt(block.Info.Segment.Start)
		last = first
	default:
		return Fold{}, false
	}

	if first < 1 {
		return Fold{}, false
	}
	if closing := strings.TrimSpace(doc.LineText(last + 1)); strings.HasPrefix(closing, "```") ||
		strings.HasPrefix(closing, "~~~") {
		last++
	}
	if last <= first {
		return Fold{}, false
	}

	return Fold{Extent: lineSpan(doc, first, last), Kind: KindCode}, true
}

// htmlBlockFold folds a multi-line raw HTML block.
func htmlBlockFold(doc *Document, block *ast.HTMLBlock) (Fold, bool) {
	lines := block.Lines()
	if lines.Len() == 0 {
		return Fold{}, false
	}

	first := doc.LineAt(lines.At(0).Start)
	lastStop := lines.At(lines.Len() - 1).Stop
	if block.HasClosure() {
		lastStop = block.ClosureLine.Stop
	}
	last := doc.LineAt(max(lastStop-1, 0))
	if last <= first {
		return Fold{}, false
	}

	kind := KindBlock
	if strings.HasPrefix(strings.TrimSpace(doc.LineText(first)), "<!--") {
		kind = KindComment
	}

	return Fold{Extent: lineSpan(doc, first, last), Kind: kind}, true
}

// lineSpan covers the 1-based lines first..last, starting after the first
// line's indentation and ending before the last line's terminator.
func lineSpan(doc *Document, first, last int) fold.Range {
	start := doc.Lines[first-1]
	line := doc.LineText(first)
	indent := len(line) - len(strings.TrimLeft(line, " \t"))

	return span(start.StartOffset+indent, doc.Lines[last-1].NewlineStart)
}
