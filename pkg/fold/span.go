// Package fold selects region spans from the foldable spans a host reports
// for a document and applies expand, collapse and toggle transitions to
// them through the host's mutation primitives.
//
// The package holds no state between calls. Spans, snapshots and managers
// belong to the host; fold only reads them and asks the host to mutate.
package fold

import (
	"fmt"

	"github.com/yaklabco/regionfold/pkg/marker"
)

// State is the collapsed/expanded state of a foldable span.
type State int

const (
	// StateExpanded means the span's contents are visible.
	StateExpanded State = iota
	// StateCollapsed means the span's contents are hidden.
	StateCollapsed
)

// String returns "expanded" or "collapsed".
func (s State) String() string {
	if s == StateCollapsed {
		return "collapsed"
	}
	return "expanded"
}

// Opposite returns the other state.
func (s State) Opposite() State {
	if s == StateCollapsed {
		return StateExpanded
	}
	return StateCollapsed
}

// SpanID is the host's identity token for a foldable span.
type SpanID int

// Range is a half-open byte range [Start, Start+Length) in a document.
type Range struct {
	Start  int
	Length int
}

// End returns the exclusive end offset.
func (r Range) End() int {
	return r.Start + r.Length
}

// IsEmpty reports whether the range covers no bytes.
func (r Range) IsEmpty() bool {
	return r.Length <= 0
}

// Contains reports whether other lies entirely within r.
func (r Range) Contains(other Range) bool {
	return other.Start >= r.Start && other.End() <= r.End()
}

// Overlaps reports whether the two ranges share at least one byte.
func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End() && other.Start < r.End()
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End())
}

// TextSource is the buffer that owns a span. CurrentText reads the
// buffer's current content, which may be newer than the snapshot the span
// was reported against.
type TextSource interface {
	CurrentText(r Range) string
}

// Span is a foldable span as reported by the host.
type Span struct {
	ID     SpanID
	Extent Range
	State  State
	Source TextSource
}

// IsCollapsed reports whether the span is currently collapsed.
func (s Span) IsCollapsed() bool {
	return s.State == StateCollapsed
}

// ExtentText returns the span's text against its owning buffer.
// A span without a source has no text.
func (s Span) ExtentText() string {
	if s.Source == nil {
		return ""
	}
	return s.Source.CurrentText(s.Extent)
}

// RegionSpan is a Span the classifier accepted as a region marker.
type RegionSpan struct {
	Span

	// Syntax records which marker syntax matched.
	Syntax marker.Syntax

	// Depth is 0 for a region not contained in any other selected region.
	Depth int

	// Parent is the index of the innermost enclosing region within the
	// same selection, or -1.
	Parent int
}
