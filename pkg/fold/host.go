package fold

// ServiceProvider looks up the host services the selector needs.
// Each lookup returns ok=false when the service is unavailable.
type ServiceProvider interface {
	TextManager() (TextManager, bool)
	OutliningService() (OutliningService, bool)
}

// TextManager exposes the host's active document view.
type TextManager interface {
	// ActiveView returns the focused text view, or ok=false if none.
	ActiveView() (View, bool)
}

// View is a text view onto one document.
type View interface {
	// Snapshot returns the document content at the time of the call.
	Snapshot() Snapshot
}

// Snapshot is an immutable view of a document's text.
type Snapshot interface {
	Len() int
	Text(r Range) string
}

// OutliningService hands out outlining managers for views.
type OutliningService interface {
	// Manager returns the outlining manager for the view, or ok=false.
	Manager(view View) (OutliningManager, bool)
}

// Mutator is the host's collapse/expand surface.
type Mutator interface {
	// Expand expands a collapsed span. It returns an error if the span can
	// no longer be expanded.
	Expand(id SpanID) error

	// TryCollapse collapses an expanded span. It returns false if the
	// span can no longer be collapsed.
	TryCollapse(id SpanID) bool
}

// OutliningManager enumerates and mutates foldable spans for one view.
type OutliningManager interface {
	Mutator

	// AllRegions returns every foldable span overlapping r, in document order.
	AllRegions(r Range) []Span
}
