package fold

import "github.com/yaklabco/regionfold/pkg/marker"

// Classifier decides whether extent text is a region marker.
// *marker.Classifier implements it.
type Classifier interface {
	Classify(text string) marker.Syntax
}

// Selection is the outcome of one Select call.
type Selection struct {
	// Manager is the outlining manager the regions came from. It is nil
	// when there was no active document.
	Manager OutliningManager

	// Regions are the selected region spans in host order.
	Regions []RegionSpan
}

// Empty reports whether the selection holds no regions.
func (s *Selection) Empty() bool {
	return s == nil || len(s.Regions) == 0
}

// Select obtains every foldable span of the active document from the host
// and keeps those that classify as region markers.
//
// A missing host service yields a *ServiceUnavailableError. No active view,
// no outlining manager or an empty document is not an error: the returned
// selection is simply empty.
func Select(provider ServiceProvider, classifier Classifier) (*Selection, error) {
	textManager, ok := provider.TextManager()
	if !ok || textManager == nil {
		return nil, &ServiceUnavailableError{Service: ServiceTextManager}
	}

	outlining, ok := provider.OutliningService()
	if !ok || outlining == nil {
		return nil, &ServiceUnavailableError{Service: ServiceOutlining}
	}

	view, ok := textManager.ActiveView()
	if !ok || view == nil {
		return &Selection{}, nil
	}

	manager, ok := outlining.Manager(view)
	if !ok || manager == nil {
		return &Selection{}, nil
	}

	selection := &Selection{Manager: manager}

	snapshot := view.Snapshot()
	if snapshot == nil || snapshot.Len() == 0 {
		return selection, nil
	}

	spans := manager.AllRegions(Range{Start: 0, Length: snapshot.Len()})
	selection.Regions = SelectRegions(spans, classifier)

	return selection, nil
}

// SelectRegions filters spans down to region markers, preserving order.
// Each span's text is read from its owning buffer. A nil classifier accepts
// every syntax.
func SelectRegions(spans []Span, classifier Classifier) []RegionSpan {
	if classifier == nil {
		classifier = marker.NewClassifier()
	}

	regions := make([]RegionSpan, 0, len(spans))
	for _, span := range spans {
		syntax := classifier.Classify(span.ExtentText())
		if syntax == marker.SyntaxNone {
			continue
		}
		regions = append(regions, RegionSpan{Span: span, Syntax: syntax, Parent: -1})
	}

	annotateNesting(regions)

	return regions
}

// annotateNesting fills Depth and Parent from extent containment. It
// assumes document order (outer regions before the regions they contain).
func annotateNesting(regions []RegionSpan) {
	stack := make([]int, 0, len(regions))

	for idx := range regions {
		extent := regions[idx].Extent
		for len(stack) > 0 && !regions[stack[len(stack)-1]].Extent.Contains(extent) {
			stack = stack[:len(stack)-1]
		}

		if len(stack) > 0 {
			regions[idx].Parent = stack[len(stack)-1]
		} else {
			regions[idx].Parent = -1
		}
		regions[idx].Depth = len(stack)

		stack = append(stack, idx)
	}
}
