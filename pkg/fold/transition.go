package fold

import (
	"fmt"
	"strings"
)

// Transition is a state change applied to every region in a selection.
type Transition int

const (
	// TransitionExpand expands every collapsed region.
	TransitionExpand Transition = iota
	// TransitionCollapse collapses every expanded region.
	TransitionCollapse
	// TransitionToggle flips each region's own state.
	TransitionToggle
)

// String returns "expand", "collapse" or "toggle".
func (t Transition) String() string {
	switch t {
	case TransitionExpand:
		return "expand"
	case TransitionCollapse:
		return "collapse"
	case TransitionToggle:
		return "toggle"
	default:
		return fmt.Sprintf("transition(%d)", int(t))
	}
}

// ParseTransition parses a transition name.
func ParseTransition(name string) (Transition, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "expand":
		return TransitionExpand, nil
	case "collapse":
		return TransitionCollapse, nil
	case "toggle":
		return TransitionToggle, nil
	default:
		return 0, fmt.Errorf("unknown transition %q; valid: expand, collapse, toggle", name)
	}
}

// Action is what Apply did to one region.
type Action int

const (
	// ActionUnchanged means no host call was needed.
	ActionUnchanged Action = iota
	// ActionExpanded means the host expanded the region.
	ActionExpanded
	// ActionCollapsed means the host collapsed the region.
	ActionCollapsed
	// ActionFailed means the host declined the requested change.
	ActionFailed
)

func (a Action) String() string {
	switch a {
	case ActionExpanded:
		return "expanded"
	case ActionCollapsed:
		return "collapsed"
	case ActionFailed:
		return "failed"
	default:
		return "unchanged"
	}
}

// Change records the decision and outcome for a single region.
type Change struct {
	Region RegionSpan
	Action Action
	Err    error
}

// Before returns the region's state before the transition.
func (c Change) Before() State {
	return c.Region.State
}

// After returns the region's state once the transition has been applied.
// A failed change leaves the state untouched.
func (c Change) After() State {
	switch c.Action {
	case ActionExpanded:
		return StateExpanded
	case ActionCollapsed:
		return StateCollapsed
	default:
		return c.Region.State
	}
}

// Report lists one Change per region, in the order the regions were given.
type Report struct {
	Transition Transition
	Changes    []Change
}

// Count returns how many changes ended with the given action.
func (r Report) Count(action Action) int {
	n := 0
	for _, c := range r.Changes {
		if c.Action == action {
			n++
		}
	}
	return n
}

// Failed returns the changes the host declined.
func (r Report) Failed() []Change {
	var failed []Change
	for _, c := range r.Changes {
		if c.Action == ActionFailed {
			failed = append(failed, c)
		}
	}
	return failed
}

// Apply applies the transition to each region independently. The decision
// for a region depends only on that region's own state. A host refusal is
// recorded on the region's Change and the remaining regions are still
// processed.
func Apply(mutator Mutator, regions []RegionSpan, transition Transition) Report {
	report := Report{Transition: transition}
	if len(regions) == 0 {
		return report
	}

	report.Changes = make([]Change, 0, len(regions))
	for _, region := range regions {
		report.Changes = append(report.Changes, applyOne(mutator, region, transition))
	}

	return report
}

// Expand expands every collapsed region; expanded regions are left alone.
func Expand(mutator Mutator, regions []RegionSpan) Report {
	return Apply(mutator, regions, TransitionExpand)
}

// Collapse collapses every expanded region; collapsed regions are left alone.
func Collapse(mutator Mutator, regions []RegionSpan) Report {
	return Apply(mutator, regions, TransitionCollapse)
}

// Toggle collapses expanded regions and expands collapsed ones.
func Toggle(mutator Mutator, regions []RegionSpan) Report {
	return Apply(mutator, regions, TransitionToggle)
}

func applyOne(mutator Mutator, region RegionSpan, transition Transition) Change {
	change := Change{Region: region}

	var want State
	switch transition {
	case TransitionExpand:
		want = StateExpanded
	case TransitionCollapse:
		want = StateCollapsed
	case TransitionToggle:
		want = region.State.Opposite()
	default:
		change.Action = ActionFailed
		change.Err = fmt.Errorf("unknown transition %d", int(transition))
		return change
	}

	if region.State == want {
		return change
	}

	if want == StateExpanded {
		if err := mutator.Expand(region.ID); err != nil {
			change.Action = ActionFailed
			change.Err = fmt.Errorf("expand span %d: %w", region.ID, err)
			return change
		}
		change.Action = ActionExpanded
		return change
	}

	if !mutator.TryCollapse(region.ID) {
		change.Action = ActionFailed
		change.Err = fmt.Errorf("collapse span %d: %w", region.ID, ErrTransitionRefused)
		return change
	}
	change.Action = ActionCollapsed
	return change
}
