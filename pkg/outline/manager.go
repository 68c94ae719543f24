package outline

import (
	"errors"
	"fmt"
	"sync"

	"github.com/yaklabco/regionfold/pkg/fold"
)

// Errors returned by Manager.Expand.
var (
	ErrSpanNotFound = errors.New("span not found")
	ErrNotCollapsed = errors.New("span is not collapsed")
)

// Call records one mutation request made to a Manager.
type Call struct {
	Op string
	ID fold.SpanID
	OK bool
}

// Mutation operation names recorded in Call.Op.
const (
	OpExpand   = "expand"
	OpCollapse = "collapse"
)

type managedSpan struct {
	id     fold.SpanID
	extent fold.Range
	kind   Kind
	line   int
}

// Manager is an outlining manager for one buffer. It implements
// fold.OutliningManager.
type Manager struct {
	mu     sync.Mutex
	buffer *Buffer
	spans  []managedSpan
	states map[fold.SpanID]fold.State
	calls  []Call
}

// ManagerOption configures a Manager.
type ManagerOption func(*managerOptions)

type managerOptions struct {
	initial        fold.State
	collapsedLines map[int]bool
}

// WithInitialState sets the state every span starts in.
func WithInitialState(state fold.State) ManagerOption {
	return func(o *managerOptions) {
		o.initial = state
	}
}

// WithCollapsedLines starts spans beginning on the given 1-based lines
// collapsed, regardless of the initial state.
func WithCollapsedLines(lines ...int) ManagerOption {
	return func(o *managerOptions) {
		if o.collapsedLines == nil {
			o.collapsedLines = make(map[int]bool, len(lines))
		}
		for _, line := range lines {
			o.collapsedLines[line] = true
		}
	}
}

// NewManager registers folds against the buffer's current snapshot.
// Span IDs are assigned from 1 in the order given.
func NewManager(buffer *Buffer, folds []Fold, opts ...ManagerOption) *Manager {
	options := managerOptions{initial: fold.StateExpanded}
	for _, opt := range opts {
		opt(&options)
	}

	doc := buffer.Snapshot()
	mgr := &Manager{
		buffer: buffer,
		spans:  make([]managedSpan, 0, len(folds)),
		states: make(map[fold.SpanID]fold.State, len(folds)),
	}

	for idx, f := range folds {
		id := fold.SpanID(idx + 1)
		line := doc.LineAt(f.Extent.Start)

		state := options.initial
		if options.collapsedLines[line] {
			state = fold.StateCollapsed
		}

		mgr.spans = append(mgr.spans, managedSpan{id: id, extent: f.Extent, kind: f.Kind, line: line})
		mgr.states[id] = state
	}

	return mgr
}

// AllRegions implements fold.OutliningManager.
func (m *Manager) AllRegions(r fold.Range) []fold.Span {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []fold.Span
	for _, s := range m.spans {
		if !s.extent.Overlaps(r) {
			continue
		}
		out = append(out, fold.Span{
			ID:     s.id,
			Extent: s.extent,
			State:  m.states[s.id],
			Source: m.buffer,
		})
	}
	return out
}

// Expand implements fold.Mutator.
func (m *Manager) Expand(id fold.SpanID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.states[id]
	switch {
	case !ok:
		m.calls = append(m.calls, Call{Op: OpExpand, ID: id})
		return fmt.Errorf("expand %d: %w", id, ErrSpanNotFound)
	case state != fold.StateCollapsed:
		m.calls = append(m.calls, Call{Op: OpExpand, ID: id})
		return fmt.Errorf("expand %d: %w", id, ErrNotCollapsed)
	}

	m.states[id] = fold.StateExpanded
	m.calls = append(m.calls, Call{Op: OpExpand, ID: id, OK: true})
	return nil
}

// TryCollapse implements fold.Mutator.
func (m *Manager) TryCollapse(id fold.SpanID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.states[id]
	if !ok || state != fold.StateExpanded {
		m.calls = append(m.calls, Call{Op: OpCollapse, ID: id})
		return false
	}

	m.states[id] = fold.StateCollapsed
	m.calls = append(m.calls, Call{Op: OpCollapse, ID: id, OK: true})
	return true
}

// Remove forgets a span, as a host does when an edit destroys it.
func (m *Manager) Remove(id fold.SpanID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.states, id)
	for idx, s := range m.spans {
		if s.id == id {
			m.spans = append(m.spans[:idx], m.spans[idx+1:]...)
			return
		}
	}
}

// State returns a span's current state.
func (m *Manager) State(id fold.SpanID) (fold.State, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.states[id]
	return state, ok
}

// Kind returns what produced a span.
func (m *Manager) Kind(id fold.SpanID) Kind {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.spans {
		if s.id == id {
			return s.kind
		}
	}
	return ""
}

// Line returns the 1-based line a span starts on, or 0.
func (m *Manager) Line(id fold.SpanID) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.spans {
		if s.id == id {
			return s.line
		}
	}
	return 0
}

// Calls returns a copy of the mutation log.
func (m *Manager) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}
