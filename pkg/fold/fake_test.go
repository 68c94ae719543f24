package fold_test

import (
	"errors"
	"strings"

	"github.com/yaklabco/regionfold/pkg/fold"
)

// textBuffer is a TextSource over a fixed string.
type textBuffer struct {
	text string
}

func (b *textBuffer) CurrentText(r fold.Range) string {
	if r.Start < 0 || r.End() > len(b.text) || r.IsEmpty() {
		return ""
	}
	return b.text[r.Start:r.End()]
}

func (b *textBuffer) Len() int { return len(b.text) }

func (b *textBuffer) Text(r fold.Range) string { return b.CurrentText(r) }

type call struct {
	op string
	id fold.SpanID
}

// fakeManager is an OutliningManager keeping span states in memory.
type fakeManager struct {
	buffer *textBuffer
	spans  []fold.Span
	refuse map[fold.SpanID]bool
	calls  []call
}

// newFakeManager builds spans from (text, collapsed) pairs laid out one
// after another in a single buffer.
func newFakeManager(entries ...fakeEntry) *fakeManager {
	var sb strings.Builder
	mgr := &fakeManager{refuse: map[fold.SpanID]bool{}}
	for idx, entry := range entries {
		start := sb.Len()
		sb.WriteString(entry.text)
		state := fold.StateExpanded
		if entry.collapsed {
			state = fold.StateCollapsed
		}
		mgr.spans = append(mgr.spans, fold.Span{
			ID:     fold.SpanID(idx + 1),
			Extent: fold.Range{Start: start, Length: len(entry.text)},
			State:  state,
		})
		sb.WriteString("\n")
	}
	mgr.buffer = &textBuffer{text: sb.String()}
	for idx := range mgr.spans {
		mgr.spans[idx].Source = mgr.buffer
	}
	return mgr
}

type fakeEntry struct {
	text      string
	collapsed bool
}

func (m *fakeManager) AllRegions(r fold.Range) []fold.Span {
	var out []fold.Span
	for _, span := range m.spans {
		if span.Extent.Overlaps(r) {
			out = append(out, span)
		}
	}
	return out
}

func (m *fakeManager) find(id fold.SpanID) *fold.Span {
	for idx := range m.spans {
		if m.spans[idx].ID == id {
			return &m.spans[idx]
		}
	}
	return nil
}

func (m *fakeManager) Expand(id fold.SpanID) error {
	m.calls = append(m.calls, call{"expand", id})
	span := m.find(id)
	if span == nil || span.State != fold.StateCollapsed || m.refuse[id] {
		return errors.New("span is not collapsed")
	}
	span.State = fold.StateExpanded
	return nil
}

func (m *fakeManager) TryCollapse(id fold.SpanID) bool {
	m.calls = append(m.calls, call{"collapse", id})
	span := m.find(id)
	if span == nil || span.State != fold.StateExpanded || m.refuse[id] {
		return false
	}
	span.State = fold.StateCollapsed
	return true
}

func (m *fakeManager) state(id fold.SpanID) fold.State {
	return m.find(id).State
}

type fakeView struct {
	buffer *textBuffer
}

func (v *fakeView) Snapshot() fold.Snapshot { return v.buffer }

// fakeHost implements ServiceProvider, TextManager and OutliningService.
type fakeHost struct {
	manager       *fakeManager
	noTextManager bool
	noOutlining   bool
	noView        bool
	noManager     bool
	emptySnapshot bool
}

func (h *fakeHost) TextManager() (fold.TextManager, bool) {
	if h.noTextManager {
		return nil, false
	}
	return h, true
}

func (h *fakeHost) OutliningService() (fold.OutliningService, bool) {
	if h.noOutlining {
		return nil, false
	}
	return h, true
}

func (h *fakeHost) ActiveView() (fold.View, bool) {
	if h.noView || h.manager == nil {
		return nil, false
	}
	if h.emptySnapshot {
		return &fakeView{buffer: &textBuffer{}}, true
	}
	return &fakeView{buffer: h.manager.buffer}, true
}

func (h *fakeHost) Manager(fold.View) (fold.OutliningManager, bool) {
	if h.noManager {
		return nil, false
	}
	return h.manager, true
}
