package outline

import (
	"sync"

	"github.com/yaklabco/regionfold/pkg/fold"
)

// Workspace is a single-document host. It implements fold.ServiceProvider
// and hands out the active buffer's view and outlining manager.
type Workspace struct {
	mu       sync.RWMutex
	buffer   *Buffer
	manager  *Manager
	withheld map[string]bool
}

// WorkspaceOption configures a Workspace.
type WorkspaceOption func(*Workspace)

// WithoutService makes a service lookup fail. Names are the
// fold.Service* constants.
func WithoutService(name string) WorkspaceOption {
	return func(w *Workspace) {
		w.withheld[name] = true
	}
}

// NewWorkspace returns a workspace with no active document.
func NewWorkspace(opts ...WorkspaceOption) *Workspace {
	w := &Workspace{withheld: make(map[string]bool)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Open makes buffer the active document. A nil manager models a view the
// outlining service does not track.
func (w *Workspace) Open(buffer *Buffer, manager *Manager) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.buffer = buffer
	w.manager = manager
}

// Close clears the active document.
func (w *Workspace) Close() {
	w.Open(nil, nil)
}

// ActiveManager returns the active document's manager, or nil.
func (w *Workspace) ActiveManager() *Manager {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.manager
}

// TextManager implements fold.ServiceProvider.
func (w *Workspace) TextManager() (fold.TextManager, bool) {
	if w.withheld[fold.ServiceTextManager] {
		return nil, false
	}
	return textManager{w}, true
}

// OutliningService implements fold.ServiceProvider.
func (w *Workspace) OutliningService() (fold.OutliningService, bool) {
	if w.withheld[fold.ServiceOutlining] {
		return nil, false
	}
	return outliningService{w}, true
}

type textManager struct {
	w *Workspace
}

func (t textManager) ActiveView() (fold.View, bool) {
	t.w.mu.RLock()
	defer t.w.mu.RUnlock()

	if t.w.buffer == nil {
		return nil, false
	}
	return &view{buffer: t.w.buffer}, true
}

type outliningService struct {
	w *Workspace
}

func (o outliningService) Manager(v fold.View) (fold.OutliningManager, bool) {
	o.w.mu.RLock()
	defer o.w.mu.RUnlock()

	active, ok := v.(*view)
	if !ok || o.w.manager == nil || active.buffer != o.w.buffer {
		return nil, false
	}
	return o.w.manager, true
}

type view struct {
	buffer *Buffer
}

// Snapshot returns the buffer's current document.
func (v *view) Snapshot() fold.Snapshot {
	return v.buffer.Snapshot()
}
