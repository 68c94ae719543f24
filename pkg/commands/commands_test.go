package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/regionfold/internal/logging"
	"github.com/yaklabco/regionfold/pkg/commands"
	"github.com/yaklabco/regionfold/pkg/fold"
	"github.com/yaklabco/regionfold/pkg/marker"
	"github.com/yaklabco/regionfold/pkg/outline"
)

// Spans: 1 Outer region, 2 class block, 3 Inner region, 4 method block.
const source = `#region Outer
class A {
    #region Inner
    void F() {
    }
    #endregion
}
#endregion
`

const (
	outerID fold.SpanID = 1
	classID fold.SpanID = 2
	innerID fold.SpanID = 3
)

func open(t *testing.T, wsOpts []outline.WorkspaceOption, opts ...outline.ManagerOption) (*outline.Workspace, *outline.Manager) {
	t.Helper()

	doc := outline.NewDocument("a.cs", []byte(source))
	folds, err := outline.NewMarkerOutliner().Outline(context.Background(), doc)
	require.NoError(t, err)
	require.Len(t, folds, 4)

	buffer := outline.NewBuffer(doc)
	mgr := outline.NewManager(buffer, folds, opts...)
	ws := outline.NewWorkspace(wsOpts...)
	ws.Open(buffer, mgr)
	return ws, mgr
}

func newCommands(t *testing.T, provider fold.ServiceProvider, opts ...commands.Option) *commands.Commands {
	t.Helper()

	opts = append([]commands.Option{commands.WithLogger(logging.New("error"))}, opts...)
	cmds := commands.New(provider, opts...)
	t.Cleanup(cmds.Close)
	return cmds
}

func state(t *testing.T, mgr *outline.Manager, id fold.SpanID) fold.State {
	t.Helper()

	s, ok := mgr.State(id)
	require.True(t, ok, "span %d", id)
	return s
}

func TestRun_Collapse(t *testing.T) {
	t.Parallel()

	ws, mgr := open(t, nil)
	cmds := newCommands(t, ws)

	report, err := cmds.Run(fold.TransitionCollapse)
	require.NoError(t, err)

	assert.Equal(t, fold.TransitionCollapse, report.Transition)
	assert.Equal(t, 2, report.Count(fold.ActionCollapsed))
	assert.Equal(t, fold.StateCollapsed, state(t, mgr, outerID))
	assert.Equal(t, fold.StateCollapsed, state(t, mgr, innerID))
	assert.Equal(t, fold.StateExpanded, state(t, mgr, classID), "non-region spans are untouched")
}

func TestRun_ExpandOnlyCollapsed(t *testing.T) {
	t.Parallel()

	ws, mgr := open(t, nil, outline.WithCollapsedLines(3))
	cmds := newCommands(t, ws)

	report, err := cmds.Run(fold.TransitionExpand)
	require.NoError(t, err)

	require.Len(t, report.Changes, 2)
	assert.Equal(t, fold.ActionUnchanged, report.Changes[0].Action, "Outer was already expanded")
	assert.Equal(t, fold.ActionExpanded, report.Changes[1].Action)
	assert.Equal(t, []outline.Call{{Op: outline.OpExpand, ID: innerID, OK: true}}, mgr.Calls())
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ws, mgr := open(t, nil)
	cmds := newCommands(t, ws, commands.WithDisposal(ctx))

	_, err := cmds.Run(fold.TransitionToggle)
	require.ErrorIs(t, err, commands.ErrCancelled)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, mgr.Calls(), "a cancelled unit makes no host calls")

	_, err = cmds.Regions()
	require.ErrorIs(t, err, commands.ErrCancelled)
}

func TestRun_ServiceUnavailable(t *testing.T) {
	t.Parallel()

	ws, mgr := open(t, []outline.WorkspaceOption{outline.WithoutService(fold.ServiceOutlining)})
	cmds := newCommands(t, ws)

	_, err := cmds.Run(fold.TransitionCollapse)
	require.ErrorIs(t, err, fold.ErrServiceUnavailable)

	var unavailable *fold.ServiceUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, fold.ServiceOutlining, unavailable.Service)
	assert.Empty(t, mgr.Calls())
}

func TestRun_NoActiveDocument(t *testing.T) {
	t.Parallel()

	cmds := newCommands(t, outline.NewWorkspace())

	report, err := cmds.Run(fold.TransitionToggle)
	require.NoError(t, err)
	assert.Empty(t, report.Changes)
}

type panicProvider struct{}

func (panicProvider) TextManager() (fold.TextManager, bool) { panic("host exploded") }

func (panicProvider) OutliningService() (fold.OutliningService, bool) { return nil, false }

func TestRun_RecoversPanic(t *testing.T) {
	t.Parallel()

	cmds := newCommands(t, panicProvider{})

	_, err := cmds.Run(fold.TransitionExpand)
	require.ErrorIs(t, err, commands.ErrUnhandled)
	assert.Contains(t, err.Error(), "host exploded")
}

func TestRun_ClassifierRestriction(t *testing.T) {
	t.Parallel()

	ws, mgr := open(t, nil)
	cmds := newCommands(t, ws, commands.WithClassifier(marker.NewClassifier(marker.SyntaxPragmaRegion)))

	report, err := cmds.Run(fold.TransitionCollapse)
	require.NoError(t, err)
	assert.Empty(t, report.Changes)
	assert.Empty(t, mgr.Calls())
}

func TestRegions(t *testing.T) {
	t.Parallel()

	ws, mgr := open(t, nil)
	cmds := newCommands(t, ws)

	regions, err := cmds.Regions()
	require.NoError(t, err)
	require.Len(t, regions, 2)

	assert.Equal(t, outerID, regions[0].ID)
	assert.Equal(t, 0, regions[0].Depth)
	assert.Equal(t, innerID, regions[1].ID)
	assert.Equal(t, 1, regions[1].Depth)
	assert.Equal(t, marker.SyntaxCRegion, regions[1].Syntax)
	assert.Empty(t, mgr.Calls(), "listing never mutates")
}

func TestDispatch_ToggleTwiceRestoresState(t *testing.T) {
	t.Parallel()

	ws, mgr := open(t, nil, outline.WithCollapsedLines(3))
	cmds := newCommands(t, ws)

	first := cmds.Dispatch(fold.TransitionToggle)
	second := cmds.Dispatch(fold.TransitionToggle)

	r1 := <-first
	r2 := <-second
	require.NoError(t, r1.Err)
	require.NoError(t, r2.Err)
	assert.NotEqual(t, r1.ID, r2.ID)

	assert.Equal(t, fold.ActionCollapsed, r1.Report.Changes[0].Action)
	assert.Equal(t, fold.ActionExpanded, r1.Report.Changes[1].Action)
	assert.Equal(t, fold.ActionExpanded, r2.Report.Changes[0].Action)
	assert.Equal(t, fold.ActionCollapsed, r2.Report.Changes[1].Action)

	assert.Equal(t, fold.StateExpanded, state(t, mgr, outerID))
	assert.Equal(t, fold.StateCollapsed, state(t, mgr, innerID))
}

func TestFireAndForget(t *testing.T) {
	t.Parallel()

	ws, mgr := open(t, nil)
	cmds := commands.New(ws, commands.WithLogger(logging.New("error")))

	cmds.Collapse()
	cmds.Collapse()
	cmds.Expand()
	cmds.Toggle()
	cmds.Close()

	assert.Equal(t, fold.StateCollapsed, state(t, mgr, outerID))
	assert.Equal(t, fold.StateCollapsed, state(t, mgr, innerID))
	assert.Len(t, mgr.Calls(), 6, "second collapse is a no-op")
}

func TestDispatch_AfterClose(t *testing.T) {
	t.Parallel()

	cmds := commands.New(outline.NewWorkspace(), commands.WithLogger(logging.New("error")))
	cmds.Close()
	cmds.Close()

	result := <-cmds.Dispatch(fold.TransitionExpand)
	require.ErrorIs(t, result.Err, commands.ErrClosed)
}

func TestDispatch_LogsFailures(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ws, _ := open(t, []outline.WorkspaceOption{outline.WithoutService(fold.ServiceTextManager)})
	cmds := commands.New(ws, commands.WithLogger(logging.NewWithWriter(&buf, "debug")))

	result := <-cmds.Dispatch(fold.TransitionCollapse)
	cmds.Close()

	require.Error(t, result.Err)
	assert.True(t, errors.Is(result.Err, fold.ErrServiceUnavailable))
	assert.Contains(t, buf.String(), "command failed")
	assert.Contains(t, buf.String(), result.ID.String())
}
