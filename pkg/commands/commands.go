// Package commands exposes the Expand, Collapse and Toggle region commands
// over a fold.ServiceProvider.
//
// A Commands value is the explicit context the commands run in. It owns a
// single executor goroutine: every dispatched unit runs there, one after
// another, so no two transitions touch the same document at once.
package commands

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/yaklabco/regionfold/internal/logging"
	"github.com/yaklabco/regionfold/pkg/fold"
	"github.com/yaklabco/regionfold/pkg/marker"
)

// Sentinel errors.
var (
	// ErrCancelled is returned when the disposal context was done before a
	// unit started. No host call is made in that case.
	ErrCancelled = errors.New("command cancelled")

	// ErrClosed is returned for units dispatched after Close.
	ErrClosed = errors.New("commands closed")

	// ErrUnhandled wraps a panic recovered while running a unit.
	ErrUnhandled = errors.New("unhandled failure")
)

// queueSize bounds the number of units waiting for the executor.
const queueSize = 16

// Result is the outcome of one dispatched unit.
type Result struct {
	// ID correlates log lines of one unit.
	ID uuid.UUID

	Transition fold.Transition
	Report     fold.Report
	Err        error
}

// Option configures a Commands value.
type Option func(*Commands)

// WithClassifier restricts which marker syntaxes count as regions.
func WithClassifier(classifier fold.Classifier) Option {
	return func(c *Commands) {
		if classifier != nil {
			c.classifier = classifier
		}
	}
}

// WithLogger sets the diagnostic log failures are written to.
func WithLogger(logger *log.Logger) Option {
	return func(c *Commands) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDisposal sets the disposal signal checked before each unit.
func WithDisposal(ctx context.Context) Option {
	return func(c *Commands) {
		if ctx != nil {
			c.disposal = ctx
		}
	}
}

type unit struct {
	id         uuid.UUID
	transition fold.Transition
	result     chan Result
}

// Commands runs region transitions against a host.
type Commands struct {
	provider   fold.ServiceProvider
	classifier fold.Classifier
	logger     *log.Logger
	disposal   context.Context

	mu     sync.RWMutex
	closed bool
	queue  chan unit
	done   chan struct{}
}

// New creates a Commands value for provider and starts its executor.
// Call Close to stop the executor.
func New(provider fold.ServiceProvider, opts ...Option) *Commands {
	cmds := &Commands{
		provider:   provider,
		classifier: marker.NewClassifier(),
		logger:     logging.Default(),
		disposal:   context.Background(),
		queue:      make(chan unit, queueSize),
		done:       make(chan struct{}),
	}

	for _, opt := range opts {
		opt(cmds)
	}

	go cmds.execute()

	return cmds
}

// Regions returns the region spans of the active document without changing
// any state.
func (c *Commands) Regions() ([]fold.RegionSpan, error) {
	if err := c.disposal.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCancelled, err)
	}

	selection, err := fold.Select(c.provider, c.classifier)
	if err != nil {
		return nil, err
	}
	return selection.Regions, nil
}

// Run executes one unit synchronously on the calling goroutine.
//
// The disposal signal is checked once, before any host call. After that the
// unit runs to completion: a host refusal on one region is recorded in the
// report and the rest are still processed. A panic raised by the host is
// recovered and returned wrapped in ErrUnhandled.
func (c *Commands) Run(transition fold.Transition) (report fold.Report, err error) {
	report = fold.Report{Transition: transition}

	if cause := c.disposal.Err(); cause != nil {
		return report, fmt.Errorf("%w: %w", ErrCancelled, cause)
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("%w: %s: %v", ErrUnhandled, transition, recovered)
		}
	}()

	selection, err := fold.Select(c.provider, c.classifier)
	if err != nil {
		return report, fmt.Errorf("%s regions: %w", transition, err)
	}

	if selection.Empty() {
		return report, nil
	}

	return fold.Apply(selection.Manager, selection.Regions, transition), nil
}

// Dispatch queues a unit on the executor and returns a channel that
// receives its result. The channel is buffered; callers may ignore it.
func (c *Commands) Dispatch(transition fold.Transition) <-chan Result {
	u := unit{
		id:         uuid.New(),
		transition: transition,
		result:     make(chan Result, 1),
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		u.result <- Result{ID: u.id, Transition: transition, Err: ErrClosed}
		close(u.result)
		return u.result
	}

	c.queue <- u
	return u.result
}

// Expand expands every collapsed region of the active document.
func (c *Commands) Expand() {
	c.Dispatch(fold.TransitionExpand)
}

// Collapse collapses every expanded region of the active document.
func (c *Commands) Collapse() {
	c.Dispatch(fold.TransitionCollapse)
}

// Toggle flips every region of the active document.
func (c *Commands) Toggle() {
	c.Dispatch(fold.TransitionToggle)
}

// Close stops accepting units, waits for queued units to finish and stops
// the executor. It is safe to call more than once.
func (c *Commands) Close() {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.queue)
	}
	c.mu.Unlock()

	<-c.done
}

func (c *Commands) execute() {
	defer close(c.done)

	for u := range c.queue {
		report, err := c.Run(u.transition)
		c.logOutcome(u, report, err)

		u.result <- Result{ID: u.id, Transition: u.transition, Report: report, Err: err}
		close(u.result)
	}
}

func (c *Commands) logOutcome(u unit, report fold.Report, err error) {
	logger := c.logger.With(
		logging.FieldDispatch, u.id.String(),
		logging.FieldTransition, u.transition.String(),
	)

	switch {
	case errors.Is(err, ErrCancelled):
		logger.Debug("command skipped", logging.FieldError, err)
		return
	case err != nil:
		logger.Error("command failed", logging.FieldError, err)
		return
	}

	for _, change := range report.Failed() {
		logger.Warn("region transition refused",
			logging.FieldSpan, int(change.Region.ID),
			logging.FieldError, change.Err,
		)
	}

	logger.Debug("command finished",
		logging.FieldRegions, len(report.Changes),
		logging.FieldRegionsChanged, report.Count(fold.ActionExpanded)+report.Count(fold.ActionCollapsed),
		logging.FieldFailed, report.Count(fold.ActionFailed),
	)
}
