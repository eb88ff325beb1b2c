package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/walkthrough/internal/logging"
	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/aretw0/walkthrough/pkg/ports"
)

// Controller is the tour state machine and the single owner of the tour State.
// It is not safe for concurrent use: hosts deliver one event at a time.
type Controller struct {
	resolver *StepResolver
	geometry ports.GeometryProvider
	host     ports.Host

	state       *domain.State
	highlighted *domain.Element

	offset        float64
	markerPrefix  string
	annotationKey string
	sessionID     string
	hooks         domain.LifecycleHooks
	logger        *slog.Logger
}

// ControllerOption defines a functional option for configuring the Controller.
type ControllerOption func(*Controller)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) ControllerOption {
	return func(c *Controller) {
		c.hooks = hooks
	}
}

// WithOffset sets the horizontal gap between target and callout.
func WithOffset(offset float64) ControllerOption {
	return func(c *Controller) {
		c.offset = offset
	}
}

// WithMarkerPrefix overrides the "tour-target-" marker convention.
func WithMarkerPrefix(prefix string) ControllerOption {
	return func(c *Controller) {
		c.markerPrefix = prefix
	}
}

// WithAnnotationKey overrides the annotation holding step descriptions.
func WithAnnotationKey(key string) ControllerOption {
	return func(c *Controller) {
		c.annotationKey = key
	}
}

// WithSessionID tags the state and emitted events with a session identifier.
func WithSessionID(id string) ControllerOption {
	return func(c *Controller) {
		c.sessionID = id
	}
}

// NewController creates an inactive controller.
// A nil host is replaced by one that ignores every call.
func NewController(lookup ports.ElementLookup, geometry ports.GeometryProvider, host ports.Host, opts ...ControllerOption) *Controller {
	if host == nil {
		host = ports.HostFuncs{}
	}
	c := &Controller{
		geometry: geometry,
		host:     host,
		offset:   domain.DefaultOffset,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.resolver = NewStepResolver(lookup, c.markerPrefix, c.annotationKey)
	c.state = domain.NewState(c.sessionID)
	return c
}

// State returns a copy of the current tour state.
func (c *Controller) State() *domain.State {
	return c.state.Snapshot()
}

// Phase returns the current lifecycle phase.
func (c *Controller) Phase() domain.Phase {
	return c.state.Phase
}

// Activate starts the tour at step 1.
// Calling it while a tour is active is ignored; calling it after the tour ended starts afresh.
func (c *Controller) Activate(ctx context.Context, totalSteps int) {
	if c.state.Active() {
		c.logger.Debug("activate ignored: tour already active", "step", c.state.CurrentStep)
		return
	}

	c.state = domain.NewState(c.sessionID)
	c.state.TotalSteps = totalSteps
	c.highlighted = nil

	c.logger.Debug("tour activated", "total_steps", totalSteps)
	if c.hooks.OnTourStart != nil {
		c.hooks.OnTourStart(ctx, c.tourEvent(domain.EventTourStart, "", ""))
	}

	if totalSteps <= 0 {
		c.end(ctx, domain.EndEmpty)
		return
	}

	step, err := c.resolver.Resolve(1)
	if err != nil {
		c.abort(ctx, err)
		return
	}

	c.state.Phase = domain.PhaseActive
	c.focus(ctx, step)
}

// Next advances to the following step, or ends the tour after the last one.
func (c *Controller) Next(ctx context.Context) {
	if !c.state.Active() {
		return
	}

	target := c.state.CurrentStep + 1
	if target > c.state.TotalSteps {
		c.leave(ctx)
		c.end(ctx, domain.EndCompleted)
		return
	}

	step, err := c.resolver.Resolve(target)
	if err != nil {
		c.leave(ctx)
		c.abort(ctx, err)
		return
	}

	c.leave(ctx)
	c.focus(ctx, step)
}

// Back returns to the previous step. It is a no-op on the first step.
func (c *Controller) Back(ctx context.Context) {
	if !c.state.Active() || c.state.CurrentStep <= 1 {
		return
	}

	step, err := c.resolver.Resolve(c.state.CurrentStep - 1)
	if err != nil {
		// The element existed when it was shown; the host document changed since.
		c.leave(ctx)
		c.abort(ctx, err)
		return
	}

	c.leave(ctx)
	c.focus(ctx, step)
}

// Close ends the tour early.
func (c *Controller) Close(ctx context.Context) {
	if !c.state.Active() {
		return
	}
	c.leave(ctx)
	c.end(ctx, domain.EndClosed)
}

// Current recomputes the placement of the focused step without transitioning and without
// calling the host. Geometry is read fresh.
func (c *Controller) Current(ctx context.Context) (domain.Placement, domain.Step, error) {
	if !c.state.Active() {
		return domain.Placement{}, domain.Step{}, domain.ErrTourNotActive
	}
	step, err := c.resolver.Resolve(c.state.CurrentStep)
	if err != nil {
		return domain.Placement{}, domain.Step{}, err
	}
	rect := c.geometry.Bounds(step.Element)
	return ComputePlacement(rect, step.Index, c.state.TotalSteps, c.offset), step, nil
}

// Restore rehydrates the controller from a persisted state without emitting effects.
// The highlighted element is re-resolved so the next transition clears it.
func (c *Controller) Restore(state *domain.State) error {
	if state == nil {
		return fmt.Errorf("%w: nil state", domain.ErrInvalidState)
	}

	switch state.Phase {
	case domain.PhaseInactive, domain.PhaseEnded:
	case domain.PhaseActive:
		if state.CurrentStep < 1 || state.CurrentStep > state.TotalSteps {
			return fmt.Errorf("%w: step %d outside 1..%d", domain.ErrInvalidState, state.CurrentStep, state.TotalSteps)
		}
	default:
		return fmt.Errorf("%w: unknown phase '%s'", domain.ErrInvalidState, state.Phase)
	}

	c.state = state.Snapshot()
	if c.state.SessionID == "" {
		c.state.SessionID = c.sessionID
	}
	c.highlighted = nil

	if c.state.Active() {
		if step, err := c.resolver.Resolve(c.state.CurrentStep); err == nil {
			el := step.Element
			c.highlighted = &el
		}
	}
	return nil
}

// focus enters step and asks the host to render it.
func (c *Controller) focus(ctx context.Context, step domain.Step) {
	previous := c.highlighted
	current := step.Element

	c.state.CurrentStep = step.Index
	c.state.History = append(c.state.History, step.Index)
	c.highlighted = &current

	rect := c.geometry.Bounds(step.Element)
	placement := ComputePlacement(rect, step.Index, c.state.TotalSteps, c.offset)

	c.logger.Debug("step focused",
		"step", step.Index,
		"marker", step.Marker,
		"top", placement.Top,
		"left", placement.Left,
		"last", placement.IsLastStep,
	)

	c.host.OnHighlightChange(ctx, previous, c.highlighted)
	c.host.OnShow(ctx, placement, step.Description)

	if c.hooks.OnStepEnter != nil {
		c.hooks.OnStepEnter(ctx, c.stepEvent(domain.EventStepEnter, step.Index))
	}
}

func (c *Controller) leave(ctx context.Context) {
	if c.hooks.OnStepLeave != nil && c.state.CurrentStep > 0 {
		c.hooks.OnStepLeave(ctx, c.stepEvent(domain.EventStepLeave, c.state.CurrentStep))
	}
}

// abort reports a convention violation and ends the tour.
func (c *Controller) abort(ctx context.Context, err error) {
	msg := err.Error()
	var notFound *StepNotFoundError
	if errors.As(err, &notFound) {
		msg = fmt.Sprintf("tour steps must start at 1 and increase by one: step %d has no element tagged '%s'",
			notFound.Index, notFound.Marker)
	}

	c.logger.Warn("tour aborted", "step", c.state.CurrentStep, "err", err)
	c.host.OnWarn(ctx, msg)

	if c.hooks.OnWarning != nil {
		c.hooks.OnWarning(ctx, c.tourEvent(domain.EventWarning, "", msg))
	}

	c.end(ctx, domain.EndAborted)
}

func (c *Controller) end(ctx context.Context, reason domain.EndReason) {
	previous := c.highlighted
	c.highlighted = nil

	c.state.Phase = domain.PhaseEnded
	c.state.EndReason = reason

	c.logger.Debug("tour ended", "reason", reason, "step", c.state.CurrentStep)

	if previous != nil {
		c.host.OnHighlightChange(ctx, previous, nil)
	}
	c.host.OnEnd(ctx)

	if c.hooks.OnTourEnd != nil {
		c.hooks.OnTourEnd(ctx, c.tourEvent(domain.EventTourEnd, reason, ""))
	}
}
