package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/walkthrough"
	"github.com/aretw0/walkthrough/internal/logging"
	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/aretw0/walkthrough/pkg/session"
)

// Runner drives a tour from a line-based command stream.
// It uses an IOHandler strategy to abstract the interaction mode (Text vs JSON).
type Runner struct {
	// Handler is the strategy for IO. If nil, one is built from Input/Output.
	Handler IOHandler

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// Sessions persists the tour after every command. If nil, runs are ephemeral.
	Sessions  *session.Manager
	SessionID string

	// TotalSteps is the step count handed to Activate. Unless set explicitly,
	// Engine.CountSteps supplies it.
	TotalSteps int
	totalSet   bool

	Input    io.Reader
	Output   io.Writer
	Headless bool
	Renderer ContentRenderer
}

// NewRunner creates a Runner with default Stdin/Stdout.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Input:  os.Stdin,
		Output: os.Stdout,
		Logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run shows the tour and applies commands until it ends, the input closes or ctx is cancelled.
// With Sessions configured, an active session is resumed at its current step.
// The returned state is the last state of the tour, also on error.
func (r *Runner) Run(ctx context.Context, engine *walkthrough.Engine) (*domain.State, error) {
	if r.Logger == nil {
		r.Logger = logging.NewNop()
	}
	handler := r.resolveHandler()

	tour, err := r.start(ctx, engine, handler)
	if err != nil {
		return nil, err
	}
	if err := r.save(ctx, tour); err != nil {
		return tour.State(), err
	}

	for tour.Phase() == domain.PhaseActive {
		line, err := handler.Input(ctx)
		if err != nil {
			if ctx.Err() != nil {
				r.Logger.Debug("runner input: context cancelled", "err", ctx.Err())
				return tour.State(), ctx.Err()
			}
			if errors.Is(err, io.EOF) {
				r.Logger.Debug("runner input: end of stream", "step", tour.State().CurrentStep)
				break
			}
			return tour.State(), fmt.Errorf("input error: %w", err)
		}

		cmd, err := domain.ParseCommand(line)
		if err != nil {
			_ = handler.SystemOutput(ctx, fmt.Sprintf("unknown command %q: use next (n, enter), back (b) or close (q)", line))
			continue
		}
		if cmd == domain.CommandBack && onLastStep(tour.State()) {
			// The last callout offers no Back control.
			_ = handler.SystemOutput(ctx, "back is not available on the last step: press enter to finish or q to close")
			continue
		}

		if err := tour.Apply(ctx, cmd); err != nil {
			return tour.State(), err
		}
		if err := r.save(ctx, tour); err != nil {
			return tour.State(), fmt.Errorf("critical persistence error: %w", err)
		}
	}

	state := tour.State()
	if s, ok := handler.(Summarizer); ok {
		if err := s.Summary(ctx, state); err != nil {
			return state, fmt.Errorf("output error: %w", err)
		}
	}
	return state, nil
}

// start resumes the persisted session when it is active, or activates a fresh tour.
func (r *Runner) start(ctx context.Context, engine *walkthrough.Engine, handler IOHandler) (*walkthrough.Tour, error) {
	if r.persistent() {
		state, loaded, err := r.Sessions.LoadOrCreate(ctx, r.SessionID)
		if err != nil {
			return nil, fmt.Errorf("failed to load session %s: %w", r.SessionID, err)
		}
		if loaded && state.Active() {
			if tour, ok := r.resume(ctx, engine, handler, state); ok {
				return tour, nil
			}
		}
	}

	tour := engine.NewTour(r.SessionID, handler)
	tour.Activate(ctx, r.totalSteps(engine))
	return tour, nil
}

// resume restores a tour and shows its current step again.
// It reports false when the step can no longer be shown.
func (r *Runner) resume(ctx context.Context, engine *walkthrough.Engine, handler IOHandler, state *domain.State) (*walkthrough.Tour, bool) {
	tour, err := engine.Restore(state, handler)
	if err != nil {
		r.Logger.Warn("cannot restore session", "session_id", r.SessionID, "err", err)
		_ = handler.SystemOutput(ctx, fmt.Sprintf("cannot resume session %s, starting over", r.SessionID))
		return nil, false
	}

	placement, step, err := tour.Current(ctx)
	if err != nil {
		r.Logger.Warn("cannot resume step", "session_id", r.SessionID, "step", state.CurrentStep, "err", err)
		_ = handler.SystemOutput(ctx, fmt.Sprintf("step %d is no longer on the page, starting over", state.CurrentStep))
		return nil, false
	}

	r.Logger.Debug("session resumed", "session_id", r.SessionID, "step", step.Index)
	_ = handler.SystemOutput(ctx, fmt.Sprintf("resuming at step %d of %d", step.Index, placement.TotalSteps))

	el := step.Element
	handler.OnHighlightChange(ctx, nil, &el)
	handler.OnShow(ctx, placement, step.Description)
	return tour, true
}

func onLastStep(state *domain.State) bool {
	return state.Active() && state.CurrentStep == state.TotalSteps
}

func (r *Runner) persistent() bool {
	return r.Sessions != nil && r.SessionID != ""
}

func (r *Runner) save(ctx context.Context, tour *walkthrough.Tour) error {
	if !r.persistent() {
		return nil
	}
	state := tour.State()
	if err := r.Sessions.Save(ctx, r.SessionID, state); err != nil {
		return err
	}
	r.Logger.Debug("state saved", "session_id", r.SessionID, "phase", state.Phase, "step", state.CurrentStep)
	return nil
}

func (r *Runner) totalSteps(engine *walkthrough.Engine) int {
	if r.totalSet {
		return r.TotalSteps
	}
	return engine.CountSteps()
}

// resolveHandler ensures a valid IOHandler is set.
func (r *Runner) resolveHandler() IOHandler {
	if r.Handler != nil {
		return r.Handler
	}
	if r.Headless {
		r.Handler = NewJSONHandler(r.Input, r.Output)
	} else {
		r.Handler = NewTextHandler(r.Input, r.Output, WithTextHandlerRenderer(r.Renderer))
	}
	return r.Handler
}
