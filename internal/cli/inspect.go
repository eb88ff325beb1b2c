package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/walkthrough"
	"github.com/aretw0/walkthrough/internal/presentation/graph"
	"github.com/aretw0/walkthrough/internal/validator"
	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/aretw0/walkthrough/pkg/session"
)

// ErrInvalidTour is returned by ValidatePage when the tour would abort before its last tagged step.
var ErrInvalidTour = errors.New("tour is invalid")

// ValidatePage lints the page of engine and writes the report as text or JSON.
func ValidatePage(w io.Writer, engine *walkthrough.Engine, asJSON bool) error {
	report, err := validator.ValidateTour(engine)
	if err != nil {
		return fmt.Errorf("failed to inspect page: %w", err)
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		for _, issue := range report.Issues {
			fmt.Fprintln(w, issue.String())
		}
		if report.Valid() {
			fmt.Fprintf(w, "Tour is valid: %d step(s) ✅\n", report.Steps)
		}
	}

	if !report.Valid() {
		return fmt.Errorf("%w: %d step(s) reachable, markers tagged up to step %d", ErrInvalidTour, report.Steps, report.Highest)
	}
	return nil
}

// GraphOptions selects what WriteGraph draws.
type GraphOptions struct {
	// TotalSteps is the declared step count; zero uses the highest tagged step.
	TotalSteps int
	// SessionID overlays the visited and current steps of a persisted tour.
	SessionID string
	Sessions  *session.Manager
}

// WriteGraph writes a Mermaid flowchart of the tour of engine.
func WriteGraph(ctx context.Context, w io.Writer, engine *walkthrough.Engine, opts GraphOptions) error {
	total := opts.TotalSteps
	if total <= 0 {
		report, err := validator.ValidateTour(engine)
		if err != nil {
			return fmt.Errorf("failed to inspect page: %w", err)
		}
		total = report.Highest
	}

	var steps []domain.Step
	for i := 1; i <= total; i++ {
		step, err := engine.Resolve(i)
		if err != nil {
			break
		}
		steps = append(steps, step)
	}

	var overlay *graph.GraphOverlay
	if opts.SessionID != "" && opts.Sessions != nil {
		state, err := opts.Sessions.Load(ctx, opts.SessionID)
		if err != nil {
			return fmt.Errorf("failed to load session '%s': %w", opts.SessionID, err)
		}
		overlay = &graph.GraphOverlay{VisitedSteps: state.History}
		if state.Active() {
			overlay.CurrentStep = state.CurrentStep
		}
	}

	_, err := io.WriteString(w, graph.GenerateMermaid(graph.Tour{
		Steps:  steps,
		Total:  total,
		Marker: engine.Marker,
	}, overlay))
	return err
}
