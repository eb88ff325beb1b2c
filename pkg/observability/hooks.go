package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/walkthrough/pkg/domain"
)

// Chain merges hook sets. Every callback runs in argument order; nil callbacks are skipped.
func Chain(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range sets {
		out.OnTourStart = chainTour(out.OnTourStart, h.OnTourStart)
		out.OnStepEnter = chainStep(out.OnStepEnter, h.OnStepEnter)
		out.OnStepLeave = chainStep(out.OnStepLeave, h.OnStepLeave)
		out.OnTourEnd = chainTour(out.OnTourEnd, h.OnTourEnd)
		out.OnWarning = chainTour(out.OnWarning, h.OnWarning)
	}
	return out
}

func chainStep(a, b func(context.Context, *domain.StepEvent)) func(context.Context, *domain.StepEvent) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e *domain.StepEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainTour(a, b func(context.Context, *domain.TourEvent)) func(context.Context, *domain.TourEvent) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e *domain.TourEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

// LoggingHooks writes one structured line per lifecycle event.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTourStart: func(ctx context.Context, e *domain.TourEvent) {
			logger.InfoContext(ctx, "tour_start", "session_id", e.SessionID)
		},
		OnStepEnter: func(ctx context.Context, e *domain.StepEvent) {
			logger.InfoContext(ctx, "step_enter",
				"session_id", e.SessionID,
				"step", e.Step,
				"total_steps", e.TotalSteps,
				"marker", e.Marker,
			)
		},
		OnStepLeave: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "step_leave", "session_id", e.SessionID, "step", e.Step)
		},
		OnTourEnd: func(ctx context.Context, e *domain.TourEvent) {
			logger.InfoContext(ctx, "tour_end", "session_id", e.SessionID, "step", e.Step, "reason", e.Reason)
		},
		OnWarning: func(ctx context.Context, e *domain.TourEvent) {
			logger.WarnContext(ctx, "tour_warning", "session_id", e.SessionID, "step", e.Step, "message", e.Message)
		},
	}
}
