package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/walkthrough/internal/runtime"
	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_LifecycleHooks(t *testing.T) {
	page := newFakePage().
		tag(1, "A", domain.Rect{}).
		tag(2, "B", domain.Rect{})

	var started, entered, left []int
	var ends []*domain.TourEvent
	var warnings []*domain.TourEvent

	hooks := domain.LifecycleHooks{
		OnTourStart: func(_ context.Context, e *domain.TourEvent) { started = append(started, e.Step) },
		OnStepEnter: func(_ context.Context, e *domain.StepEvent) { entered = append(entered, e.Step) },
		OnStepLeave: func(_ context.Context, e *domain.StepEvent) { left = append(left, e.Step) },
		OnTourEnd:   func(_ context.Context, e *domain.TourEvent) { ends = append(ends, e) },
		OnWarning:   func(_ context.Context, e *domain.TourEvent) { warnings = append(warnings, e) },
	}

	c := runtime.NewController(page, page, nil,
		runtime.WithLifecycleHooks(hooks),
		runtime.WithSessionID("hooks"),
	)
	ctx := context.Background()

	c.Activate(ctx, 3)
	c.Next(ctx)
	c.Next(ctx)

	assert.Equal(t, []int{0}, started)
	assert.Equal(t, []int{1, 2}, entered)
	assert.Equal(t, []int{1, 2}, left)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "tour-target-3")
	require.Len(t, ends, 1)
	assert.Equal(t, domain.EndAborted, ends[0].Reason)
	assert.Equal(t, "hooks", ends[0].SessionID)
	assert.False(t, ends[0].Timestamp.IsZero())
}

func TestController_TourStartHookOnEmptyTour(t *testing.T) {
	var starts, ends int
	hooks := domain.LifecycleHooks{
		OnTourStart: func(context.Context, *domain.TourEvent) { starts++ },
		OnTourEnd:   func(context.Context, *domain.TourEvent) { ends++ },
	}

	c := runtime.NewController(newFakePage(), newFakePage(), nil, runtime.WithLifecycleHooks(hooks))
	c.Activate(context.Background(), 0)

	assert.Equal(t, 1, starts)
	assert.Equal(t, 1, ends)
}
