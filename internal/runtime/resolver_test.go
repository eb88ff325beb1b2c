package runtime_test

import (
	"errors"
	"testing"

	"github.com/aretw0/walkthrough/internal/runtime"
	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepResolver_Resolve(t *testing.T) {
	page := newFakePage().
		tag(1, "Welcome", domain.Rect{}).
		tag(2, "", domain.Rect{})
	r := runtime.NewStepResolver(page, "", "")

	step, err := r.Resolve(1)
	require.NoError(t, err)
	assert.Equal(t, "tour-target-1", step.Marker)
	assert.Equal(t, "Welcome", step.Description)
	assert.Equal(t, "el-1", step.Element.ID)

	step, err = r.Resolve(2)
	require.NoError(t, err)
	assert.Empty(t, step.Description)

	for _, idx := range []int{0, -1, 3} {
		_, err = r.Resolve(idx)
		assert.ErrorIs(t, err, domain.ErrStepNotFound, "index %d", idx)

		var notFound *runtime.StepNotFoundError
		require.True(t, errors.As(err, &notFound))
		assert.Equal(t, idx, notFound.Index)
	}
}

func TestStepResolver_FirstMatchWins(t *testing.T) {
	page := newFakePage().
		tag(1, "first", domain.Rect{}).
		tag(1, "duplicate", domain.Rect{})
	r := runtime.NewStepResolver(page, "", "")

	step, err := r.Resolve(1)
	require.NoError(t, err)
	assert.Equal(t, "first", step.Description)
}

func TestComputePlacement(t *testing.T) {
	tests := []struct {
		name   string
		rect   domain.Rect
		step   int
		total  int
		offset float64
		want   domain.Placement
	}{
		{"centre right", domain.Rect{Top: 10, Left: 20, Width: 100, Height: 40}, 1, 3, 10,
			domain.Placement{Top: 30, Left: 130, Step: 1, TotalSteps: 3}},
		{"last step", domain.Rect{Top: 0, Left: 0, Width: 0, Height: 0}, 3, 3, 10,
			domain.Placement{Top: 0, Left: 10, IsLastStep: true, Step: 3, TotalSteps: 3}},
		{"odd height", domain.Rect{Top: 5, Left: 1, Width: 2, Height: 3}, 2, 4, 0,
			domain.Placement{Top: 6.5, Left: 3, Step: 2, TotalSteps: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, runtime.ComputePlacement(tt.rect, tt.step, tt.total, tt.offset))
		})
	}
}
