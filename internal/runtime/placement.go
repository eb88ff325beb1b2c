package runtime

import "github.com/aretw0/walkthrough/pkg/domain"

// ComputePlacement anchors the callout to the right of the target, vertically centred on it.
func ComputePlacement(rect domain.Rect, step, totalSteps int, offset float64) domain.Placement {
	return domain.Placement{
		Top:        rect.Top + rect.Height/2,
		Left:       rect.Left + rect.Width + offset,
		IsLastStep: step == totalSteps,
		Step:       step,
		TotalSteps: totalSteps,
	}
}
