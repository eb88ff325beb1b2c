package runtime

import (
	"time"

	"github.com/aretw0/walkthrough/pkg/domain"
)

func (c *Controller) stepEvent(typ domain.EventType, step int) *domain.StepEvent {
	return &domain.StepEvent{
		EventBase: domain.EventBase{
			Timestamp: time.Now(),
			Type:      typ,
			SessionID: c.state.SessionID,
		},
		Step:       step,
		TotalSteps: c.state.TotalSteps,
		Marker:     c.resolver.Marker(step),
	}
}

func (c *Controller) tourEvent(typ domain.EventType, reason domain.EndReason, message string) *domain.TourEvent {
	return &domain.TourEvent{
		EventBase: domain.EventBase{
			Timestamp: time.Now(),
			Type:      typ,
			SessionID: c.state.SessionID,
		},
		Step:    c.state.CurrentStep,
		Reason:  reason,
		Message: message,
	}
}
