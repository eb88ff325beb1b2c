package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventTourStart EventType = "tour_start"
	EventStepEnter EventType = "step_enter"
	EventStepLeave EventType = "step_leave"
	EventTourEnd   EventType = "tour_end"
	EventWarning   EventType = "warning"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id,omitempty"`
}

// StepEvent represents entry into or exit from a step.
type StepEvent struct {
	EventBase
	Step       int    `json:"step"`
	TotalSteps int    `json:"total_steps"`
	Marker     string `json:"marker"`
}

// TourEvent represents the start or end of a tour, or a warning raised while running it.
type TourEvent struct {
	EventBase
	Step    int       `json:"step"`
	Reason  EndReason `json:"reason,omitempty"`
	Message string    `json:"message,omitempty"`
}

// LifecycleHooks defines callbacks for controller observability.
type LifecycleHooks struct {
	OnTourStart func(context.Context, *TourEvent)
	OnStepEnter func(context.Context, *StepEvent)
	OnStepLeave func(context.Context, *StepEvent)
	OnTourEnd   func(context.Context, *TourEvent)
	OnWarning   func(context.Context, *TourEvent)
}
