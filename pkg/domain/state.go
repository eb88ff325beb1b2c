package domain

// Phase defines where the tour is in its lifecycle.
type Phase string

const (
	PhaseInactive Phase = "inactive" // Not activated yet
	PhaseActive   Phase = "active"   // A step is focused
	PhaseEnded    Phase = "ended"    // Terminal until a fresh activation
)

// EndReason explains why a tour reached PhaseEnded.
type EndReason string

const (
	EndCompleted EndReason = "completed" // Next on the last step
	EndClosed    EndReason = "closed"    // Dismissed by the user
	EndAborted   EndReason = "aborted"   // Missing target (convention violation)
	EndEmpty     EndReason = "empty"     // Activated with no steps
)

// State represents the current snapshot of a tour.
type State struct {
	// SessionID identifies the tour instance for persistence.
	SessionID string `json:"session_id,omitempty"`

	// Phase indicates if the tour is inactive, active or ended.
	Phase Phase `json:"phase"`

	// CurrentStep is the 1-based index of the focused step (0 while inactive).
	CurrentStep int `json:"current_step"`

	// TotalSteps is fixed for the lifetime of the tour, supplied at activation.
	TotalSteps int `json:"total_steps"`

	// EndReason is set once Phase is PhaseEnded.
	EndReason EndReason `json:"end_reason,omitempty"`

	// History tracks the steps shown, in order.
	History []int `json:"history,omitempty"`
}

// NewState creates a clean, inactive state for a session.
func NewState(sessionID string) *State {
	return &State{
		SessionID: sessionID,
		Phase:     PhaseInactive,
		History:   []int{},
	}
}

// Active reports whether a step is currently focused.
func (s *State) Active() bool {
	return s != nil && s.Phase == PhaseActive
}

// Ended reports whether the tour reached its terminal phase.
func (s *State) Ended() bool {
	return s != nil && s.Phase == PhaseEnded
}

// Snapshot creates a deep copy of the state.
func (s *State) Snapshot() *State {
	if s == nil {
		return nil
	}
	next := *s
	next.History = make([]int, len(s.History))
	copy(next.History, s.History)
	return &next
}
