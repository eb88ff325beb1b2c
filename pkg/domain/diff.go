package domain

// StateDiff represents the changes between two tour states.
// It is designed to be serialized to JSON for partial updates on the client.
type StateDiff struct {
	// SessionID is always present to identify the target.
	SessionID string `json:"session_id"`

	CurrentStep *int       `json:"current_step,omitempty"`
	Phase       *Phase     `json:"phase,omitempty"`
	EndReason   *EndReason `json:"end_reason,omitempty"`

	// History contains the steps appended since the old state.
	History *HistoryDelta `json:"history,omitempty"`
}

// HistoryDelta represents changes to the history stack.
type HistoryDelta struct {
	Appended []int `json:"appended"`
}

// Diff calculates the difference between oldState and newState.
// If oldState is nil, it returns a diff representing the entire newState (initial load).
// It returns nil when nothing changed.
func Diff(oldState, newState *State) *StateDiff {
	if newState == nil {
		return nil
	}

	diff := &StateDiff{
		SessionID: newState.SessionID,
	}

	if oldState == nil || oldState.CurrentStep != newState.CurrentStep {
		step := newState.CurrentStep
		diff.CurrentStep = &step
	}
	if oldState == nil || oldState.Phase != newState.Phase {
		phase := newState.Phase
		diff.Phase = &phase
	}
	if newState.EndReason != "" && (oldState == nil || oldState.EndReason != newState.EndReason) {
		reason := newState.EndReason
		diff.EndReason = &reason
	}

	diff.History = diffHistory(oldState, newState)

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

// diffHistory assumes standard append-only behavior for History.
func diffHistory(old *State, new *State) *HistoryDelta {
	if new == nil || len(new.History) == 0 {
		return nil
	}

	if old == nil {
		return &HistoryDelta{Appended: new.History}
	}

	oldLen := len(old.History)
	if len(new.History) > oldLen {
		return &HistoryDelta{
			Appended: new.History[oldLen:],
		}
	}

	return nil
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *StateDiff) IsEmpty() bool {
	return d.CurrentStep == nil &&
		d.Phase == nil &&
		d.EndReason == nil &&
		d.History == nil
}
