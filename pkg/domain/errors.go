package domain

import "errors"

// ErrStepNotFound is returned when no element carries the marker of a step index.
// It is the only signal of a convention violation (gap or wrong start index).
var ErrStepNotFound = errors.New("step target not found")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrInvalidCommand is returned when a host delivers a navigation command the controller does not know.
var ErrInvalidCommand = errors.New("invalid command")

// ErrTourNotActive is returned by queries that need a focused step.
var ErrTourNotActive = errors.New("tour is not active")

// ErrInvalidState is returned when a persisted state cannot be restored.
var ErrInvalidState = errors.New("invalid tour state")
