package runner

import (
	"context"

	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/aretw0/walkthrough/pkg/ports"
)

// IOHandler defines the strategy for interacting with the user.
// It renders the controller's host calls and reads navigation commands,
// which allows switching between Text (CLI/TUI) and JSON (Structured) modes.
type IOHandler interface {
	ports.Host

	// Input reads one command line from the user.
	Input(ctx context.Context) (string, error)

	// SystemOutput presents a meta-message to the user (e.g. an unknown command).
	// This is distinct from tour rendering.
	SystemOutput(ctx context.Context, msg string) error
}

// Summarizer is implemented by handlers that report the final state of a run.
type Summarizer interface {
	Summary(ctx context.Context, state *domain.State) error
}
