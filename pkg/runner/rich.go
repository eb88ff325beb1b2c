package runner

import (
	"context"

	"github.com/aretw0/walkthrough"
	"github.com/aretw0/walkthrough/pkg/adapters/recorder"
	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/aretw0/walkthrough/pkg/session"
)

// RichResponse combines state and host effects for rich clients (Web, MCP, etc).
// This encapsulates the common pattern of: Load -> Restore -> Apply -> Save -> Return Effects.
type RichResponse struct {
	State   *domain.State   `json:"state" jsonschema_description:"The tour state after the command"`
	Effects []domain.Effect `json:"effects" jsonschema_description:"Host calls produced by the command, in order"`

	// Diff is the change against the stored state, nil when nothing changed.
	Diff *domain.StateDiff `json:"-"`
}

// ApplyAndRecord runs op on the stored tour of a session under its lock, records every
// host call and persists the resulting state.
func ApplyAndRecord(
	ctx context.Context,
	engine *walkthrough.Engine,
	sessions *session.Manager,
	sessionID string,
	op func(context.Context, *walkthrough.Tour),
) (*RichResponse, error) {
	rec := recorder.New(nil)
	var before *domain.State

	state, err := sessions.Update(ctx, sessionID, func(ctx context.Context, current *domain.State) (*domain.State, error) {
		before = current.Snapshot()
		tour, err := engine.Restore(current, rec)
		if err != nil {
			return nil, err
		}
		op(ctx, tour)
		return tour.State(), nil
	})
	if err != nil {
		return nil, err
	}

	return &RichResponse{
		State:   state,
		Effects: rec.Drain(),
		Diff:    domain.Diff(before, state),
	}, nil
}

// StartAndRecord creates the session when missing and activates its tour.
// The boolean reports whether the session already existed.
func StartAndRecord(
	ctx context.Context,
	engine *walkthrough.Engine,
	sessions *session.Manager,
	sessionID string,
	totalSteps int,
) (*RichResponse, bool, error) {
	_, loaded, err := sessions.LoadOrCreate(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}
	resp, err := ApplyAndRecord(ctx, engine, sessions, sessionID, func(ctx context.Context, t *walkthrough.Tour) {
		t.Activate(ctx, totalSteps)
	})
	return resp, loaded, err
}

// CommandAndRecord applies a navigation command to a stored tour.
func CommandAndRecord(
	ctx context.Context,
	engine *walkthrough.Engine,
	sessions *session.Manager,
	sessionID string,
	cmd domain.Command,
) (*RichResponse, error) {
	var applyErr error
	resp, err := ApplyAndRecord(ctx, engine, sessions, sessionID, func(ctx context.Context, t *walkthrough.Tour) {
		applyErr = t.Apply(ctx, cmd)
	})
	if err != nil {
		return nil, err
	}
	return resp, applyErr
}
