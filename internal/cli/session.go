package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/aretw0/walkthrough/internal/config"
	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/aretw0/walkthrough/pkg/session"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	PagePath   string
	Headless   bool
	Debug      bool
	Plain      bool
	SessionID  string
	Fresh      bool
	TotalSteps int

	Config *config.Config
	Input  io.Reader
	Output io.Writer
}

func (o *RunOptions) defaults() {
	if o.Config == nil {
		o.Config = config.Default()
	}
	if o.Input == nil {
		o.Input = os.Stdin
	}
	if o.Output == nil {
		o.Output = os.Stdout
	}
}

// Execute handles the run command: it resets the session when asked to and runs the tour
// until it ends, the input closes or a signal arrives.
func Execute(opts RunOptions) error {
	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	return RunSession(sigCtx, opts, sigCtx.Signal)
}

// ResetSession clears the persisted tour of sessionID. A missing session is not an error.
func ResetSession(ctx context.Context, opts RunOptions) error {
	opts.defaults()
	if opts.SessionID == "" {
		return nil
	}

	logger, err := NewLogger(opts.Config.Log.Level, opts.Debug)
	if err != nil {
		return err
	}
	sessions, closeFn, err := OpenSessions(ctx, opts.Config.Store, opts.Config.Redis, logger)
	if err != nil {
		return err
	}
	defer closeFn()

	return resetSession(ctx, sessions, opts.SessionID)
}

func resetSession(ctx context.Context, sessions *session.Manager, id string) error {
	if err := sessions.Delete(ctx, id); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return err
	}
	return nil
}
