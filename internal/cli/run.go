package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/walkthrough/internal/presentation/tui"
	"github.com/aretw0/walkthrough/pkg/runner"
	"github.com/aretw0/walkthrough/pkg/session"
)

// RunSession executes a single tour in the terminal.
// signal reports the signal that cancelled ctx, if any; it may be nil.
func RunSession(ctx context.Context, opts RunOptions, signal func() os.Signal) error {
	opts.defaults()
	cfg := opts.Config

	logger, err := NewLogger(cfg.Log.Level, opts.Debug)
	if err != nil {
		return err
	}

	engine, err := CreateEngine(opts.PagePath, cfg, logger)
	if err != nil {
		return err
	}

	if !opts.Headless {
		tui.PrintBanner(opts.Output, engine.Name)
	}

	runnerOpts := []runner.Option{
		runner.WithLogger(logger),
		runner.WithHeadless(opts.Headless),
		runner.WithIO(opts.Input, opts.Output),
	}
	if !opts.Headless {
		runnerOpts = append(runnerOpts, runner.WithRenderer(runner.ContentRenderer(chooseRenderer(opts.Output, opts.Plain, logger))))
	}
	if opts.TotalSteps > 0 {
		runnerOpts = append(runnerOpts, runner.WithTotalSteps(opts.TotalSteps))
	}

	if opts.SessionID != "" {
		var sessions *session.Manager
		var closeFn func() error
		sessions, closeFn, err = OpenSessions(ctx, cfg.Store, cfg.Redis, logger)
		if err != nil {
			return err
		}
		defer closeFn()

		if opts.Fresh {
			if err := resetSession(ctx, sessions, opts.SessionID); err != nil {
				return fmt.Errorf("failed to reset session: %w", err)
			}
		}
		runnerOpts = append(runnerOpts, runner.WithSessions(sessions), runner.WithSessionID(opts.SessionID))
		logger.Info("session enabled", "session_id", opts.SessionID, "backend", cfg.Store.Backend)
	}

	state, runErr := runner.NewRunner(runnerOpts...).Run(ctx, engine)

	if !opts.Headless {
		var sig os.Signal
		if signal != nil {
			sig = signal()
		}
		logCompletion(opts.Output, state, runErr, sig)
	}

	return handleExecutionError(runErr)
}
