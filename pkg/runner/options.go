package runner

import (
	"io"
	"log/slog"

	"github.com/aretw0/walkthrough/pkg/session"
)

// DefaultInputBufferSize is the default number of lines to buffer for input handlers.
const DefaultInputBufferSize = 64

// ContentRenderer transforms a step description before it is shown.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithSessions enables persistence and resume through a session manager.
func WithSessions(sessions *session.Manager) Option {
	return func(r *Runner) {
		r.Sessions = sessions
	}
}

// WithSessionID sets the session to resume or create.
// It is required for persistence when WithSessions is used.
func WithSessionID(id string) Option {
	return func(r *Runner) {
		r.SessionID = id
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithInputHandler configures a custom IOHandler.
func WithInputHandler(handler IOHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithHeadless selects the JSON handler when no handler is configured.
func WithHeadless(headless bool) Option {
	return func(r *Runner) {
		r.Headless = headless
	}
}

// WithRenderer configures the description renderer of the default text handler.
func WithRenderer(renderer ContentRenderer) Option {
	return func(r *Runner) {
		r.Renderer = renderer
	}
}

// WithIO sets the streams used by the default handlers.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(r *Runner) {
		r.Input = in
		r.Output = out
	}
}

// WithTotalSteps fixes the step count instead of counting tagged steps on the page.
func WithTotalSteps(n int) Option {
	return func(r *Runner) {
		r.TotalSteps = n
		r.totalSet = true
	}
}
