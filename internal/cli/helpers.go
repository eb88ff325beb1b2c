package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/walkthrough/internal/logging"
	"github.com/aretw0/walkthrough/internal/presentation/tui"
	"github.com/aretw0/walkthrough/pkg/domain"
	"golang.org/x/term"
)

// SignalContext is a context cancelled on SIGINT or SIGTERM that remembers the signal.
type SignalContext struct {
	context.Context
	Cancel context.CancelFunc

	mu  sync.Mutex
	sig os.Signal
}

// NewSignalContext works like signal.NotifyContext but keeps the received signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{Context: ctx, Cancel: cancel}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer signal.Stop(ch)
		select {
		case s := <-ch:
			sc.mu.Lock()
			sc.sig = s
			sc.mu.Unlock()
			cancel()
		case <-ctx.Done():
		}
	}()
	return sc
}

// Signal returns the signal that cancelled the context, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sig
}

// NewLogger resolves the configured level; debug forces debug output.
func NewLogger(level string, debug bool) (*slog.Logger, error) {
	if debug {
		return logging.New(slog.LevelDebug), nil
	}
	return logging.FromConfig(level)
}

func debugEnabled(logger *slog.Logger) bool {
	return logger != nil && logger.Enabled(context.Background(), slog.LevelDebug)
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// isTerminal reports whether w is an interactive terminal, and its width when known.
func isTerminal(w io.Writer) (bool, int) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return false, 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return true, 0
	}
	return true, width
}

// chooseRenderer uses glamour on terminals and plain text otherwise.
func chooseRenderer(w io.Writer, plain bool, logger *slog.Logger) tui.Renderer {
	tty, width := isTerminal(w)
	if plain || !tty {
		return tui.PlainRenderer
	}
	render, err := tui.NewRenderer(width)
	if err != nil {
		logger.Warn("markdown rendering disabled", "err", err)
		return tui.PlainRenderer
	}
	return render
}

func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled)
}

func handleExecutionError(err error) error {
	if err == nil || isInterrupted(err) {
		return nil
	}
	return err
}

// logCompletion reports where the tour stopped.
func logCompletion(w io.Writer, state *domain.State, err error, sig os.Signal) {
	step := 0
	if state != nil {
		step = state.CurrentStep
	}

	switch {
	case err == nil && state != nil && state.Phase == domain.PhaseActive:
		fmt.Fprintln(w)
		printSystemMessage(w, "Paused at step %d of %d.", step, state.TotalSteps)
	case err == nil:
	case isInterrupted(err) && sig == os.Interrupt:
		fmt.Fprintf(w, "[CTRL+C]\n")
		printSystemMessage(w, "Interrupted at step %d.", step)
	case isInterrupted(err) && sig != nil:
		fmt.Fprintln(w)
		printSystemMessage(w, "Terminated at step %d.", step)
	case isInterrupted(err):
		fmt.Fprintln(w)
		printSystemMessage(w, "Interrupted at step %d.", step)
	}
}
