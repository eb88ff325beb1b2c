package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aretw0/walkthrough/internal/presentation/tui"
	"github.com/aretw0/walkthrough/pkg/domain"
)

// TextHandler renders the tour as framed callouts and reads commands line by line.
type TextHandler struct {
	Reader   *bufio.Reader
	Writer   io.Writer
	Renderer ContentRenderer
	Prompt   string

	inputChan chan inputResult
	startOnce sync.Once
}

type inputResult struct {
	text string
	err  error
}

var _ IOHandler = (*TextHandler)(nil)

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithTextHandlerRenderer configures the description renderer.
func WithTextHandlerRenderer(renderer ContentRenderer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Renderer = renderer
	}
}

// WithPrompt replaces the "> " input prompt.
func WithPrompt(prompt string) TextHandlerOption {
	return func(h *TextHandler) {
		h.Prompt = prompt
	}
}

// NewTextHandler creates a handler for standard text IO.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Reader: bufio.NewReader(r),
		Writer: w,
		Prompt: "> ",
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// initPump starts the background reader so Input can honour context cancellation.
func (h *TextHandler) initPump() {
	h.startOnce.Do(func() {
		h.inputChan = make(chan inputResult, DefaultInputBufferSize)
		go h.pump()
	})
}

func (h *TextHandler) pump() {
	defer close(h.inputChan)
	for {
		text, err := h.Reader.ReadString('\n')
		if text != "" {
			h.inputChan <- inputResult{text: text}
		}
		if err != nil {
			if err != io.EOF {
				h.inputChan <- inputResult{err: err}
			}
			return
		}
	}
}

func (h *TextHandler) OnShow(_ context.Context, placement domain.Placement, description string) {
	var render tui.Renderer
	if h.Renderer != nil {
		render = tui.Renderer(h.Renderer)
	}
	fmt.Fprintln(h.Writer, tui.RenderCallout(placement, description, render))
}

func (h *TextHandler) OnHighlightChange(_ context.Context, previous, current *domain.Element) {
	// Clearing is implied when another element takes the emphasis.
	if previous != nil && current != nil {
		previous = nil
	}
	if line := tui.RenderHighlight(previous, current); line != "" {
		fmt.Fprintln(h.Writer, line)
	}
}

func (h *TextHandler) OnEnd(_ context.Context) {
	fmt.Fprintln(h.Writer)
}

func (h *TextHandler) OnWarn(_ context.Context, message string) {
	fmt.Fprintln(h.Writer, tui.RenderWarning(message))
}

func (h *TextHandler) Input(ctx context.Context) (string, error) {
	h.initPump()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
			fmt.Fprint(h.Writer, h.Prompt)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case res, ok := <-h.inputChan:
			if !ok {
				return "", io.EOF
			}
			if res.err != nil {
				return "", res.err
			}
			clean, err := SanitizeInput(res.text)
			if err != nil {
				fmt.Fprintf(h.Writer, "Error: %v. Please try again.\n", err)
				continue
			}
			return clean, nil
		}
	}
}

func (h *TextHandler) SystemOutput(_ context.Context, msg string) error {
	_, err := fmt.Fprintf(h.Writer, "[System] %s\n", strings.TrimSpace(msg))
	return err
}

// Summary prints how the tour ended. Nothing is printed while the tour is still open.
func (h *TextHandler) Summary(_ context.Context, state *domain.State) error {
	if !state.Ended() {
		return nil
	}
	_, err := fmt.Fprintln(h.Writer, tui.RenderEnd(state.EndReason))
	return err
}
