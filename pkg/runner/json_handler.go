package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aretw0/walkthrough/pkg/adapters/recorder"
	"github.com/aretw0/walkthrough/pkg/domain"
)

// JSONHandler implements IOHandler for structured JSON-Lines communication.
// Every host call is written as one domain.Effect per line.
type JSONHandler struct {
	*recorder.Recorder

	Reader  *bufio.Reader
	Encoder *json.Encoder

	mu  sync.Mutex
	err error
}

var _ IOHandler = (*JSONHandler)(nil)

// Message is a non-effect line written by the JSONHandler.
type Message struct {
	Type    string        `json:"type"`
	Message string        `json:"message,omitempty"`
	State   *domain.State `json:"state,omitempty"`
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &JSONHandler{
		Reader:  bufio.NewReader(r),
		Encoder: json.NewEncoder(w),
	}
	h.Recorder = recorder.New(func(e domain.Effect) {
		h.encode(e)
	})
	return h
}

func (h *JSONHandler) encode(v any) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.Encoder.Encode(v); err != nil {
		if h.err == nil {
			h.err = err
		}
		return err
	}
	return nil
}

// Err returns the first write error, if any. Host calls cannot return errors themselves.
func (h *JSONHandler) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Input reads a line holding a JSON string ("next"), an object ({"command":"next"})
// or plain text.
func (h *JSONHandler) Input(ctx context.Context) (string, error) {
	if err := h.Err(); err != nil {
		return "", err
	}

	text, err := h.Reader.ReadString('\n')
	if err != nil && (err != io.EOF || strings.TrimSpace(text) == "") {
		return "", err
	}
	text = strings.TrimSpace(text)

	var val string
	if err := json.Unmarshal([]byte(text), &val); err == nil {
		return SanitizeInput(val)
	}

	var obj struct {
		Command string `json:"command"`
	}
	if err := json.Unmarshal([]byte(text), &obj); err == nil {
		return SanitizeInput(obj.Command)
	}

	return SanitizeInput(text)
}

func (h *JSONHandler) SystemOutput(_ context.Context, msg string) error {
	return h.encode(Message{Type: "system", Message: msg})
}

// Summary writes the final state of the run.
func (h *JSONHandler) Summary(_ context.Context, state *domain.State) error {
	return h.encode(Message{Type: "summary", State: state})
}
