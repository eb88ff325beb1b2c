package runner

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextHandler_OnShow(t *testing.T) {
	out := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader(""), out,
		WithTextHandlerRenderer(func(s string) (string, error) {
			return "Rendered: " + s, nil
		}),
	)

	handler.OnShow(context.Background(), domain.Placement{Step: 1, TotalSteps: 2}, "Hello World")

	assert.Contains(t, out.String(), "Rendered: Hello World")
	assert.Contains(t, out.String(), "[1/2]")
}

func TestTextHandler_OnHighlightChange(t *testing.T) {
	out := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader(""), out)
	a := &domain.Element{ID: "a"}
	b := &domain.Element{ID: "b"}

	handler.OnHighlightChange(context.Background(), a, b)
	assert.Contains(t, out.String(), "highlighting #b")
	assert.NotContains(t, out.String(), "#a")

	out.Reset()
	handler.OnHighlightChange(context.Background(), b, nil)
	assert.Contains(t, out.String(), "cleared #b")
}

func TestTextHandler_Input(t *testing.T) {
	out := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader("  back \n"), out)

	val, err := handler.Input(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "back", val)
	assert.Equal(t, "> ", out.String())

	_, err = handler.Input(context.Background())
	assert.ErrorIs(t, err, io.EOF)
}

func TestTextHandler_Input_RejectsOversizedLines(t *testing.T) {
	out := &bytes.Buffer{}
	long := strings.Repeat("x", DefaultMaxInputSize+1)
	handler := NewTextHandler(strings.NewReader(long+"\nq\n"), out, WithPrompt("? "))

	val, err := handler.Input(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "q", val)
	assert.Contains(t, out.String(), "Please try again")
	assert.Equal(t, 2, strings.Count(out.String(), "? "))
}

func TestTextHandler_Input_Cancelled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	handler := NewTextHandler(pr, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := handler.Input(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTextHandler_Summary(t *testing.T) {
	out := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader(""), out)

	active := domain.NewState("s")
	active.Phase = domain.PhaseActive
	require.NoError(t, handler.Summary(context.Background(), active))
	assert.Empty(t, out.String())

	ended := domain.NewState("s")
	ended.Phase = domain.PhaseEnded
	ended.EndReason = domain.EndClosed
	require.NoError(t, handler.Summary(context.Background(), ended))
	assert.Contains(t, out.String(), "Tour closed.")
}
