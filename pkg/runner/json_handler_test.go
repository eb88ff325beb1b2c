package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONHandler_Input(t *testing.T) {
	in := strings.Join([]string{
		`"next"`,
		`{"command":"back"}`,
		`close`,
		`"q"`,
	}, "\n")
	handler := NewJSONHandler(strings.NewReader(in), io.Discard)

	for _, want := range []string{"next", "back", "close", "q"} {
		got, err := handler.Input(context.Background())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := handler.Input(context.Background())
	assert.ErrorIs(t, err, io.EOF)
}

func TestJSONHandler_Effects(t *testing.T) {
	out := &bytes.Buffer{}
	handler := NewJSONHandler(strings.NewReader(""), out)
	ctx := context.Background()

	el := &domain.Element{ID: "save"}
	handler.OnHighlightChange(ctx, nil, el)
	handler.OnShow(ctx, domain.Placement{Top: 1, Left: 2, Step: 1, TotalSteps: 1, IsLastStep: true}, "Save it")
	handler.OnWarn(ctx, "careful")
	handler.OnEnd(ctx)
	require.NoError(t, handler.SystemOutput(ctx, "bye"))

	dec := json.NewDecoder(out)

	var highlight domain.Effect
	require.NoError(t, dec.Decode(&highlight))
	assert.Equal(t, domain.EffectHighlight, highlight.Type)
	require.NotNil(t, highlight.Current)
	assert.Equal(t, "save", highlight.Current.ID)
	assert.Nil(t, highlight.Previous)

	var show domain.Effect
	require.NoError(t, dec.Decode(&show))
	assert.Equal(t, domain.EffectShow, show.Type)
	assert.Equal(t, "Save it", show.Description)
	require.NotNil(t, show.Placement)
	assert.True(t, show.Placement.IsLastStep)

	var warn domain.Effect
	require.NoError(t, dec.Decode(&warn))
	assert.Equal(t, "careful", warn.Message)

	var end domain.Effect
	require.NoError(t, dec.Decode(&end))
	assert.Equal(t, domain.EffectEnd, end.Type)

	var msg Message
	require.NoError(t, dec.Decode(&msg))
	assert.Equal(t, Message{Type: "system", Message: "bye"}, msg)

	assert.Len(t, handler.Effects(), 4)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestJSONHandler_WriteErrorStopsInput(t *testing.T) {
	handler := NewJSONHandler(strings.NewReader("next\n"), failingWriter{})

	handler.OnEnd(context.Background())

	_, err := handler.Input(context.Background())
	assert.EqualError(t, err, "broken pipe")
}
