package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControls(t *testing.T) {
	mid := Controls(false)
	require.Len(t, mid, 3)
	assert.Equal(t, LabelNext, mid[0].Label)
	assert.Equal(t, LabelBack, mid[1].Label)
	assert.Equal(t, LabelClose, mid[2].Label)

	last := Controls(true)
	require.Len(t, last, 1)
	assert.Equal(t, LabelDone, last[0].Label)
}

func TestRenderCallout(t *testing.T) {
	p := domain.Placement{Top: 25, Left: 130, Step: 2, TotalSteps: 4}

	out := RenderCallout(p, "Open the settings", PlainRenderer)

	assert.Contains(t, out, "[2/4]")
	assert.Contains(t, out, "Open the settings")
	assert.Contains(t, out, "top=25 left=130")
	assert.Contains(t, out, LabelNext)
	assert.Contains(t, out, LabelBack)
	assert.Contains(t, out, LabelClose)
	assert.NotContains(t, out, LabelDone)
}

func TestRenderCallout_LastStep(t *testing.T) {
	p := domain.Placement{Step: 4, TotalSteps: 4, IsLastStep: true}

	out := RenderCallout(p, "", nil)

	assert.Contains(t, out, LabelDone)
	assert.NotContains(t, out, LabelBack)
	assert.NotContains(t, out, LabelClose)
}

func TestRenderCallout_UsesRenderer(t *testing.T) {
	upper := func(s string) (string, error) { return strings.ToUpper(s), nil }

	out := RenderCallout(domain.Placement{Step: 1, TotalSteps: 2}, "hello", upper)

	assert.Contains(t, out, "HELLO")
}

func TestRenderHighlight(t *testing.T) {
	a := &domain.Element{ID: "save"}
	b := &domain.Element{Markers: []string{"tour-target-2"}}

	assert.Contains(t, RenderHighlight(nil, a), "#save")
	assert.Contains(t, RenderHighlight(a, b), ".tour-target-2")
	assert.Contains(t, RenderHighlight(a, nil), "cleared #save")
	assert.Empty(t, RenderHighlight(nil, nil))
}

func TestRenderEnd(t *testing.T) {
	assert.Contains(t, RenderEnd(domain.EndCompleted), "complete")
	assert.Contains(t, RenderEnd(domain.EndClosed), "closed")
	assert.Contains(t, RenderEnd(domain.EndEmpty), "no steps")
	assert.Contains(t, RenderEnd(domain.EndAborted), "ended")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "Settings tour")
	assert.Contains(t, buf.String(), "Settings tour")
}

func TestNewRenderer(t *testing.T) {
	render, err := NewRenderer(60)
	require.NoError(t, err)

	out, err := render("**bold** text")
	require.NoError(t, err)
	assert.Contains(t, out, "bold")
}
