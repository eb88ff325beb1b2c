package dsl

import (
	"context"
	"testing"

	"github.com/aretw0/walkthrough"
	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/aretw0/walkthrough/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Page(t *testing.T) {
	page, err := New().
		Element("search").Step(1).Describe("Search here").At(10, 20, 100, 40).
		Element("logo").At(0, 0, 40, 40).
		Element("inbox").Step(2).Marker("pinned").Describe("Inbox").At(80, 20, 200, 20).
		Build()
	require.NoError(t, err)

	els := page.Elements()
	require.Len(t, els, 3)
	assert.Equal(t, []string{"search", "logo", "inbox"}, []string{els[0].ID, els[1].ID, els[2].ID})

	el, ok := page.Find("tour-target-2")
	require.True(t, ok)
	assert.Equal(t, "inbox", el.ID)
	assert.True(t, el.HasMarker("pinned"))
	assert.Equal(t, domain.Rect{Top: 80, Left: 20, Width: 200, Height: 20}, page.Bounds(el))
}

func TestBuilder_ElementIsReused(t *testing.T) {
	b := New()
	b.Element("a").Step(1)
	b.Element("a").Step(1).Describe("Again")

	page, err := b.Build()
	require.NoError(t, err)
	require.Len(t, page.Elements(), 1)

	el := page.Elements()[0]
	assert.Equal(t, []string{"tour-target-1"}, el.Markers)
	desc, _ := el.Annotation("walkthrough")
	assert.Equal(t, "Again", desc)
}

func TestBuilder_Convention(t *testing.T) {
	page, err := New(WithConvention("tip-", "hint")).
		Element("a").Step(1).Describe("First").At(0, 0, 10, 10).
		Build()
	require.NoError(t, err)

	el, ok := page.Find("tip-1")
	require.True(t, ok)
	desc, _ := el.Annotation("hint")
	assert.Equal(t, "First", desc)
}

func TestBuilder_EmptyID(t *testing.T) {
	_, err := New().Element("").Step(1).Build()
	assert.ErrorContains(t, err, "failed to build page")
}

func TestBuilder_DrivesTour(t *testing.T) {
	page, err := New().
		Element("a").Step(1).Describe("One").At(0, 0, 100, 20).
		Element("b").Step(2).Describe("Two").At(40, 0, 100, 20).
		Build()
	require.NoError(t, err)

	engine, err := walkthrough.New("", walkthrough.WithPage(page))
	require.NoError(t, err)

	var shown []domain.Placement
	tour := engine.NewTour("", ports.HostFuncs{
		Show: func(_ context.Context, p domain.Placement, _ string) { shown = append(shown, p) },
	})
	tour.Activate(context.Background(), engine.CountSteps())
	tour.Next(context.Background())

	require.Len(t, shown, 2)
	assert.Equal(t, domain.Placement{Top: 50, Left: 110, Step: 2, TotalSteps: 2, IsLastStep: true}, shown[1])
}
