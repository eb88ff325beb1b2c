package memory_test

import (
	"testing"

	"github.com/aretw0/walkthrough/pkg/adapters/memory"
	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/aretw0/walkthrough/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func standardPage(t *testing.T) *memory.Page {
	t.Helper()
	var targets []memory.Target
	for _, tg := range tests.StandardTargets {
		targets = append(targets, memory.Tagged(tg.Index, tg.Description, tg.Rect))
	}
	page, err := memory.NewPage(targets...)
	require.NoError(t, err)
	return page
}

func TestPage_Contract(t *testing.T) {
	tests.PageContractTest(t, standardPage(t), tests.StandardTargets)
}

func TestPage_DuplicateID(t *testing.T) {
	_, err := memory.NewPage(
		memory.Tagged(1, "a", domain.Rect{}),
		memory.Tagged(1, "b", domain.Rect{}),
	)
	assert.Error(t, err)

	_, err = memory.NewPage(memory.Target{Element: domain.Element{}})
	assert.Error(t, err)
}

func TestPage_DocumentOrder(t *testing.T) {
	page, err := memory.NewPage()
	require.NoError(t, err)

	require.NoError(t, page.Add(domain.Element{ID: "first", Markers: []string{"tour-target-1"}}, domain.Rect{}))
	require.NoError(t, page.Add(domain.Element{ID: "second", Markers: []string{"tour-target-1"}}, domain.Rect{}))

	el, ok := page.Find("tour-target-1")
	require.True(t, ok)
	assert.Equal(t, "first", el.ID)
}

func TestPage_MoveAndRemove(t *testing.T) {
	page := standardPage(t)

	el, ok := page.Find("tour-target-2")
	require.True(t, ok)

	moved := domain.Rect{Top: 1, Left: 2, Width: 3, Height: 4}
	page.Move(el.ID, moved)
	assert.Equal(t, moved, page.Bounds(el))

	page.Remove(el.ID)
	_, ok = page.Find("tour-target-2")
	assert.False(t, ok)
	assert.Len(t, page.Elements(), 2)
	assert.Equal(t, domain.Rect{}, page.Bounds(el))
}

func TestPage_ElementsAreCopies(t *testing.T) {
	page, err := memory.NewPage(memory.Tagged(1, "Original", domain.Rect{}))
	require.NoError(t, err)

	listed := page.Elements()
	listed[0].Annotations[domain.DefaultAnnotationKey] = "Changed"
	listed[0].Markers[0] = "other"

	found, ok := page.Find("tour-target-1")
	require.True(t, ok)
	desc, _ := found.Annotation(domain.DefaultAnnotationKey)
	assert.Equal(t, "Original", desc)

	found.Annotations[domain.DefaultAnnotationKey] = "Changed again"
	again, ok := page.Find("tour-target-1")
	require.True(t, ok)
	desc, _ = again.Annotation(domain.DefaultAnnotationKey)
	assert.Equal(t, "Original", desc)
}
