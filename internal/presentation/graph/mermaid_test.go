package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/walkthrough/internal/presentation/graph"
	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func steps(n int) []domain.Step {
	out := make([]domain.Step, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, domain.Step{
			Index:       i,
			Marker:      "tour-target-" + string(rune('0'+i)),
			Element:     domain.Element{ID: "target-" + string(rune('0'+i))},
			Description: "Step \"" + string(rune('0'+i)) + "\"",
		})
	}
	return out
}

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name        string
		tour        graph.Tour
		contains    []string
		notContains []string
	}{
		{
			name: "Complete Tour",
			tour: graph.Tour{Steps: steps(3), Total: 3},
			contains: []string{
				"graph TD",
				"start((\"start\"))",
				"step1[\"1: #target-1 <br/> Step '1'\"]",
				"start --> step1",
				"step1 -- next --> step2",
				"step2 -- next --> step3",
				"step3 -- \"Got it!\" --> done",
				"step2 -. back .-> step1",
				"step1 -. close .-> closed",
			},
			notContains: []string{"aborted", "step3 -. back", "step3 -. close"},
		},
		{
			name: "Gap",
			tour: graph.Tour{
				Steps:  steps(2),
				Total:  4,
				Marker: func(i int) string { return "custom-" + string(rune('0'+i)) },
			},
			contains: []string{
				"step3{{\"3: no 'custom-3'\"}}",
				"step3 -. warn .-> aborted",
				"step2 -. back .-> step1",
			},
			notContains: []string{"step4", "--> done"},
		},
		{
			name: "Missing First Step",
			tour: graph.Tour{Total: 2},
			contains: []string{
				"step1{{\"1: no 'tour-target-1'\"}}",
				"start --> step1",
				"step1 -. warn .-> aborted",
			},
		},
		{
			name:        "Empty Tour",
			tour:        graph.Tour{},
			contains:    []string{"start --> empty"},
			notContains: []string{"step1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.tour, nil)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, unwanted := range tt.notContains {
				assert.NotContains(t, got, unwanted)
			}
		})
	}
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	overlay := &graph.GraphOverlay{
		VisitedSteps: []int{1, 2, 1, 2, 9},
		CurrentStep:  2,
	}

	got := graph.GenerateMermaid(graph.Tour{Steps: steps(3), Total: 3}, overlay)

	assert.Contains(t, got, "classDef visited")
	assert.Equal(t, 1, strings.Count(got, "class step1 visited;"))
	assert.Equal(t, 1, strings.Count(got, "class step2 visited;"))
	assert.NotContains(t, got, "step9")
	assert.Contains(t, got, "class step2 current;")
}

func TestGenerateMermaid_TruncatesDescriptions(t *testing.T) {
	s := steps(1)
	s[0].Description = strings.Repeat("word ", 20)

	got := graph.GenerateMermaid(graph.Tour{Steps: s, Total: 1}, nil)

	assert.Contains(t, got, "…")
}
