package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/walkthrough/pkg/domain"
)

// GraphOverlay contains session data to visualize on the graph.
type GraphOverlay struct {
	VisitedSteps []int
	CurrentStep  int
}

// Tour describes the shape of a tour to draw.
type Tour struct {
	// Steps holds the steps resolved in order from 1.
	Steps []domain.Step
	// Total is the declared step count.
	Total int
	// Marker names the marker of a step, used to label the first missing one.
	Marker func(index int) string
}

// GenerateMermaid produces a Mermaid flowchart of a tour.
// Declared steps without a resolved target are drawn as missing and lead to the abort node.
// Shapes:
// - Start/Done: ((Circle))
// - Step: [Rectangle]
// - Missing step: {{Hexagon}}
func GenerateMermaid(tour Tour, overlay *GraphOverlay) string {
	steps, total := tour.Steps, tour.Total

	var sb strings.Builder
	sb.WriteString("graph TD\n")
	sb.WriteString("    start((\"start\"))\n")

	if total <= 0 {
		sb.WriteString("    empty((\"empty\"))\n")
		sb.WriteString("    start --> empty\n")
		return sb.String()
	}

	sb.WriteString("    done((\"done\"))\n")
	sb.WriteString("    closed((\"closed\"))\n")

	resolved := len(steps)
	if resolved > total {
		resolved = total
	}

	for i := 0; i < resolved; i++ {
		s := steps[i]
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", nodeID(s.Index), stepLabel(s)))
	}

	if resolved < total {
		missing := resolved + 1
		sb.WriteString(fmt.Sprintf("    %s{{\"%d: no '%s'\"}}\n", nodeID(missing), missing, escape(tour.marker(missing))))
		sb.WriteString("    aborted((\"aborted\"))\n")
	}

	// Forward path
	sb.WriteString(fmt.Sprintf("    start --> %s\n", nodeID(1)))
	for i := 1; i < resolved; i++ {
		sb.WriteString(fmt.Sprintf("    %s -- next --> %s\n", nodeID(i), nodeID(i+1)))
	}
	if resolved == total {
		sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> done\n", nodeID(total), "Got it!"))
	} else {
		sb.WriteString(fmt.Sprintf("    %s -. warn .-> aborted\n", nodeID(resolved+1)))
	}

	// Back and close edges
	for i := 2; i <= resolved; i++ {
		if i == total {
			continue
		}
		sb.WriteString(fmt.Sprintf("    %s -. back .-> %s\n", nodeID(i), nodeID(i-1)))
	}
	for i := 1; i <= resolved; i++ {
		if i == total {
			continue
		}
		sb.WriteString(fmt.Sprintf("    %s -. close .-> closed\n", nodeID(i)))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[int]bool)
		for _, idx := range overlay.VisitedSteps {
			if idx < 1 || idx > total || seen[idx] {
				continue
			}
			seen[idx] = true
			sb.WriteString(fmt.Sprintf("    class %s visited;\n", nodeID(idx)))
		}

		if overlay.CurrentStep > 0 && overlay.CurrentStep <= total {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", nodeID(overlay.CurrentStep)))
		}
	}

	return sb.String()
}

func nodeID(index int) string {
	return fmt.Sprintf("step%d", index)
}

func stepLabel(s domain.Step) string {
	label := fmt.Sprintf("%d: %s", s.Index, target(s.Element))
	if s.Description != "" {
		label += " <br/> " + truncate(s.Description, 40)
	}
	return escape(label)
}

func target(el domain.Element) string {
	if el.ID != "" {
		return "#" + el.ID
	}
	return "element"
}

func (t Tour) marker(index int) string {
	if t.Marker != nil {
		return t.Marker(index)
	}
	return fmt.Sprintf("%s%d", domain.DefaultMarkerPrefix, index)
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
