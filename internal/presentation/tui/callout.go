package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/charmbracelet/lipgloss"
)

// Control labels shown under the callout.
const (
	LabelNext  = "Next"
	LabelBack  = "Back"
	LabelClose = "Close"
	LabelDone  = "Got it!"
)

var (
	calloutStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#a78bfa")).
			Padding(0, 1)

	progressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#818cf8")).Bold(true)
	anchorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	keyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#f472b6")).Bold(true)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#fbbf24")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Control is one button of the callout.
type Control struct {
	Label string
	Key   string
}

// Controls returns the buttons offered for a step.
// The last step only offers the completion button.
func Controls(last bool) []Control {
	if last {
		return []Control{{Label: LabelDone, Key: "enter"}}
	}
	return []Control{
		{Label: LabelNext, Key: "n"},
		{Label: LabelBack, Key: "b"},
		{Label: LabelClose, Key: "q"},
	}
}

// RenderCallout draws the framed callout for a placement.
// The description is passed through render when it is not nil.
func RenderCallout(p domain.Placement, description string, render Renderer) string {
	body := strings.TrimSpace(description)
	if render != nil && body != "" {
		if out, err := render(body); err == nil {
			body = strings.TrimSpace(out)
		}
	}

	var b strings.Builder
	b.WriteString(progressStyle.Render(fmt.Sprintf("[%d/%d]", p.Step, p.TotalSteps)))
	b.WriteString(anchorStyle.Render(fmt.Sprintf("  @ top=%g left=%g", p.Top, p.Left)))
	b.WriteString("\n")
	if body != "" {
		b.WriteString("\n")
		b.WriteString(body)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(renderControls(Controls(p.IsLastStep)))

	return calloutStyle.Render(b.String())
}

func renderControls(controls []Control) string {
	parts := make([]string, 0, len(controls))
	for _, c := range controls {
		parts = append(parts, labelStyle.Render(c.Label)+" "+keyStyle.Render("("+c.Key+")"))
	}
	return strings.Join(parts, mutedStyle.Render("  ·  "))
}

// RenderHighlight describes a change of emphasis between two elements.
func RenderHighlight(previous, current *domain.Element) string {
	switch {
	case current != nil:
		return mutedStyle.Render("▸ highlighting " + describe(current))
	case previous != nil:
		return mutedStyle.Render("▹ cleared " + describe(previous))
	default:
		return ""
	}
}

// RenderWarning styles a convention warning.
func RenderWarning(msg string) string {
	return warnStyle.Render("⚠ " + msg)
}

// RenderEnd is printed when the tour is torn down.
func RenderEnd(reason domain.EndReason) string {
	switch reason {
	case domain.EndCompleted:
		return mutedStyle.Render("Tour complete.")
	case domain.EndClosed:
		return mutedStyle.Render("Tour closed.")
	case domain.EndEmpty:
		return mutedStyle.Render("Nothing to show: the tour has no steps.")
	default:
		return mutedStyle.Render("Tour ended.")
	}
}

func describe(el *domain.Element) string {
	if el.ID != "" {
		return "#" + el.ID
	}
	if len(el.Markers) > 0 {
		return "." + el.Markers[0]
	}
	return "element"
}
