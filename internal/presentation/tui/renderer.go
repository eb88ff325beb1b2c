package tui

import (
	"github.com/charmbracelet/glamour"
)

// Renderer turns a markdown description into terminal output.
type Renderer func(string) (string, error)

// NewRenderer returns a Renderer backed by glamour.
// The style follows the terminal background; a non-positive width disables word wrap.
func NewRenderer(width int) (Renderer, error) {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, err
	}
	return r.Render, nil
}

// PlainRenderer returns the description untouched. Used when stdout is not a terminal.
func PlainRenderer(s string) (string, error) {
	return s, nil
}
