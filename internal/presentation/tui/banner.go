package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the walkthrough banner to w using the colour profile of the terminal.
func PrintBanner(w io.Writer, title string) {
	p := termenv.ColorProfile()

	lines := []struct {
		text  string
		color string
	}{
		{" __      __        .__   __   ", "#818cf8"},
		{"/  \\    /  \\_____  |  | |  | __", "#a78bfa"},
		{"\\   \\/\\/   /\\__  \\ |  | |  |/ /", "#c084fc"},
		{" \\        /  / __ \\|  |_|    < ", "#e879f9"},
		{"  \\__/\\  /  (____  /____/__|_ \\", "#f472b6"},
		{"       \\/        \\/          \\/", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	if title != "" {
		fmt.Fprintln(w, termenv.String("  "+title).Bold())
	}
	fmt.Fprintln(w)
}
