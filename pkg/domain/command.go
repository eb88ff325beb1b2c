package domain

import (
	"fmt"
	"strings"
)

// Command is a navigation request delivered by a host.
type Command string

const (
	CommandNext  Command = "next"
	CommandBack  Command = "back"
	CommandClose Command = "close"
)

// ParseCommand normalises user input into a Command.
// An empty line means Next, matching the primary button of the callout.
func ParseCommand(input string) (Command, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "next", "n":
		return CommandNext, nil
	case "back", "b":
		return CommandBack, nil
	case "close", "q", "quit", "exit":
		return CommandClose, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCommand, input)
}
