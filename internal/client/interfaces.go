package client

import "context"

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run executes the command line in args and returns its error.
	Run(ctx context.Context, args []string) error
}

// Prompter asks the user for input.
type Prompter interface {
	// Secret reads a value without echoing it when a terminal is attached.
	Secret(prompt string) (string, error)
	// Line reads one line of visible input.
	Line(prompt string) (string, error)
}
