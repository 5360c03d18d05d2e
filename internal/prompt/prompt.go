// Package prompt asks the user to pick, confirm and type values on an
// interactive terminal.
package prompt

import (
	"context"
	"errors"
)

// ErrCanceled is returned when the user backs out of a prompt.
var ErrCanceled = errors.New("selection canceled")

// Choice is one option offered to the user. Value must be unique within a
// prompt.
type Choice struct {
	Label       string
	Description string
	Value       string
}

// Prompter collects input from the user.
type Prompter interface {
	// Select asks for exactly one of choices.
	Select(ctx context.Context, title string, choices []Choice) (Choice, error)
	// MultiSelect asks for any subset of choices, in offered order.
	MultiSelect(ctx context.Context, title string, choices []Choice) ([]Choice, error)
	// Confirm asks a yes/no question.
	Confirm(ctx context.Context, title string, def bool) (bool, error)
	// Input asks for free text, pre-filled with initial.
	Input(ctx context.Context, title, initial string) (string, error)
}
