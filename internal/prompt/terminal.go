package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// Terminal prompts on a real terminal. Single choice uses a filterable
// bubbletea list; the remaining prompts are huh forms.
type Terminal struct {
	in  io.Reader
	out io.Writer
}

// NewTerminal creates a prompter reading keys from in and drawing on out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: in, out: out}
}

// Select runs the list picker.
func (t *Terminal) Select(ctx context.Context, title string, choices []Choice) (Choice, error) {
	if len(choices) == 0 {
		return Choice{}, errors.New("nothing to choose from")
	}

	p := tea.NewProgram(newPickModel(title, choices),
		tea.WithContext(ctx),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return Choice{}, ErrCanceled
		}
		return Choice{}, fmt.Errorf("picker error: %w", err)
	}

	result := finalModel.(pickModel)
	if result.canceled {
		return Choice{}, ErrCanceled
	}
	return result.selected, nil
}

// MultiSelect runs a filterable huh multi-select.
func (t *Terminal) MultiSelect(ctx context.Context, title string, choices []Choice) ([]Choice, error) {
	byValue := make(map[string]Choice, len(choices))
	options := make([]huh.Option[string], 0, len(choices))
	for _, c := range choices {
		byValue[c.Value] = c
		label := c.Label
		if c.Description != "" {
			label += "  " + c.Description
		}
		options = append(options, huh.NewOption(label, c.Value))
	}

	var values []string
	field := huh.NewMultiSelect[string]().
		Title(title).
		Description("space to toggle, / to filter, enter to finish").
		Options(options...).
		Filterable(true).
		Value(&values)
	if err := t.run(ctx, field); err != nil {
		return nil, err
	}

	picked := make(map[string]bool, len(values))
	for _, v := range values {
		picked[v] = true
	}
	var selected []Choice
	for _, c := range choices {
		if picked[c.Value] {
			selected = append(selected, byValue[c.Value])
		}
	}
	return selected, nil
}

// Confirm runs a huh yes/no prompt.
func (t *Terminal) Confirm(ctx context.Context, title string, def bool) (bool, error) {
	ok := def
	field := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok)
	if err := t.run(ctx, field); err != nil {
		return false, err
	}
	return ok, nil
}

// Input runs a huh text prompt pre-filled with initial.
func (t *Terminal) Input(ctx context.Context, title, initial string) (string, error) {
	value := initial
	field := huh.NewInput().
		Title(title).
		Value(&value)
	if err := t.run(ctx, field); err != nil {
		return "", err
	}
	return value, nil
}

func (t *Terminal) run(ctx context.Context, field huh.Field) error {
	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(huh.ThemeCharm()).
		WithInput(t.in).
		WithOutput(t.out)

	err := form.RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, context.Canceled) {
		return ErrCanceled
	}
	return err
}
