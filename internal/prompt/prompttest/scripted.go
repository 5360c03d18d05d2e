// Package prompttest provides a Prompter that replays canned answers.
package prompttest

import (
	"context"
	"fmt"

	"github.com/vburojevic/xsim/internal/prompt"
)

// KeepInitial as an Inputs entry accepts the pre-filled value.
const KeepInitial = "\x00keep"

// Scripted answers prompts from queues. When a queue runs dry the prompt
// behaves as if the user pressed esc.
type Scripted struct {
	Selects      []string   // Choice.Value to pick, one per Select
	MultiSelects [][]string // Choice.Values to pick, one slice per MultiSelect
	Confirms     []bool
	Inputs       []string

	// Recorded interactions.
	Titles        []string
	Offered       [][]prompt.Choice
	InputInitials []string
}

var _ prompt.Prompter = (*Scripted)(nil)

func (s *Scripted) Select(_ context.Context, title string, choices []prompt.Choice) (prompt.Choice, error) {
	s.Titles = append(s.Titles, title)
	s.Offered = append(s.Offered, choices)
	if len(s.Selects) == 0 {
		return prompt.Choice{}, prompt.ErrCanceled
	}
	want := s.Selects[0]
	s.Selects = s.Selects[1:]
	for _, c := range choices {
		if c.Value == want {
			return c, nil
		}
	}
	return prompt.Choice{}, fmt.Errorf("prompttest: %q not offered in %q", want, title)
}

func (s *Scripted) MultiSelect(_ context.Context, title string, choices []prompt.Choice) ([]prompt.Choice, error) {
	s.Titles = append(s.Titles, title)
	s.Offered = append(s.Offered, choices)
	if len(s.MultiSelects) == 0 {
		return nil, prompt.ErrCanceled
	}
	want := make(map[string]bool)
	for _, v := range s.MultiSelects[0] {
		want[v] = true
	}
	s.MultiSelects = s.MultiSelects[1:]

	var picked []prompt.Choice
	for _, c := range choices {
		if want[c.Value] {
			picked = append(picked, c)
		}
	}
	return picked, nil
}

func (s *Scripted) Confirm(_ context.Context, title string, _ bool) (bool, error) {
	s.Titles = append(s.Titles, title)
	if len(s.Confirms) == 0 {
		return false, prompt.ErrCanceled
	}
	ok := s.Confirms[0]
	s.Confirms = s.Confirms[1:]
	return ok, nil
}

func (s *Scripted) Input(_ context.Context, title, initial string) (string, error) {
	s.Titles = append(s.Titles, title)
	s.InputInitials = append(s.InputInitials, initial)
	if len(s.Inputs) == 0 {
		return "", prompt.ErrCanceled
	}
	v := s.Inputs[0]
	s.Inputs = s.Inputs[1:]
	if v == KeepInitial {
		return initial, nil
	}
	return v, nil
}
