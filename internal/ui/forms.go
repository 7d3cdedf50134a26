package ui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"

	"github.com/faizmokh/jam/internal/ledger"
	"github.com/faizmokh/jam/internal/tracker"
)

// formInput holds the values a form writes into. The model keeps a pointer
// so copies of the model share it.
type formInput struct {
	hours       string
	description string
}

func formKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel"))
	return km
}

func questionInput(q tracker.Question, value *string) *huh.Input {
	return huh.NewInput().
		Title(q.Title).
		Placeholder(q.Placeholder).
		Value(value)
}

// validateHours keeps the manual entry form on the hours field until it holds
// a number.
func validateHours(s string) error {
	_, err := ledger.ParseHours(s)
	return err
}

func hoursInput(value *string) *huh.Input {
	return questionInput(tracker.HoursQuestion, value).Validate(validateHours)
}

func descriptionForm(in *formInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(questionInput(tracker.DescriptionQuestion, &in.description)),
	).WithKeyMap(formKeyMap()).WithShowHelp(false)
}

func manualEntryForm(in *formInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(hoursInput(&in.hours)),
		huh.NewGroup(questionInput(tracker.DescriptionQuestion, &in.description)),
	).WithKeyMap(formKeyMap()).WithShowHelp(false)
}

// FormPrompter asks each question with a standalone huh form. It is the
// prompter used outside the TUI.
type FormPrompter struct{}

// Prompt runs one input form. Esc or ctrl+c reports a cancel.
func (FormPrompter) Prompt(ctx context.Context, q tracker.Question) (string, bool, error) {
	var value string
	form := huh.NewForm(huh.NewGroup(questionInput(q, &value))).
		WithKeyMap(formKeyMap()).
		WithShowHelp(false)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}
