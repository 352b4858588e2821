package tui

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	gitwizerrors "gitwiz.dev/gitwiz/internal/errors"
)

// cancelOrError maps a Ctrl+C interrupt from a prompt to the cancellation
// sentinel so callers can treat it like any other cancelled operation.
func cancelOrError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, terminal.InterruptErr) {
		return gitwizerrors.ErrOperationCancelled
	}
	return err
}

// Confirm asks a yes/no question and returns the choice
func (p *TerminalPrompter) Confirm(message string, defaultYes bool) (bool, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return false, err
	}

	answer := defaultYes
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultYes,
	}
	if err := survey.AskOne(prompt, &answer); err != nil {
		return false, cancelOrError(err)
	}
	return answer, nil
}

// Input asks for a single line of text
func (p *TerminalPrompter) Input(message, defaultValue string) (string, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return "", err
	}

	var answer string
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &answer); err != nil {
		return "", cancelOrError(err)
	}
	return answer, nil
}

// Password asks for a secret without echoing it
func (p *TerminalPrompter) Password(message string) (string, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return "", err
	}

	var answer string
	prompt := &survey.Password{
		Message: message,
	}
	if err := survey.AskOne(prompt, &answer); err != nil {
		return "", cancelOrError(err)
	}
	return answer, nil
}

// SelectOption represents an option in a selection prompt
type SelectOption struct {
	Label string // What to show
	Value string // Value to return
}

// Select asks the operator to pick one of the options and returns its value
func (p *TerminalPrompter) Select(message string, options []SelectOption, defaultIndex int) (string, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return "", err
	}

	if len(options) == 0 {
		return "", fmt.Errorf("no options provided")
	}
	if defaultIndex < 0 || defaultIndex >= len(options) {
		defaultIndex = 0
	}

	labels := make([]string, 0, len(options))
	byLabel := make(map[string]string, len(options))
	for _, opt := range options {
		labels = append(labels, opt.Label)
		byLabel[opt.Label] = opt.Value
	}

	var chosen string
	prompt := &survey.Select{
		Message: message,
		Options: labels,
		Default: labels[defaultIndex],
	}
	if err := survey.AskOne(prompt, &chosen); err != nil {
		return "", cancelOrError(err)
	}
	return byLabel[chosen], nil
}

// SelectBranch shows the filterable branch picker and returns the chosen branch name
func (p *TerminalPrompter) SelectBranch(message string, choices []BranchChoice, initialIndex int) (string, error) {
	return PromptBranchSelection(message, choices, initialIndex)
}
