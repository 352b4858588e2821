package tui

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
)

// ErrInteractiveDisabled is returned when interactive prompts are disabled via GITWIZ_TEST_NO_INTERACTIVE
var ErrInteractiveDisabled = fmt.Errorf("interactive prompts are disabled (GITWIZ_TEST_NO_INTERACTIVE is set)")

// ErrNotTerminal is returned when a prompt is requested but stdin/stdout is not a terminal
var ErrNotTerminal = fmt.Errorf("interactive prompts require a terminal")

// checkInteractiveAllowed returns an error if interactive mode is disabled for testing
// or if the process is not attached to a terminal
func checkInteractiveAllowed() error {
	if os.Getenv("GITWIZ_TEST_NO_INTERACTIVE") != "" {
		return ErrInteractiveDisabled
	}
	if !IsTTY() {
		return ErrNotTerminal
	}
	return nil
}

// IsTTY returns true if we can use a TTY for interactive prompts
func IsTTY() bool {
	return (isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())) &&
		(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))
}

// Prompter asks the operator questions. Flows depend on this interface so
// tests can script answers without a terminal.
type Prompter interface {
	// Confirm asks a yes/no question and returns the choice
	Confirm(message string, defaultYes bool) (bool, error)

	// Input asks for a single line of text
	Input(message, defaultValue string) (string, error)

	// Password asks for a secret without echoing it
	Password(message string) (string, error)

	// Select asks the operator to pick one of the options and returns its value
	Select(message string, options []SelectOption, defaultIndex int) (string, error)

	// SelectBranch shows the filterable branch picker and returns the chosen branch name
	SelectBranch(message string, choices []BranchChoice, initialIndex int) (string, error)
}

// TerminalPrompter implements Prompter against the real terminal
type TerminalPrompter struct{}

// NewTerminalPrompter creates a prompter backed by stdin/stdout
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{}
}

var _ Prompter = (*TerminalPrompter)(nil)
