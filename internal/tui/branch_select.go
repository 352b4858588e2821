package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	gitwizerrors "gitwiz.dev/gitwiz/internal/errors"
)

// BranchChoice represents a branch option in a selection prompt
type BranchChoice struct {
	Display string // What to show (may include ahead/behind decoration)
	Value   string // Actual branch name
}

// BranchSelectModel is a branch selection prompt model with filtering
type BranchSelectModel struct {
	Choices  []BranchChoice
	Filtered []BranchChoice
	Cursor   int
	Selected string
	Done     bool
	Err      error
	Message  string

	filter textinput.Model
}

// NewBranchSelectModel creates a branch selection model with the filter
// input focused and the cursor on initialIndex.
func NewBranchSelectModel(message string, choices []BranchChoice, initialIndex int) BranchSelectModel {
	filter := textinput.New()
	filter.Prompt = "Filter: "
	filter.Placeholder = "type to filter"
	filter.Focus()

	m := BranchSelectModel{
		Choices: choices,
		Cursor:  initialIndex,
		Message: message,
		filter:  filter,
	}
	m.updateFiltered()

	if m.Cursor < 0 || m.Cursor >= len(m.Filtered) {
		m.Cursor = 0
	}
	return m
}

// Init initializes the bubbletea model
func (m BranchSelectModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles message updates for the bubbletea model
func (m BranchSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			if len(m.Filtered) > 0 && m.Cursor >= 0 && m.Cursor < len(m.Filtered) {
				m.Selected = m.Filtered[m.Cursor].Value
				m.Done = true
				return m, tea.Quit
			}
			return m, nil
		case tea.KeyCtrlC, tea.KeyEsc:
			m.Err = gitwizerrors.ErrOperationCancelled
			m.Done = true
			return m, tea.Quit
		case tea.KeyUp:
			if m.Cursor > 0 {
				m.Cursor--
			} else {
				m.Cursor = len(m.Filtered) - 1
			}
			return m, nil
		case tea.KeyDown:
			if m.Cursor < len(m.Filtered)-1 {
				m.Cursor++
			} else {
				m.Cursor = 0
			}
			return m, nil
		}
	}

	// Everything else edits the filter input
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.updateFiltered()
	if m.Cursor >= len(m.Filtered) {
		m.Cursor = len(m.Filtered) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	return m, cmd
}

func (m *BranchSelectModel) updateFiltered() {
	filter := m.filter.Value()
	if filter == "" {
		m.Filtered = m.Choices
		return
	}

	filterLower := strings.ToLower(filter)
	m.Filtered = []BranchChoice{}
	for _, choice := range m.Choices {
		if strings.Contains(strings.ToLower(choice.Display), filterLower) ||
			strings.Contains(strings.ToLower(choice.Value), filterLower) {
			m.Filtered = append(m.Filtered, choice)
		}
	}
}

// View renders the TUI
func (m BranchSelectModel) View() string {
	if m.Done {
		return ""
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(m.Message))
	b.WriteString("\n")
	b.WriteString(m.filter.View())
	b.WriteString("\n\n")

	if len(m.Filtered) == 0 {
		b.WriteString("No branches match the filter.\n")
	} else {
		for i, choice := range m.Filtered {
			cursor := " "
			if i == m.Cursor {
				cursor = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(">")
			}
			b.WriteString(fmt.Sprintf("%s %s\n", cursor, choice.Display))
		}
	}

	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render("\n(Press Enter to select, Ctrl+C to cancel, type to filter)"))

	styleObj := lipgloss.NewStyle().Margin(1, 0)
	return styleObj.Render(b.String())
}

// PromptBranchSelection prompts the user to select a branch
func PromptBranchSelection(message string, choices []BranchChoice, initialIndex int) (string, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return "", err
	}

	if len(choices) == 0 {
		return "", fmt.Errorf("no branches available")
	}

	m := NewBranchSelectModel(message, choices, initialIndex)

	p := tea.NewProgram(m, tea.WithInput(os.Stdin), tea.WithOutput(os.Stdout))
	model, err := p.Run()
	if err != nil {
		return "", err
	}

	if finalModel, ok := model.(BranchSelectModel); ok {
		if finalModel.Err != nil {
			return "", finalModel.Err
		}
		return finalModel.Selected, nil
	}

	return "", fmt.Errorf("unexpected model type")
}
