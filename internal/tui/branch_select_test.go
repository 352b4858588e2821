package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	gitwizerrors "gitwiz.dev/gitwiz/internal/errors"
)

func newBranchSelectModel() BranchSelectModel {
	return NewBranchSelectModel("Which branch?", []BranchChoice{
		{Display: "main (current)", Value: "main"},
		{Display: "feature/login", Value: "feature/login"},
		{Display: "feature/search", Value: "feature/search"},
		{Display: "hotfix", Value: "hotfix"},
	}, 0)
}

func typeRunes(t *testing.T, m BranchSelectModel, runes string) BranchSelectModel {
	t.Helper()
	for _, r := range runes {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		var ok bool
		m, ok = updated.(BranchSelectModel)
		require.True(t, ok)
	}
	return m
}

func TestBranchSelectModel(t *testing.T) {
	t.Run("typing filters by branch name", func(t *testing.T) {
		m := newBranchSelectModel()
		m = typeRunes(t, m, "feature")

		require.Len(t, m.Filtered, 2)
		require.Equal(t, "feature/login", m.Filtered[0].Value)
		require.Equal(t, "feature/search", m.Filtered[1].Value)
	})

	t.Run("filter matches the display text too", func(t *testing.T) {
		m := newBranchSelectModel()
		m = typeRunes(t, m, "current")

		require.Len(t, m.Filtered, 1)
		require.Equal(t, "main", m.Filtered[0].Value)
	})

	t.Run("filter is case insensitive", func(t *testing.T) {
		m := newBranchSelectModel()
		m = typeRunes(t, m, "HOTFIX")

		require.Len(t, m.Filtered, 1)
		require.Equal(t, "hotfix", m.Filtered[0].Value)
	})

	t.Run("backspace widens the filter again", func(t *testing.T) {
		m := newBranchSelectModel()
		m = typeRunes(t, m, "hot")
		require.Len(t, m.Filtered, 1)

		for i := 0; i < 3; i++ {
			updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
			m = updated.(BranchSelectModel)
		}
		require.Len(t, m.Filtered, 4)
	})

	t.Run("cursor is clamped when the filter shrinks the list", func(t *testing.T) {
		m := newBranchSelectModel()
		m.Cursor = 3

		m = typeRunes(t, m, "main")
		require.Len(t, m.Filtered, 1)
		require.Equal(t, 0, m.Cursor)
	})

	t.Run("enter selects the branch under the cursor", func(t *testing.T) {
		m := newBranchSelectModel()
		m = typeRunes(t, m, "feature")

		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m = updated.(BranchSelectModel)
		updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		m = updated.(BranchSelectModel)

		require.True(t, m.Done)
		require.Equal(t, "feature/search", m.Selected)
		require.NoError(t, m.Err)
	})

	t.Run("enter with no matches does nothing", func(t *testing.T) {
		m := newBranchSelectModel()
		m = typeRunes(t, m, "nomatch")
		require.Empty(t, m.Filtered)

		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		m = updated.(BranchSelectModel)
		require.False(t, m.Done)
	})

	t.Run("arrow keys wrap around", func(t *testing.T) {
		m := newBranchSelectModel()

		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
		m = updated.(BranchSelectModel)
		require.Equal(t, 3, m.Cursor)

		updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m = updated.(BranchSelectModel)
		require.Equal(t, 0, m.Cursor)
	})

	t.Run("escape cancels", func(t *testing.T) {
		m := newBranchSelectModel()

		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		m = updated.(BranchSelectModel)

		require.True(t, m.Done)
		require.ErrorIs(t, m.Err, gitwizerrors.ErrOperationCancelled)
	})
}
