package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCleanSubjectLine(t *testing.T) {
	t.Run("passes a clean subject through", func(t *testing.T) {
		require.Equal(t, "feat: add branch picker", CleanSubjectLine("feat: add branch picker"))
	})

	t.Run("strips code fences", func(t *testing.T) {
		require.Equal(t, "fix: close file handles", CleanSubjectLine("```\nfix: close file handles\n```"))
		require.Equal(t, "fix: close file handles", CleanSubjectLine("```text\nfix: close file handles\n```"))
	})

	t.Run("strips wrapping quotes and backticks", func(t *testing.T) {
		require.Equal(t, "chore: bump deps", CleanSubjectLine(`"chore: bump deps"`))
		require.Equal(t, "chore: bump deps", CleanSubjectLine("`chore: bump deps`"))
	})

	t.Run("keeps only the first line", func(t *testing.T) {
		got := CleanSubjectLine("feat: add picker\n\nThis adds an interactive picker.")
		require.Equal(t, "feat: add picker", got)
	})

	t.Run("truncates while keeping the type prefix", func(t *testing.T) {
		long := "refactor: " + strings.Repeat("rework the branch listing layer ", 5)
		got := CleanSubjectLine(long)
		require.LessOrEqual(t, len(got), 72)
		require.True(t, strings.HasPrefix(got, "refactor: "))
		require.True(t, strings.HasSuffix(got, "..."))
	})

	t.Run("truncates subjects without a type prefix", func(t *testing.T) {
		long := strings.Repeat("a very long subject line without any prefix ", 4)
		got := CleanSubjectLine(long)
		require.Equal(t, 72, len(got))
		require.True(t, strings.HasSuffix(got, "..."))
	})
}

func TestCleanDescription(t *testing.T) {
	t.Run("keeps multi-line prose intact", func(t *testing.T) {
		text := "A small CLI.\nIt wraps git."
		require.Equal(t, text, CleanDescription(text))
	})

	t.Run("strips fencing", func(t *testing.T) {
		require.Equal(t, "A small CLI.", CleanDescription("```\nA small CLI.\n```"))
	})
}

func TestTruncateDiff(t *testing.T) {
	t.Run("short diffs pass through", func(t *testing.T) {
		require.Equal(t, "+one line", truncateDiff("+one line"))
	})

	t.Run("long diffs are bounded and marked", func(t *testing.T) {
		long := strings.Repeat("x", maxDiffLength+500)
		got := truncateDiff(long)
		require.Len(t, got, maxDiffLength+len("\n... (diff truncated)"))
		require.True(t, strings.HasSuffix(got, "(diff truncated)"))
	})
}
