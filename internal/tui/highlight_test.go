package tui

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func TestHighlightDiff(t *testing.T) {
	t.Run("empty input stays empty", func(t *testing.T) {
		require.Equal(t, "", HighlightDiff(""))
	})

	t.Run("content survives highlighting", func(t *testing.T) {
		diff := "--- a/main.go\n+++ b/main.go\n@@ -1,2 +1,2 @@\n-old line\n+new line\n"

		highlighted := HighlightDiff(diff)
		require.NotEmpty(t, highlighted)

		// Only color codes may be added, never text changes
		require.Equal(t, diff, ansiPattern.ReplaceAllString(highlighted, ""))
	})
}
