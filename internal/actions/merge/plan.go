package merge

import (
	"context"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"gitwiz.dev/gitwiz/internal/runtime"
)

// Plan previews what merging source into target will do, computed
// before anything touches the repository.
type Plan struct {
	Source string
	Target string
	// FastForwardPreview is true when target is an ancestor of source,
	// so git would fast-forward instead of creating a merge commit.
	FastForwardPreview bool
	// AheadCount is how many commits source carries that target does not.
	AheadCount int
}

// BuildPlan inspects branch histories and predicts the merge shape.
func BuildPlan(ctx context.Context, rc *runtime.Context, source, target string) (*Plan, error) {
	fastForward, err := rc.History.IsAncestor(target, source)
	if err != nil {
		return nil, fmt.Errorf("failed to compare branch histories: %w", err)
	}

	ahead, err := rc.Gateway.AheadCount(ctx, target, source)
	if err != nil {
		return nil, err
	}

	return &Plan{
		Source:             source,
		Target:             target,
		FastForwardPreview: fastForward,
		AheadCount:         ahead,
	}, nil
}

// FormatPlan renders the plan as an aligned label/value table.
func FormatPlan(plan *Plan) string {
	kind := "merge commit"
	if plan.FastForwardPreview {
		kind = "fast-forward"
	}

	rows := []struct {
		label string
		value string
	}{
		{"Source", plan.Source},
		{"Target", plan.Target},
		{"Kind", kind},
		{"Commits", fmt.Sprintf("%d commit(s) ahead of %s", plan.AheadCount, plan.Target)},
	}

	width := 0
	for _, row := range rows {
		if w := runewidth.StringWidth(row.label); w > width {
			width = w
		}
	}

	var b strings.Builder
	b.WriteString("Merge preview\n\n")
	for _, row := range rows {
		padding := strings.Repeat(" ", width-runewidth.StringWidth(row.label))
		fmt.Fprintf(&b, "  %s%s  %s\n", row.label, padding, row.value)
	}
	return b.String()
}
