package merge

import (
	"context"

	"gitwiz.dev/gitwiz/internal/runtime"
	"gitwiz.dev/gitwiz/internal/tui"
)

// ConflictDecision is what the operator chose to do about a conflicted
// merge.
type ConflictDecision int

const (
	// ConflictAbort rolls the merge back.
	ConflictAbort ConflictDecision = iota
	// ConflictShow displays the conflicting hunks, then asks again.
	ConflictShow
	// ConflictManual leaves the merge in place for hand resolution.
	ConflictManual
)

// conflictPreviewLimit caps how much conflict diff is paged inline.
const conflictPreviewLimit = 1000

// handleConflicts reports the conflicted paths and loops on the
// operator's decision until the merge is aborted or handed over for
// manual resolution.
func handleConflicts(ctx context.Context, rc *runtime.Context, source, target string) error {
	splog := rc.Splog

	files, err := rc.Gateway.ConflictingFiles(ctx)
	if err != nil {
		return err
	}

	splog.Warn("Merging %s into %s hit %d conflicting file(s):", source, target, len(files))
	for _, file := range files {
		splog.Info("  %s", tui.ColorRed(file))
	}
	splog.Newline()

	for {
		decision, err := promptConflictDecision(rc)
		if err != nil {
			return err
		}

		switch decision {
		case ConflictAbort:
			return abortMerge(ctx, rc, "Merge aborted; your branch is back to its pre-merge state.")

		case ConflictShow:
			if err := showConflicts(ctx, rc); err != nil {
				return err
			}
			// Fall through to ask again with the conflicts in view.

		case ConflictManual:
			splog.Info("Resolve the conflicts by hand:")
			splog.Info("  1. Edit the files above and remove the conflict markers")
			splog.Info("  2. Stage the results with 'git add <file>'")
			splog.Info("  3. Complete the merge with 'git commit'")
			splog.Tip("Changed your mind? 'git merge --abort' restores the pre-merge state.")
			return nil
		}
	}
}

func promptConflictDecision(rc *runtime.Context) (ConflictDecision, error) {
	options := []tui.SelectOption{
		{Label: "Abort the merge", Value: "abort"},
		{Label: "Show the conflicts", Value: "show"},
		{Label: "Resolve manually", Value: "manual"},
	}

	value, err := rc.Prompter.Select("How do you want to handle the conflicts?", options, 0)
	if err != nil {
		return ConflictAbort, err
	}

	switch value {
	case "show":
		return ConflictShow, nil
	case "manual":
		return ConflictManual, nil
	default:
		return ConflictAbort, nil
	}
}

// showConflicts pages the conflicting hunks, truncated and highlighted.
func showConflicts(ctx context.Context, rc *runtime.Context) error {
	result, err := rc.Git.Run(ctx, "diff")
	if err != nil {
		return err
	}

	diff := result.Stdout
	truncated := false
	if len(diff) > conflictPreviewLimit {
		diff = diff[:conflictPreviewLimit]
		truncated = true
	}

	rc.Splog.Page(tui.HighlightDiff(diff))
	if truncated {
		rc.Splog.Info("(output truncated; run 'git diff' for the rest)")
	}
	rc.Splog.Newline()
	return nil
}
