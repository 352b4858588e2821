package merge

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gitwizerrors "gitwiz.dev/gitwiz/internal/errors"
	"gitwiz.dev/gitwiz/internal/notify"
	"gitwiz.dev/gitwiz/internal/runtime"
	"gitwiz.dev/gitwiz/internal/tui"
)

// SuggestionDecision is what the operator chose to do with a suggested
// merge message.
type SuggestionDecision int

const (
	// SuggestionAccept commits with the suggestion as-is.
	SuggestionAccept SuggestionDecision = iota
	// SuggestionEdit opens the suggestion in an editor first.
	SuggestionEdit
	// SuggestionCancel aborts the merge.
	SuggestionCancel
)

// finishWithMessage completes a merge held open by --no-commit: generate
// a message, let the operator accept, edit, or cancel, then commit.
func finishWithMessage(ctx context.Context, rc *runtime.Context, source, target string) error {
	splog := rc.Splog

	suggestion, err := suggestMessage(ctx, rc, source, target)
	if err != nil {
		if errors.Is(err, gitwizerrors.ErrOperationCancelled) {
			splog.Warn("The merge is staged but not committed.")
			splog.Tip("Run 'git commit' to complete it or 'git merge --abort' to undo it.")
			return err
		}
		// A failed provider must not strand a staged merge; fall back to
		// git's default message.
		splog.Warn("Message generation failed: %v", err)
		splog.Info("Committing with git's default merge message instead.")
		return commitDefault(ctx, rc, source, target)
	}

	for {
		splog.Info("Suggested merge message:")
		splog.Newline()
		splog.Info("  %s", tui.ColorCyan(suggestion))
		splog.Newline()

		decision, err := promptSuggestionDecision(rc)
		if err != nil {
			return err
		}

		switch decision {
		case SuggestionAccept:
			return commitWithMessage(ctx, rc, suggestion, source, target)

		case SuggestionEdit:
			edited, err := tui.OpenEditor(suggestion+"\n", "gitwiz-merge-msg-*.txt")
			if err != nil {
				return err
			}
			edited = strings.TrimSpace(edited)
			if edited == "" {
				splog.Warn("The edited message is empty; keeping the suggestion.")
				continue
			}
			return commitWithMessage(ctx, rc, edited, source, target)

		case SuggestionCancel:
			return abortMerge(ctx, rc, "Merge cancelled; your branch is unchanged.")
		}
	}
}

// suggestMessage asks the configured provider for a merge message built
// from the combined diff and the subjects of the commits being merged.
func suggestMessage(ctx context.Context, rc *runtime.Context, source, target string) (string, error) {
	client, err := rc.AIClient()
	if err != nil {
		return "", err
	}

	diffResult, err := rc.Git.Run(ctx, "diff", target+".."+source)
	if err != nil {
		return "", err
	}
	if diffResult.ExitCode != 0 {
		return "", gitwizerrors.NewGitCommandError("git", []string{"diff"}, diffResult.Stdout, diffResult.Stderr, nil)
	}

	logResult, err := rc.Git.Run(ctx, "log", "--format=%s", target+".."+source)
	if err != nil {
		return "", err
	}
	var subjects []string
	for _, line := range strings.Split(logResult.Stdout, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			subjects = append(subjects, line)
		}
	}

	return client.GenerateMergeMessage(ctx, source, target, diffResult.Stdout, subjects)
}

func promptSuggestionDecision(rc *runtime.Context) (SuggestionDecision, error) {
	options := []tui.SelectOption{
		{Label: "Accept the message", Value: "accept"},
		{Label: "Edit the message", Value: "edit"},
		{Label: "Cancel the merge", Value: "cancel"},
	}

	value, err := rc.Prompter.Select("Use this message?", options, 0)
	if err != nil {
		return SuggestionCancel, err
	}

	switch value {
	case "edit":
		return SuggestionEdit, nil
	case "cancel":
		return SuggestionCancel, nil
	default:
		return SuggestionAccept, nil
	}
}

// commitWithMessage completes the staged merge with message.
func commitWithMessage(ctx context.Context, rc *runtime.Context, message, source, target string) error {
	result, err := rc.Git.Run(ctx, "commit", "-m", message)
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return gitwizerrors.NewGitCommandError("git", []string{"commit"}, result.Stdout, result.Stderr, nil)
	}
	rc.Splog.Info("Merged %s into %s.", source, target)
	notify.Completed(fmt.Sprintf("Merged %s into %s", source, target))
	return nil
}
