// Package commit implements the guided commit flow: generate a message
// for the staged changes, let the operator accept, edit, or cancel, then
// commit.
package commit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gitwizerrors "gitwiz.dev/gitwiz/internal/errors"
	"gitwiz.dev/gitwiz/internal/runtime"
	"gitwiz.dev/gitwiz/internal/tui"
)

// Options contains options for the commit command.
type Options struct {
	// Message is an explicit commit message; it bypasses the provider
	// entirely.
	Message string
}

// Action performs the commit operation.
func Action(ctx context.Context, rc *runtime.Context, opts Options) error {
	splog := rc.Splog

	staged, err := hasStagedChanges(ctx, rc)
	if err != nil {
		return err
	}
	if !staged {
		splog.Error("Nothing is staged.")
		splog.Tip("Stage your changes with 'git add', then run 'gitwiz commit' again.")
		return fmt.Errorf("no staged changes")
	}

	if opts.Message != "" {
		return commitWith(ctx, rc, opts.Message)
	}

	suggestion, err := suggestMessage(ctx, rc)
	if err != nil {
		if errors.Is(err, gitwizerrors.ErrNoProviderConfigured) {
			splog.Error("No AI provider is configured.")
			splog.Tip("Set one up with 'gitwiz config set', or pass a message with 'gitwiz commit -m \"...\"'.")
			return err
		}
		if errors.Is(err, gitwizerrors.ErrOperationCancelled) {
			return err
		}
		splog.Warn("Message generation failed: %v", err)
		splog.Tip("Pass a message directly with 'gitwiz commit -m \"...\"'.")
		return err
	}

	for {
		splog.Info("Suggested commit message:")
		splog.Newline()
		splog.Info("  %s", tui.ColorCyan(suggestion))
		splog.Newline()

		decision, err := promptMessageDecision(rc)
		if err != nil {
			return err
		}

		switch decision {
		case "accept":
			return commitWith(ctx, rc, suggestion)

		case "edit":
			edited, err := tui.OpenEditor(suggestion+"\n", "gitwiz-commit-msg-*.txt")
			if err != nil {
				return err
			}
			edited = strings.TrimSpace(edited)
			if edited == "" {
				splog.Warn("The edited message is empty; keeping the suggestion.")
				continue
			}
			return commitWith(ctx, rc, edited)

		default:
			splog.Info("Commit cancelled; your staged changes are untouched.")
			return nil
		}
	}
}

// hasStagedChanges reports whether the index differs from HEAD.
// `diff --cached --quiet` exits 1 exactly when staged changes exist.
func hasStagedChanges(ctx context.Context, rc *runtime.Context) (bool, error) {
	result, err := rc.Git.Run(ctx, "diff", "--cached", "--quiet")
	if err != nil {
		return false, err
	}
	return result.ExitCode != 0, nil
}

// suggestMessage asks the configured provider for a commit message built
// from the staged diff.
func suggestMessage(ctx context.Context, rc *runtime.Context) (string, error) {
	client, err := rc.AIClient()
	if err != nil {
		return "", err
	}

	result, err := rc.Git.Run(ctx, "diff", "--cached")
	if err != nil {
		return "", err
	}
	if result.ExitCode != 0 {
		return "", gitwizerrors.NewGitCommandError("git", []string{"diff", "--cached"}, result.Stdout, result.Stderr, nil)
	}

	return client.GenerateCommitMessage(ctx, result.Stdout)
}

func promptMessageDecision(rc *runtime.Context) (string, error) {
	return rc.Prompter.Select("Use this message?", []tui.SelectOption{
		{Label: "Accept the message", Value: "accept"},
		{Label: "Edit the message", Value: "edit"},
		{Label: "Cancel the commit", Value: "cancel"},
	}, 0)
}

// commitWith records the staged changes under message.
func commitWith(ctx context.Context, rc *runtime.Context, message string) error {
	result, err := rc.Git.Run(ctx, "commit", "-m", message)
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return gitwizerrors.NewGitCommandError("git", []string{"commit"}, result.Stdout, result.Stderr, nil)
	}
	rc.Splog.Info("Committed: %s", message)
	return nil
}
