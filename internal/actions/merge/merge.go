// Package merge implements the guided merge flow: pick a source branch,
// preview what the merge will do, confirm, run it, and walk the operator
// through conflicts or an AI-suggested merge message when asked for one.
package merge

import (
	"context"
	"errors"
	"fmt"

	gitwizerrors "gitwiz.dev/gitwiz/internal/errors"
	"gitwiz.dev/gitwiz/internal/git"
	"gitwiz.dev/gitwiz/internal/notify"
	"gitwiz.dev/gitwiz/internal/runtime"
	"gitwiz.dev/gitwiz/internal/tui"
)

// Options contains options for the merge command.
type Options struct {
	// Source is the branch to merge into the current branch. Empty means
	// prompt with a branch picker.
	Source string
	// UseAI requests an AI-suggested merge commit message.
	UseAI bool
	// Message is an explicit merge commit message. It wins over UseAI.
	Message string
}

// Action performs the merge operation.
func Action(ctx context.Context, rc *runtime.Context, opts Options) error {
	splog := rc.Splog

	target, err := rc.Gateway.CurrentBranch(ctx)
	if err != nil {
		return fmt.Errorf("failed to determine the current branch: %w", err)
	}

	// Merging a branch into itself is a no-op; say so without touching
	// the repository.
	if opts.Source != "" && opts.Source == target {
		splog.Info("%s is already checked out; nothing to merge.", opts.Source)
		return nil
	}

	source, err := selectSource(ctx, rc, opts.Source, target)
	if err != nil {
		if errors.Is(err, gitwizerrors.ErrNothingToMerge) {
			splog.Info("No other branches to merge into %s.", target)
			return nil
		}
		return err
	}

	for _, name := range []string{source, target} {
		exists, err := rc.Gateway.BranchExists(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to verify branch %s: %w", name, err)
		}
		if !exists {
			return gitwizerrors.NewBranchNotFoundError(name)
		}
	}

	dirty, err := rc.Gateway.HasUncommittedChanges(ctx)
	if err != nil {
		return fmt.Errorf("failed to check working tree state: %w", err)
	}
	if dirty {
		splog.Warn("You have uncommitted changes; a merge may clobber them.")
		proceed, err := rc.Prompter.Confirm("Continue anyway?", false)
		if err != nil {
			return err
		}
		if !proceed {
			splog.Info("Merge cancelled.")
			return nil
		}
	}

	plan, err := BuildPlan(ctx, rc, source, target)
	if err != nil {
		return err
	}
	splog.Page(FormatPlan(plan))

	confirmed, err := rc.Prompter.Confirm(fmt.Sprintf("Merge %s into %s?", source, target), false)
	if err != nil {
		return err
	}
	if !confirmed {
		splog.Info("Merge cancelled.")
		return nil
	}

	return execute(ctx, rc, opts, source, target)
}

// selectSource resolves the branch to merge. A requested branch is taken
// as-is; otherwise every branch except the target is offered in a
// filterable picker.
func selectSource(ctx context.Context, rc *runtime.Context, requested, target string) (string, error) {
	if requested != "" {
		return requested, nil
	}

	branches, err := rc.Gateway.Branches(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list branches: %w", err)
	}

	var choices []tui.BranchChoice
	for _, branch := range branches {
		if branch.Name == target {
			continue
		}
		display := branch.Name
		if branch.IsRemoteTracking {
			display += tui.ColorDim(" (remote)")
		}
		choices = append(choices, tui.BranchChoice{Display: display, Value: branch.Name})
	}
	if len(choices) == 0 {
		return "", gitwizerrors.ErrNothingToMerge
	}

	return rc.Prompter.SelectBranch("Which branch do you want to merge in?", choices, 0)
}

// execute runs the merge and dispatches on how git reports it ended.
func execute(ctx context.Context, rc *runtime.Context, opts Options, source, target string) error {
	splog := rc.Splog

	// With an AI message requested, hold the merge commit open so the
	// suggestion can become its message. An explicit message wins.
	withholdCommit := opts.UseAI && opts.Message == ""

	var args []string
	switch {
	case opts.Message != "":
		args = []string{"merge", "-m", opts.Message, source}
	case withholdCommit:
		args = []string{"merge", "--no-commit", source}
	default:
		args = []string{"merge", "--no-edit", source}
	}

	result, err := rc.Git.Run(ctx, args...)
	if err != nil {
		return err
	}

	switch git.ClassifyMerge(result) {
	case git.MergeUpToDate:
		splog.Info("%s is already up to date with %s.", target, source)
		return nil

	case git.MergeFastForward:
		// Fast-forwards create no merge commit, so there is no message
		// to generate even under --no-commit.
		splog.Info("Fast-forwarded %s to %s.", target, source)
		notify.Completed(fmt.Sprintf("Merged %s into %s", source, target))
		return nil

	case git.MergeConflict:
		return handleConflicts(ctx, rc, source, target)

	case git.MergeStopped:
		if withholdCommit {
			return finishWithMessage(ctx, rc, source, target)
		}
		// Stopped without --no-commit means something like the user's
		// merge.commit=false config held the commit open; complete it
		// with git's default message.
		return commitDefault(ctx, rc, source, target)

	case git.MergeMade:
		splog.Info("Merged %s into %s.", source, target)
		notify.Completed(fmt.Sprintf("Merged %s into %s", source, target))
		return nil

	default:
		return gitwizerrors.NewGitCommandError("git", args, result.Stdout, result.Stderr, nil)
	}
}

// commitDefault completes a stopped merge with git's own default message.
func commitDefault(ctx context.Context, rc *runtime.Context, source, target string) error {
	result, err := rc.Git.Run(ctx, "commit", "--no-edit")
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return gitwizerrors.NewGitCommandError("git", []string{"commit", "--no-edit"}, result.Stdout, result.Stderr, nil)
	}
	rc.Splog.Info("Merged %s into %s.", source, target)
	notify.Completed(fmt.Sprintf("Merged %s into %s", source, target))
	return nil
}

// abortMerge rolls the merge back and reports doneMessage on success.
func abortMerge(ctx context.Context, rc *runtime.Context, doneMessage string) error {
	result, err := rc.Git.Run(ctx, "merge", "--abort")
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return gitwizerrors.NewGitCommandError("git", []string{"merge", "--abort"}, result.Stdout, result.Stderr, nil)
	}
	rc.Splog.Info(doneMessage)
	return nil
}
