// Package sync implements the sync flow: make sure a reachable origin
// exists (guiding the operator through creation when it does not), pull
// with rebase, push the current branch, and offer to clean up local
// branches that are fully merged.
package sync

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gitwizerrors "gitwiz.dev/gitwiz/internal/errors"
	"gitwiz.dev/gitwiz/internal/execx"
	"gitwiz.dev/gitwiz/internal/git"
	"gitwiz.dev/gitwiz/internal/notify"
	"gitwiz.dev/gitwiz/internal/runtime"
)

// Options contains options for the sync command.
type Options struct {
	// KeepBranches skips the merged-branch cleanup phase.
	KeepBranches bool
}

// errRemoteDeclined signals that the operator chose not to set up a
// remote; sync then has nothing further to do.
var errRemoteDeclined = errors.New("remote setup declined")

// Action performs the sync operation.
func Action(ctx context.Context, rc *runtime.Context, opts Options) error {
	splog := rc.Splog

	dirty, err := rc.Gateway.HasUncommittedChanges(ctx)
	if err != nil {
		return fmt.Errorf("failed to check working tree state: %w", err)
	}
	if dirty {
		splog.Error("You have uncommitted changes; sync would tangle them up with pulled work.")
		splog.Tip("Commit with 'gitwiz commit' or stash with 'git stash', then sync again.")
		return fmt.Errorf("uncommitted changes present")
	}

	hasCommit, err := rc.Gateway.HasAnyCommit(ctx)
	if err != nil {
		return fmt.Errorf("failed to check repository history: %w", err)
	}
	if !hasCommit {
		splog.Error("This repository has no commits yet; there is nothing to sync.")
		splog.Tip("Make a first commit, then run 'gitwiz sync' again.")
		return fmt.Errorf("repository has no commits")
	}

	branch, err := rc.Gateway.CurrentBranch(ctx)
	if err != nil {
		return fmt.Errorf("failed to determine the current branch: %w", err)
	}

	if err := ensureRemote(ctx, rc); err != nil {
		if errors.Is(err, errRemoteDeclined) {
			splog.Info("Sync needs a remote; stopping here.")
			return nil
		}
		return err
	}

	if err := pullBranch(ctx, rc, branch); err != nil {
		return err
	}
	if err := pushBranch(ctx, rc, branch); err != nil {
		return err
	}

	if opts.KeepBranches {
		splog.Debug("branch cleanup skipped (--keep-branches)")
	} else if err := cleanupMergedBranches(ctx, rc, branch); err != nil {
		return err
	}

	splog.Info("%s is in sync with origin.", branch)
	notify.Completed(fmt.Sprintf("Synced %s with origin", branch))
	return nil
}

// pullBranch rebases the current branch on top of its origin
// counterpart. A branch origin has never seen is fine; the push creates
// it.
func pullBranch(ctx context.Context, rc *runtime.Context, branch string) error {
	args := []string{"pull", "--rebase", "origin", branch}
	result, err := rc.Git.Run(ctx, args...)
	if err != nil {
		return err
	}

	switch git.ClassifyPull(result) {
	case git.PullDone:
		rc.Splog.Info("Pulled the latest %s from origin.", branch)
		return nil
	case git.PullNoUpstream:
		rc.Splog.Info("%s does not exist on origin yet; the push will create it.", branch)
		return nil
	default:
		return gitwizerrors.NewGitCommandError("git", args, result.Stdout, result.Stderr, nil)
	}
}

// pushBranch pushes the current branch, setting the upstream. A remote
// that vanished since the reachability check gets one more chance at the
// relink flow before the push is retried.
func pushBranch(ctx context.Context, rc *runtime.Context, branch string) error {
	splog := rc.Splog
	args := []string{"push", "-u", "origin", branch}

	for {
		result, err := rc.Git.RunTimeout(ctx, execx.PushTimeout, args...)
		if err != nil {
			return err
		}

		switch git.ClassifyPush(result) {
		case git.PushDone:
			splog.Info("Pushed %s to origin.", branch)
			return nil

		case git.PushRemoteMissing:
			splog.Warn("The remote repository behind origin no longer exists.")
			relinked, err := relinkRemote(ctx, rc)
			if err != nil {
				return err
			}
			if !relinked {
				return gitwizerrors.NewGitCommandError("git", args, result.Stdout, result.Stderr, nil)
			}
			continue

		case git.PushRejected:
			splog.Error("origin rejected the push:")
			splog.Page(strings.TrimSpace(result.Stdout + "\n" + result.Stderr))
			splog.Tip("Someone else may have pushed first; run 'gitwiz sync' again to pull their work.")
			return gitwizerrors.NewGitCommandError("git", args, result.Stdout, result.Stderr, nil)

		default:
			return gitwizerrors.NewGitCommandError("git", args, result.Stdout, result.Stderr, nil)
		}
	}
}
