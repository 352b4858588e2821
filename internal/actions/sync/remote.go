package sync

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	gitwizerrors "gitwiz.dev/gitwiz/internal/errors"
	"gitwiz.dev/gitwiz/internal/git"
	"gitwiz.dev/gitwiz/internal/hosting"
	"gitwiz.dev/gitwiz/internal/runtime"
	"gitwiz.dev/gitwiz/internal/tui"
)

// ensureRemote guarantees a reachable origin before any pull or push
// runs. An absent remote starts the guided creation flow; a remote whose
// repository was deleted on the host offers unlink-and-recreate.
func ensureRemote(ctx context.Context, rc *runtime.Context) error {
	splog := rc.Splog

	for {
		url, exists, err := rc.Gateway.RemoteURL(ctx, "origin")
		if err != nil {
			return fmt.Errorf("failed to look up the origin remote: %w", err)
		}

		if !exists {
			created, err := createRemote(ctx, rc)
			if err != nil {
				return err
			}
			if !created {
				return errRemoteDeclined
			}
			continue
		}

		probe, err := rc.Git.Run(ctx, "ls-remote", "origin")
		if err != nil {
			return err
		}

		switch git.ClassifyRemoteProbe(probe) {
		case git.RemoteReachable:
			splog.Debug("origin %s is reachable", url)
			return nil

		case git.RemoteMissing:
			splog.Warn("The repository behind origin (%s) no longer exists.", url)
			relinked, err := relinkRemote(ctx, rc)
			if err != nil {
				return err
			}
			if !relinked {
				return fmt.Errorf("remote repository not found: %s", url)
			}
			continue

		default:
			splog.Error("origin (%s) is unreachable:", url)
			splog.Page(strings.TrimSpace(probe.Stdout + "\n" + probe.Stderr))
			splog.Tip("Check your network connection and credentials, then sync again.")
			return gitwizerrors.NewGitCommandError("git", []string{"ls-remote", "origin"}, probe.Stdout, probe.Stderr, nil)
		}
	}
}

// relinkRemote removes the dead origin and runs the creation flow again.
// Returns false when the operator keeps the remote as-is.
func relinkRemote(ctx context.Context, rc *runtime.Context) (bool, error) {
	unlink, err := rc.Prompter.Confirm("Unlink origin and create a fresh repository?", false)
	if err != nil {
		return false, err
	}
	if !unlink {
		return false, nil
	}

	result, err := rc.Git.Run(ctx, "remote", "remove", "origin")
	if err != nil {
		return false, err
	}
	if result.ExitCode != 0 {
		return false, gitwizerrors.NewGitCommandError("git", []string{"remote", "remove", "origin"}, result.Stdout, result.Stderr, nil)
	}

	return createRemote(ctx, rc)
}

// createRemote walks the operator through creating a hosted repository
// linked as origin. Returns false when the operator declines.
func createRemote(ctx context.Context, rc *runtime.Context) (bool, error) {
	splog := rc.Splog

	splog.Info("This repository has no 'origin' remote.")

	if !rc.Host.Available() {
		splog.Error("Guided repository creation needs the GitHub CLI ('gh'), which was not found.")
		splog.Tip("Install it from https://cli.github.com/ or link a remote yourself with 'git remote add origin <url>'.")
		return false, fmt.Errorf("gh executable not found")
	}

	create, err := rc.Prompter.Confirm("Create a GitHub repository and link it as origin?", false)
	if err != nil {
		return false, err
	}
	if !create {
		return false, nil
	}

	name, err := rc.Prompter.Input("Repository name:", filepath.Base(rc.RepoRoot))
	if err != nil {
		return false, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return false, fmt.Errorf("repository name must not be empty")
	}

	visibility, err := rc.Prompter.Select("Repository visibility:", []tui.SelectOption{
		{Label: "Private", Value: hosting.VisibilityPrivate},
		{Label: "Public", Value: hosting.VisibilityPublic},
	}, 0)
	if err != nil {
		return false, err
	}

	if err := rc.Host.CreateRepo(ctx, name, visibility); err != nil {
		return false, err
	}

	url, err := rc.Host.RepoURL(ctx)
	if err != nil {
		// The remote link is in place even when the URL read fails;
		// creation still counts.
		splog.Warn("Repository created, but reading its URL failed: %v", err)
	} else {
		splog.Info("Created %s and linked it as origin.", url)
	}
	return true, nil
}
