package sync

import (
	"context"
	"fmt"
	"strings"

	"gitwiz.dev/gitwiz/internal/runtime"
)

// protectedBranches are never offered for cleanup, merged or not.
var protectedBranches = map[string]bool{
	"main":   true,
	"master": true,
}

// cleanupMergedBranches offers to delete local branches whose entire
// history is already contained in HEAD, one confirmation per branch.
func cleanupMergedBranches(ctx context.Context, rc *runtime.Context, current string) error {
	splog := rc.Splog

	branches, err := rc.Gateway.LocalBranches(ctx)
	if err != nil {
		return fmt.Errorf("failed to list local branches: %w", err)
	}

	var candidates []string
	for _, branch := range branches {
		if branch.Name == current || protectedBranches[branch.Name] {
			continue
		}
		merged, err := rc.History.IsAncestor(branch.Name, "HEAD")
		if err != nil {
			splog.Debug("skipping %s during cleanup: %v", branch.Name, err)
			continue
		}
		if merged {
			candidates = append(candidates, branch.Name)
		}
	}

	if len(candidates) == 0 {
		splog.Debug("no fully merged branches to clean up")
		return nil
	}

	splog.Info("Found %d fully merged branch(es).", len(candidates))
	for _, name := range candidates {
		confirmed, err := rc.Prompter.Confirm(fmt.Sprintf("Delete branch %s (local and on origin)?", name), false)
		if err != nil {
			return err
		}
		if !confirmed {
			continue
		}

		if err := deleteBranch(ctx, rc, name); err != nil {
			return err
		}
	}
	return nil
}

// deleteBranch removes a merged branch locally and on origin. The remote
// side is best-effort: the branch may never have been pushed.
func deleteBranch(ctx context.Context, rc *runtime.Context, name string) error {
	splog := rc.Splog

	result, err := rc.Git.Run(ctx, "branch", "-d", name)
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		splog.Warn("Could not delete %s: %s", name, strings.TrimSpace(result.Stderr))
		return nil
	}
	splog.Info("Deleted %s.", name)

	result, err = rc.Git.Run(ctx, "push", "origin", "--delete", name)
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		detail := strings.TrimSpace(result.Stderr)
		if detail == "" {
			detail = strings.TrimSpace(result.Stdout)
		}
		splog.Warn("Could not delete %s on origin: %s", name, detail)
	}
	return nil
}
