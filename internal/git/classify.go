package git

import (
	"strings"

	"gitwiz.dev/gitwiz/internal/execx"
)

// This file is the only place that matches on git's message phrasing.
// Git offers no machine-readable contract for these situations, so the
// checks are substring heuristics by construction; a localization or
// version change in git's wording breaks them here and nowhere else.

// MergeOutcome classifies what an executed merge actually did. The
// preview's fast-forward guess is advisory; this classification of the
// executed output is authoritative.
type MergeOutcome int

const (
	// MergeFailed is any non-zero exit without a recognized phrase.
	MergeFailed MergeOutcome = iota
	// MergeFastForward moved the branch pointer without a new commit.
	MergeFastForward
	// MergeMade created a merge commit.
	MergeMade
	// MergeStopped applied the changes but withheld the commit, as
	// requested via --no-commit.
	MergeStopped
	// MergeUpToDate found nothing to merge.
	MergeUpToDate
	// MergeConflict left the work tree with unmerged paths.
	MergeConflict
)

// ClassifyMerge maps a merge invocation's result onto a MergeOutcome.
// Conflict detection is purely textual: it triggers exactly when the
// output carries git's conflict marker or failure phrase.
func ClassifyMerge(result execx.Result) MergeOutcome {
	out := combinedOutput(result)

	switch {
	case strings.Contains(out, "CONFLICT") || strings.Contains(out, "Automatic merge failed"):
		return MergeConflict
	case result.ExitCode != 0:
		return MergeFailed
	case strings.Contains(out, "Already up to date") || strings.Contains(out, "Already up-to-date"):
		return MergeUpToDate
	case strings.Contains(out, "stopped before committing as requested"):
		return MergeStopped
	case strings.Contains(out, "Fast-forward"):
		return MergeFastForward
	default:
		return MergeMade
	}
}

// PullOutcome classifies a pull --rebase attempt.
type PullOutcome int

const (
	// PullFailed is any unrecognized failure; the raw output must be
	// surfaced to the operator.
	PullFailed PullOutcome = iota
	// PullDone means the pull completed.
	PullDone
	// PullNoUpstream means the branch does not exist on the remote yet,
	// which first-push flows tolerate.
	PullNoUpstream
)

// ClassifyPull maps a pull invocation's result onto a PullOutcome.
func ClassifyPull(result execx.Result) PullOutcome {
	if result.ExitCode == 0 {
		return PullDone
	}
	if strings.Contains(combinedOutput(result), "couldn't find remote ref") {
		return PullNoUpstream
	}
	return PullFailed
}

// PushOutcome classifies a push attempt.
type PushOutcome int

const (
	// PushFailed is any unrecognized failure.
	PushFailed PushOutcome = iota
	// PushDone means the push completed.
	PushDone
	// PushRemoteMissing means the remote repository no longer exists
	// (deleted on the host, or the URL points nowhere).
	PushRemoteMissing
	// PushRejected means the remote refused the update.
	PushRejected
)

// ClassifyPush maps a push invocation's result onto a PushOutcome.
func ClassifyPush(result execx.Result) PushOutcome {
	if result.ExitCode == 0 {
		return PushDone
	}
	out := combinedOutput(result)
	switch {
	case remoteMissingOutput(out):
		return PushRemoteMissing
	case strings.Contains(out, "[rejected]") || strings.Contains(out, "stale info") || strings.Contains(out, "failed to push some refs"):
		return PushRejected
	default:
		return PushFailed
	}
}

// RemoteProbe classifies a reachability check (ls-remote).
type RemoteProbe int

const (
	// RemoteUnreachable is any unrecognized failure.
	RemoteUnreachable RemoteProbe = iota
	// RemoteReachable means the remote answered.
	RemoteReachable
	// RemoteMissing means the remote repository does not exist.
	RemoteMissing
)

// ClassifyRemoteProbe maps an ls-remote result onto a RemoteProbe.
func ClassifyRemoteProbe(result execx.Result) RemoteProbe {
	if result.ExitCode == 0 {
		return RemoteReachable
	}
	if remoteMissingOutput(combinedOutput(result)) {
		return RemoteMissing
	}
	return RemoteUnreachable
}

// IsNoSuchRemote reports whether a remote subcommand failed because the
// named remote is not configured.
func IsNoSuchRemote(result execx.Result) bool {
	return result.ExitCode != 0 && strings.Contains(combinedOutput(result), "No such remote")
}

func remoteMissingOutput(out string) bool {
	return strings.Contains(out, "Repository not found") ||
		strings.Contains(out, "does not appear to be a git repository")
}

func combinedOutput(result execx.Result) string {
	return result.Stdout + "\n" + result.Stderr
}
