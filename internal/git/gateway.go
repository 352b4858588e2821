package git

import (
	"context"
	"strconv"
	"strings"

	gitwizerrors "gitwiz.dev/gitwiz/internal/errors"
	"gitwiz.dev/gitwiz/internal/execx"
)

// BranchRef describes one branch as reported by git. References are
// derived fresh on every query and never cached; branch state changes
// between queries (for example after a merge).
type BranchRef struct {
	Name             string
	IsCurrent        bool
	IsRemoteTracking bool
}

// ConflictSet is the ordered list of paths a merge attempt left
// conflicted.
type ConflictSet []string

// Gateway provides read-only projections over the git executable. It
// never mutates repository state. Mutating commands (checkout, merge,
// push) are issued by the flows through Runner directly, because their
// result interpretation is flow-specific.
//
// Every projection inspects both the exit code and the captured output;
// neither alone is a reliable success signal.
type Gateway struct {
	run Runner
}

// NewGateway creates a Gateway over run.
func NewGateway(run Runner) *Gateway {
	return &Gateway{run: run}
}

// IsRepository reports whether the bound root is inside a git work tree.
func (g *Gateway) IsRepository(ctx context.Context) (bool, error) {
	result, err := g.run.Run(ctx, "rev-parse", "--is-inside-work-tree")
	if err != nil {
		return false, err
	}
	return result.ExitCode == 0 && strings.TrimSpace(result.Stdout) == "true", nil
}

// CurrentBranch returns the checked-out branch name. A detached HEAD
// yields ErrNotOnBranch.
func (g *Gateway) CurrentBranch(ctx context.Context) (string, error) {
	result, err := g.run.Run(ctx, "branch", "--show-current")
	if err != nil {
		return "", err
	}
	if result.ExitCode != 0 {
		return "", commandError("branch", result)
	}
	name := strings.TrimSpace(result.Stdout)
	if name == "" {
		return "", gitwizerrors.ErrNotOnBranch
	}
	return name, nil
}

// HasUncommittedChanges reports whether the work tree or index differ
// from HEAD, including untracked files.
func (g *Gateway) HasUncommittedChanges(ctx context.Context) (bool, error) {
	result, err := g.run.Run(ctx, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	if result.ExitCode != 0 {
		return false, commandError("status", result)
	}
	return strings.TrimSpace(result.Stdout) != "", nil
}

// RemoteURL returns the URL of the named remote and whether it exists.
func (g *Gateway) RemoteURL(ctx context.Context, name string) (string, bool, error) {
	result, err := g.run.Run(ctx, "remote", "get-url", name)
	if err != nil {
		return "", false, err
	}
	if result.ExitCode != 0 {
		if IsNoSuchRemote(result) {
			return "", false, nil
		}
		return "", false, commandError("remote", result)
	}
	return strings.TrimSpace(result.Stdout), true, nil
}

// Branches lists every branch, local and remote-tracking, with the
// current-branch marker and remote prefixes stripped. A branch that
// exists both locally and as a remote-tracking ref appears once, in
// first-seen order, as the local entry.
func (g *Gateway) Branches(ctx context.Context) ([]BranchRef, error) {
	result, err := g.run.Run(ctx, "branch", "-a", "--no-color")
	if err != nil {
		return nil, err
	}
	if result.ExitCode != 0 {
		return nil, commandError("branch", result)
	}
	return parseBranchListing(result.Stdout), nil
}

// LocalBranches lists local branches only.
func (g *Gateway) LocalBranches(ctx context.Context) ([]BranchRef, error) {
	result, err := g.run.Run(ctx, "branch", "--no-color")
	if err != nil {
		return nil, err
	}
	if result.ExitCode != 0 {
		return nil, commandError("branch", result)
	}
	return parseBranchListing(result.Stdout), nil
}

// BranchExists resolves name the same way merge itself would. Exit code 1
// means the ref does not exist and is not an error.
func (g *Gateway) BranchExists(ctx context.Context, name string) (bool, error) {
	result, err := g.run.Run(ctx, "rev-parse", "--verify", "--quiet", name)
	if err != nil {
		return false, err
	}
	return result.ExitCode == 0, nil
}

// HasAnyCommit reports whether HEAD resolves to a commit. A freshly
// initialized repository has none.
func (g *Gateway) HasAnyCommit(ctx context.Context) (bool, error) {
	result, err := g.run.Run(ctx, "rev-parse", "--verify", "--quiet", "HEAD")
	if err != nil {
		return false, err
	}
	return result.ExitCode == 0, nil
}

// AheadCount returns how many commits tip carries that base does not.
func (g *Gateway) AheadCount(ctx context.Context, base, tip string) (int, error) {
	result, err := g.run.Run(ctx, "rev-list", "--count", base+".."+tip)
	if err != nil {
		return 0, err
	}
	if result.ExitCode != 0 {
		return 0, commandError("rev-list", result)
	}
	count, err := strconv.Atoi(strings.TrimSpace(result.Stdout))
	if err != nil {
		return 0, commandError("rev-list", result)
	}
	return count, nil
}

// ConflictingFiles returns the paths currently in the unmerged state, in
// git's reported order.
func (g *Gateway) ConflictingFiles(ctx context.Context) (ConflictSet, error) {
	result, err := g.run.Run(ctx, "diff", "--name-only", "--diff-filter=U")
	if err != nil {
		return nil, err
	}
	if result.ExitCode != 0 {
		return nil, commandError("diff", result)
	}
	var files ConflictSet
	for _, line := range strings.Split(result.Stdout, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}

// parseBranchListing turns `git branch [-a]` output into BranchRefs.
func parseBranchListing(output string) []BranchRef {
	var refs []BranchRef
	seen := make(map[string]bool)

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			continue
		}

		isCurrent := strings.HasPrefix(line, "* ")
		name := strings.TrimSpace(strings.TrimPrefix(line, "* "))

		// Symbolic entries like "remotes/origin/HEAD -> origin/main"
		// are pointers, not branches.
		if strings.Contains(name, " -> ") {
			continue
		}

		isRemote := false
		if rest, ok := strings.CutPrefix(name, "remotes/"); ok {
			isRemote = true
			// Drop the remote name segment.
			if idx := strings.Index(rest, "/"); idx >= 0 {
				name = rest[idx+1:]
			} else {
				name = rest
			}
		}

		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		refs = append(refs, BranchRef{
			Name:             name,
			IsCurrent:        isCurrent,
			IsRemoteTracking: isRemote,
		})
	}

	return refs
}

// commandError preserves the tool's raw output for operator diagnosis.
func commandError(subcommand string, result execx.Result) error {
	return gitwizerrors.NewGitCommandError("git", []string{subcommand}, result.Stdout, result.Stderr, nil)
}
