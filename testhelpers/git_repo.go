package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const textFileName = "change.txt"

// GitRepo drives a real Git repository on disk. Tests use it to arrange
// branches, commits, conflicts, and remotes before exercising gitwiz code
// against the repository.
type GitRepo struct {
	Dir string
}

// NewGitRepo initializes a fresh repository in dir with a deterministic
// configuration: `main` as the default branch and the global git config
// masked out so developer machines and CI behave identically.
func NewGitRepo(dir string) (*GitRepo, error) {
	repo := &GitRepo{Dir: dir}

	cmd := exec.Command("git", "-c", "init.defaultBranch=main", "-c", "core.autocrlf=false", "-c", "core.fileMode=false", "init", dir, "-b", "main")
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to init repo: %w", err)
	}

	// A committer identity is required for commits
	if err := repo.runGit("config", "user.name", "Test User"); err != nil {
		return nil, err
	}
	if err := repo.runGit("config", "user.email", "test@example.com"); err != nil {
		return nil, err
	}

	return repo, nil
}

// runGit executes a git command in the repository directory with the global
// config masked out.
func (r *GitRepo) runGit(args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if os.Getenv("DEBUG") != "" {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}
	return cmd.Run()
}

// runGitOutput executes a git command and returns its trimmed stdout.
func (r *GitRepo) runGitOutput(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %s failed: %w", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(output)), nil
}

// RunGit executes an arbitrary git command in the repository directory.
func (r *GitRepo) RunGit(args ...string) error {
	return r.runGit(args...)
}

// CreateChange writes a change to the default test file. When unstaged is
// false the change is staged immediately.
func (r *GitRepo) CreateChange(textValue string, prefix string, unstaged bool) error {
	fileName := textFileName
	if prefix != "" {
		fileName = prefix + "_" + fileName
	}
	filePath := filepath.Join(r.Dir, fileName)

	if err := os.WriteFile(filePath, []byte(textValue), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	if !unstaged {
		return r.runGit("add", filePath)
	}

	return nil
}

// CreateChangeAndCommit creates a file change and commits it, using textValue
// as the commit message.
func (r *GitRepo) CreateChangeAndCommit(textValue string, prefix string) error {
	if err := r.CreateChange(textValue, prefix, false); err != nil {
		return err
	}
	if err := r.runGit("add", "."); err != nil {
		return err
	}
	return r.runGit("commit", "-m", textValue)
}

// CreateFileAndCommit writes an exact file and commits it. Unlike
// CreateChangeAndCommit this gives the test full control over path, content,
// and message, which conflict scenarios need: commit the same path with
// different content on two branches and merging them conflicts.
func (r *GitRepo) CreateFileAndCommit(name, content, message string) error {
	filePath := filepath.Join(r.Dir, name)
	if err := os.MkdirAll(filepath.Dir(filePath), 0750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(filePath, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := r.runGit("add", filePath); err != nil {
		return err
	}
	return r.runGit("commit", "-m", message)
}

// CreateBranch creates a new branch without checking it out.
func (r *GitRepo) CreateBranch(name string) error {
	return r.runGit("branch", name)
}

// CreateAndCheckoutBranch creates and checks out a new branch.
func (r *GitRepo) CreateAndCheckoutBranch(name string) error {
	return r.runGit("checkout", "-b", name)
}

// CheckoutBranch checks out an existing branch.
func (r *GitRepo) CheckoutBranch(name string) error {
	return r.runGit("checkout", name)
}

// CheckoutDetached checks out a revision in detached HEAD state.
func (r *GitRepo) CheckoutDetached(rev string) error {
	return r.runGit("checkout", "--detach", rev)
}

// DeleteBranch force-deletes a branch.
func (r *GitRepo) DeleteBranch(name string) error {
	return r.runGit("branch", "-D", name)
}

// MergeBranch merges mergeIn into branch.
func (r *GitRepo) MergeBranch(branch, mergeIn string) error {
	if err := r.CheckoutBranch(branch); err != nil {
		return err
	}
	return r.runGit("merge", mergeIn)
}

// ResolveMergeConflicts resolves all merge conflicts by taking their side.
func (r *GitRepo) ResolveMergeConflicts() error {
	return r.runGit("checkout", "--theirs", ".")
}

// MarkMergeConflictsAsResolved stages everything, marking conflicts resolved.
func (r *GitRepo) MarkMergeConflictsAsResolved() error {
	return r.runGit("add", ".")
}

// MergeInProgress reports whether a merge is waiting for conflict resolution.
func (r *GitRepo) MergeInProgress() bool {
	_, err := os.Stat(filepath.Join(r.Dir, ".git", "MERGE_HEAD"))
	return err == nil
}

// RebaseInProgress reports whether a rebase is in progress.
func (r *GitRepo) RebaseInProgress() bool {
	_, err := os.Stat(filepath.Join(r.Dir, ".git", "rebase-merge"))
	return err == nil
}

// CurrentBranchName returns the name of the current branch, or an empty
// string in detached HEAD state.
func (r *GitRepo) CurrentBranchName() (string, error) {
	return r.runGitOutput("branch", "--show-current")
}

// GetRevision returns the SHA of a revision (branch, tag, or commit ref).
func (r *GitRepo) GetRevision(rev string) (string, error) {
	return r.runGitOutput("rev-parse", rev)
}

// GetCurrentSHA returns the SHA of HEAD.
func (r *GitRepo) GetCurrentSHA() (string, error) {
	return r.GetRevision("HEAD")
}

// GetCommitCount returns the number of commits reachable from to but not
// from from.
func (r *GitRepo) GetCommitCount(from, to string) (int, error) {
	output, err := r.runGitOutput("rev-list", "--count", from+".."+to)
	if err != nil {
		return 0, err
	}
	var count int
	if _, err := fmt.Sscanf(output, "%d", &count); err != nil {
		return 0, fmt.Errorf("failed to parse commit count: %w", err)
	}
	return count, nil
}

// GetLocalBranches returns all local branch names.
func (r *GitRepo) GetLocalBranches() ([]string, error) {
	output, err := r.runGitOutput("branch", "--format=%(refname:short)")
	if err != nil {
		return nil, err
	}
	return splitLines(output), nil
}

// ListCommitMessages returns the full commit messages on ref, newest first.
func (r *GitRepo) ListCommitMessages(ref string) ([]string, error) {
	output, err := r.runGitOutput("log", "--format=%s", ref)
	if err != nil {
		return nil, err
	}
	return splitLines(output), nil
}

// HasUnstagedChanges reports whether tracked files have unstaged changes.
func (r *GitRepo) HasUnstagedChanges() (bool, error) {
	output, err := r.runGitOutput("diff", "--name-only")
	if err != nil {
		return false, err
	}
	return output != "", nil
}

// HasUntrackedFiles reports whether the worktree has untracked files.
func (r *GitRepo) HasUntrackedFiles() (bool, error) {
	output, err := r.runGitOutput("ls-files", "--others", "--exclude-standard")
	if err != nil {
		return false, err
	}
	return output != "", nil
}

// IsAncestor reports whether ancestor is reachable from descendant.
func (r *GitRepo) IsAncestor(ancestor, descendant string) (bool, error) {
	err := r.runGit("merge-base", "--is-ancestor", ancestor, descendant)
	return err == nil, nil
}

// CreateBareRemote creates a bare repository and adds it as a remote.
// The bare directory lives under the worktree's .git, so git status never
// sees it and scene teardown removes it along with everything else.
// Returns the path of the bare repository.
func (r *GitRepo) CreateBareRemote(name string) (string, error) {
	bareDir := filepath.Join(r.Dir, ".git", name+"-remote.git")

	cmd := exec.Command("git", "init", "--bare", bareDir)
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to create bare repo: %w", err)
	}

	if err := r.runGit("remote", "add", name, bareDir); err != nil {
		return "", fmt.Errorf("failed to add remote: %w", err)
	}

	return bareDir, nil
}

// PushBranch pushes a branch to a remote and sets its upstream.
func (r *GitRepo) PushBranch(remote, branch string) error {
	cmd := exec.Command("git", "push", "-u", remote, branch)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("push failed: %w, output: %s", err, string(output))
	}
	return nil
}

// splitLines splits trimmed output into non-empty lines.
func splitLines(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "\n")
}
