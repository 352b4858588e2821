// Package hosting drives the GitHub CLI for the hosted side of a
// repository: creating the remote project, resolving its URL, and
// borrowing the CLI's stored credentials. Plain git cannot do any of
// these, so they live behind their own interface.
package hosting

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"gitwiz.dev/gitwiz/internal/execx"
)

// Repository visibility choices accepted by CreateRepo.
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// Host manages the hosted side of a repository. Flows depend on this
// interface so tests can script the GitHub CLI's behavior.
type Host interface {
	// Available reports whether the GitHub CLI is installed
	Available() bool

	// CreateRepo creates the hosted repository, wiring the current
	// directory to it as the origin remote
	CreateRepo(ctx context.Context, name, visibility string) error

	// RepoURL returns the canonical URL of the hosted repository
	RepoURL(ctx context.Context) (string, error)

	// AuthToken returns a GitHub API token, from GITHUB_TOKEN or the CLI
	AuthToken(ctx context.Context) (string, error)
}

// GitHubHost implements Host by shelling out to gh.
type GitHubHost struct {
	run execx.Runner
	dir string
}

// NewGitHubHost creates a Host rooted at the given repository directory.
func NewGitHubHost(run execx.Runner, dir string) *GitHubHost {
	return &GitHubHost{run: run, dir: dir}
}

var _ Host = (*GitHubHost)(nil)

// Available reports whether the gh executable is on PATH.
func (h *GitHubHost) Available() bool {
	_, err := exec.LookPath("gh")
	return err == nil
}

// CreateRepo creates the hosted repository and registers it as origin.
func (h *GitHubHost) CreateRepo(ctx context.Context, name, visibility string) error {
	res, err := h.run.Run(ctx, execx.Command{
		Name: "gh",
		Args: []string{"repo", "create", name, "--" + visibility, "--source", ".", "--remote", "origin"},
		Dir:  h.dir,
	})
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return ghError("gh repo create", res)
	}
	return nil
}

// RepoURL reads the repository URL from gh's single-field JSON output.
func (h *GitHubHost) RepoURL(ctx context.Context) (string, error) {
	res, err := h.run.Run(ctx, execx.Command{
		Name: "gh",
		Args: []string{"repo", "view", "--json", "url"},
		Dir:  h.dir,
	})
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return "", ghError("gh repo view", res)
	}

	var payload struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal([]byte(res.Stdout), &payload); err != nil {
		return "", fmt.Errorf("could not parse gh repo view output: %w", err)
	}
	if payload.URL == "" {
		return "", fmt.Errorf("gh repo view returned no url")
	}
	return payload.URL, nil
}

// AuthToken returns a GitHub token from the environment or the CLI's
// credential store.
func (h *GitHubHost) AuthToken(ctx context.Context) (string, error) {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token, nil
	}

	res, err := h.run.Run(ctx, execx.Command{
		Name: "gh",
		Args: []string{"auth", "token"},
		Dir:  h.dir,
	})
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return "", ghError("gh auth token", res)
	}

	token := strings.TrimSpace(res.Stdout)
	if token == "" {
		return "", fmt.Errorf("gh auth token returned an empty token")
	}
	return token, nil
}

// ghError turns a failed invocation into an error carrying whatever the
// CLI said, preferring stderr.
func ghError(op string, res execx.Result) error {
	detail := strings.TrimSpace(res.Stderr)
	if detail == "" {
		detail = strings.TrimSpace(res.Stdout)
	}
	if detail == "" {
		return fmt.Errorf("%s failed with exit code %d", op, res.ExitCode)
	}
	return fmt.Errorf("%s failed: %s", op, detail)
}
