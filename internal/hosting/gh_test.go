package hosting_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"gitwiz.dev/gitwiz/internal/execx"
	"gitwiz.dev/gitwiz/internal/hosting"
)

// scriptedRunner returns canned results keyed by the joined argument list.
type scriptedRunner struct {
	calls   []execx.Command
	results map[string]execx.Result
	errs    map[string]error
}

func (s *scriptedRunner) Run(_ context.Context, cmd execx.Command) (execx.Result, error) {
	s.calls = append(s.calls, cmd)
	key := strings.Join(cmd.Args, " ")
	if err, ok := s.errs[key]; ok {
		return execx.Result{}, err
	}
	return s.results[key], nil
}

func TestCreateRepo(t *testing.T) {
	t.Run("passes name, visibility and source wiring", func(t *testing.T) {
		runner := &scriptedRunner{results: map[string]execx.Result{
			"repo create widget --private --source . --remote origin": {ExitCode: 0},
		}}
		host := hosting.NewGitHubHost(runner, "/work/widget")

		require.NoError(t, host.CreateRepo(context.Background(), "widget", hosting.VisibilityPrivate))
		require.Len(t, runner.calls, 1)
		require.Equal(t, "gh", runner.calls[0].Name)
		require.Equal(t, "/work/widget", runner.calls[0].Dir)
	})

	t.Run("surfaces the CLI's stderr on failure", func(t *testing.T) {
		runner := &scriptedRunner{results: map[string]execx.Result{
			"repo create widget --public --source . --remote origin": {
				ExitCode: 1,
				Stderr:   "HTTP 401: authentication required\n",
			},
		}}
		host := hosting.NewGitHubHost(runner, "/work/widget")

		err := host.CreateRepo(context.Background(), "widget", hosting.VisibilityPublic)
		require.Error(t, err)
		require.Contains(t, err.Error(), "authentication required")
	})
}

func TestRepoURL(t *testing.T) {
	t.Run("parses the single-field JSON", func(t *testing.T) {
		runner := &scriptedRunner{results: map[string]execx.Result{
			"repo view --json url": {ExitCode: 0, Stdout: `{"url":"https://github.com/acme/widget"}`},
		}}
		host := hosting.NewGitHubHost(runner, "/work/widget")

		url, err := host.RepoURL(context.Background())
		require.NoError(t, err)
		require.Equal(t, "https://github.com/acme/widget", url)
	})

	t.Run("errors when the repository is not linked", func(t *testing.T) {
		runner := &scriptedRunner{results: map[string]execx.Result{
			"repo view --json url": {ExitCode: 1, Stderr: "no git remotes found"},
		}}
		host := hosting.NewGitHubHost(runner, "/work/widget")

		_, err := host.RepoURL(context.Background())
		require.Error(t, err)
		require.Contains(t, err.Error(), "no git remotes found")
	})

	t.Run("errors on unparseable output", func(t *testing.T) {
		runner := &scriptedRunner{results: map[string]execx.Result{
			"repo view --json url": {ExitCode: 0, Stdout: "not json"},
		}}
		host := hosting.NewGitHubHost(runner, "/work/widget")

		_, err := host.RepoURL(context.Background())
		require.Error(t, err)
	})
}

func TestAuthToken(t *testing.T) {
	t.Run("environment variable wins", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "env-token")
		runner := &scriptedRunner{}
		host := hosting.NewGitHubHost(runner, "/work/widget")

		token, err := host.AuthToken(context.Background())
		require.NoError(t, err)
		require.Equal(t, "env-token", token)
		require.Empty(t, runner.calls, "must not shell out when the env var is set")
	})

	t.Run("falls back to the CLI and trims", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "")
		runner := &scriptedRunner{results: map[string]execx.Result{
			"auth token": {ExitCode: 0, Stdout: "gho_cli-token\n"},
		}}
		host := hosting.NewGitHubHost(runner, "/work/widget")

		token, err := host.AuthToken(context.Background())
		require.NoError(t, err)
		require.Equal(t, "gho_cli-token", token)
	})

	t.Run("empty CLI token is an error", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "")
		runner := &scriptedRunner{results: map[string]execx.Result{
			"auth token": {ExitCode: 0, Stdout: "\n"},
		}}
		host := hosting.NewGitHubHost(runner, "/work/widget")

		_, err := host.AuthToken(context.Background())
		require.Error(t, err)
	})

	t.Run("unauthenticated CLI is an error", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "")
		runner := &scriptedRunner{results: map[string]execx.Result{
			"auth token": {ExitCode: 1, Stderr: "not logged in"},
		}}
		host := hosting.NewGitHubHost(runner, "/work/widget")

		_, err := host.AuthToken(context.Background())
		require.Error(t, err)
		require.Contains(t, err.Error(), "not logged in")
	})
}

func TestAvailable(t *testing.T) {
	t.Run("false when gh is not on PATH", func(t *testing.T) {
		t.Setenv("PATH", t.TempDir())
		host := hosting.NewGitHubHost(&scriptedRunner{}, "/work/widget")
		require.False(t, host.Available())
	})
}
