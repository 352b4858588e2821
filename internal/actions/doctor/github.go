package doctor

import (
	"context"
	"fmt"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"gitwiz.dev/gitwiz/internal/runtime"
)

// checkGitHub verifies that a GitHub token is available and that the API
// answers with it.
func checkGitHub(ctx context.Context, rc *runtime.Context, warnings, errors []string) ([]string, []string) {
	splog := rc.Splog

	token, err := rc.Host.AuthToken(ctx)
	if err != nil {
		warnings = append(warnings, "GitHub authentication not configured (set GITHUB_TOKEN or run 'gh auth login')")
		splog.Warn("  GitHub authentication not configured")
		return warnings, errors
	}

	login, err := whoAmI(ctx, token)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("GitHub API not reachable: %v", err))
		splog.Warn("  GitHub API not reachable: %v", err)
		return warnings, errors
	}

	splog.Info("  ✅ GitHub API reachable (authenticated as %s)", login)
	return warnings, errors
}

// whoAmI resolves the authenticated user, proving the token works.
func whoAmI(ctx context.Context, token string) (string, error) {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	client := github.NewClient(tc)

	user, _, err := client.Users.Get(ctx, "")
	if err != nil {
		return "", err
	}
	return user.GetLogin(), nil
}
