// Package doctor provides diagnostic checks for the gitwiz environment:
// the wrapped executables, the AI provider configuration, and GitHub
// connectivity.
package doctor

import (
	"context"
	"fmt"

	"gitwiz.dev/gitwiz/internal/runtime"
)

// Action runs every diagnostic check and summarizes the result. Errors
// make the command fail; warnings do not.
func Action(ctx context.Context, rc *runtime.Context) error {
	splog := rc.Splog

	splog.Info("Running gitwiz doctor...")
	splog.Newline()

	var warnings []string
	var errors []string

	splog.Info("Environment:")
	warnings, errors = checkEnvironment(ctx, rc, warnings, errors)

	splog.Newline()

	splog.Info("AI provider:")
	warnings, errors = checkProvider(rc, warnings, errors)

	splog.Newline()

	splog.Info("GitHub:")
	warnings, errors = checkGitHub(ctx, rc, warnings, errors)

	splog.Newline()
	switch {
	case len(errors) > 0:
		splog.Warn("Doctor found %d error(s) and %d warning(s).", len(errors), len(warnings))
		for _, msg := range errors {
			splog.Error("  %s", msg)
		}
		for _, msg := range warnings {
			splog.Warn("  %s", msg)
		}
		return fmt.Errorf("doctor found %d error(s)", len(errors))
	case len(warnings) > 0:
		splog.Info("Doctor found %d warning(s). Your gitwiz setup is mostly healthy.", len(warnings))
		for _, msg := range warnings {
			splog.Warn("  %s", msg)
		}
	default:
		splog.Info("✅ All checks passed. Your gitwiz setup is healthy.")
	}

	return nil
}
