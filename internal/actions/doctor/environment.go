package doctor

import (
	"context"
	"strings"

	"gitwiz.dev/gitwiz/internal/execx"
	"gitwiz.dev/gitwiz/internal/runtime"
)

// checkEnvironment verifies the external executables gitwiz wraps.
func checkEnvironment(ctx context.Context, rc *runtime.Context, warnings, errors []string) ([]string, []string) {
	splog := rc.Splog

	result, err := rc.Exec.Run(ctx, execx.Command{Name: "git", Args: []string{"version"}})
	if err != nil || result.ExitCode != 0 {
		errors = append(errors, "git is not installed or not in PATH")
		splog.Error("  git is not installed or not in PATH")
	} else {
		splog.Info("  ✅ %s", strings.TrimSpace(result.Stdout))
	}

	if rc.Host.Available() {
		splog.Info("  ✅ gh %s", ghVersion(ctx, rc))
	} else {
		warnings = append(warnings, "GitHub CLI (gh) is not installed or not in PATH")
		splog.Warn("  GitHub CLI (gh) is not installed; guided repository creation is unavailable")
	}

	return warnings, errors
}

// ghVersion extracts the version number from gh's multi-line banner.
func ghVersion(ctx context.Context, rc *runtime.Context) string {
	result, err := rc.Exec.Run(ctx, execx.Command{Name: "gh", Args: []string{"--version"}})
	if err != nil || result.ExitCode != 0 {
		return "(version unknown)"
	}
	fields := strings.Fields(result.Stdout)
	for i, field := range fields {
		if field == "version" && i+1 < len(fields) {
			return fields[i+1]
		}
	}
	return "(version unknown)"
}
