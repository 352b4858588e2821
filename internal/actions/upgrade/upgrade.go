// Package upgrade implements self-update: reinstalling the binary from
// the module's latest release through the Go toolchain.
package upgrade

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gitwizerrors "gitwiz.dev/gitwiz/internal/errors"
	"gitwiz.dev/gitwiz/internal/execx"
	"gitwiz.dev/gitwiz/internal/runtime"
)

const installTarget = "gitwiz.dev/gitwiz/cmd/gitwiz@latest"

// Action reinstalls gitwiz at the latest released version.
func Action(ctx context.Context, rc *runtime.Context) error {
	splog := rc.Splog

	splog.Info("Upgrading gitwiz...")

	result, err := rc.Exec.Run(ctx, execx.Command{
		Name:    "go",
		Args:    []string{"install", installTarget},
		Timeout: execx.UpgradeTimeout,
	})
	if err != nil {
		var startErr *gitwizerrors.StartError
		if errors.As(err, &startErr) {
			splog.Error("The Go toolchain is required for upgrading but was not found.")
			splog.Tip("Install Go from https://go.dev/dl/ or grab a release binary instead.")
		}
		return err
	}

	if result.ExitCode != 0 {
		splog.Error("Upgrade failed:")
		splog.Page(strings.TrimSpace(result.Stdout + "\n" + result.Stderr))
		return fmt.Errorf("go install exited with code %d", result.ExitCode)
	}

	splog.Info("✅ gitwiz is now at the latest version.")
	return nil
}
