package cli

import (
	"github.com/spf13/cobra"

	"gitwiz.dev/gitwiz/internal/actions/upgrade"
	"gitwiz.dev/gitwiz/internal/runtime"
)

// newUpgradeCmd creates the upgrade command
func newUpgradeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Upgrade gitwiz to the latest release",
		Long: `Upgrade gitwiz in place using the Go toolchain.

This runs 'go install' against the latest released version, so a working
Go installation is required.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := runtime.GetToolContext()
			if err != nil {
				return err
			}
			defer rc.Close()

			return upgrade.Action(cmd.Context(), rc)
		},
	}

	return cmd
}
