package cli

import (
	"github.com/spf13/cobra"

	"gitwiz.dev/gitwiz/internal/actions/doctor"
	"gitwiz.dev/gitwiz/internal/runtime"
)

// newDoctorCmd creates the doctor command
func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose common issues with your gitwiz setup",
		Long: `Run diagnostic checks on your gitwiz environment.

The doctor command checks:
  - Environment: the git executable and the GitHub CLI
  - AI provider: configured provider, model, and stored API key
  - GitHub: authentication and API reachability`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := runtime.GetToolContext()
			if err != nil {
				return err
			}
			defer rc.Close()

			return doctor.Action(cmd.Context(), rc)
		},
	}

	return cmd
}
