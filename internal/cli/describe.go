package cli

import (
	"github.com/spf13/cobra"

	"gitwiz.dev/gitwiz/internal/actions/describe"
	"gitwiz.dev/gitwiz/internal/runtime"
)

// newDescribeCmd creates the describe command
func newDescribeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Summarize the state of the repository in plain language",
		Long: `Ask the configured AI provider for a plain-language summary of where the
repository stands: the working tree status, recent commits, and pending
changes.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := runtime.GetContext(cmd.Context())
			if err != nil {
				return err
			}
			defer rc.Close()

			return describe.Action(cmd.Context(), rc)
		},
	}

	return cmd
}
