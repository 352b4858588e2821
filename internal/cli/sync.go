package cli

import (
	"github.com/spf13/cobra"

	"gitwiz.dev/gitwiz/internal/actions/sync"
	"gitwiz.dev/gitwiz/internal/runtime"
)

// newSyncCmd creates the sync command
func newSyncCmd() *cobra.Command {
	var keepBranches bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Pull, push and tidy the current branch against origin",
		Long: `Bring the current branch in sync with origin.

Sync pulls the latest changes with rebase, pushes your commits, and offers
to delete local branches that are fully merged. If the repository has no
origin remote yet, gitwiz can create a GitHub repository with the gh CLI
and link it for you.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := runtime.GetContext(cmd.Context())
			if err != nil {
				return err
			}
			defer rc.Close()

			return sync.Action(cmd.Context(), rc, sync.Options{
				KeepBranches: keepBranches,
			})
		},
	}

	cmd.Flags().BoolVar(&keepBranches, "keep-branches", false, "Skip the merged-branch cleanup step")

	return cmd
}
