package cli

import (
	"github.com/spf13/cobra"

	"gitwiz.dev/gitwiz/internal/actions/merge"
	"gitwiz.dev/gitwiz/internal/runtime"
)

// newMergeCmd creates the merge command
func newMergeCmd() *cobra.Command {
	var (
		useAI   bool
		message string
	)

	cmd := &cobra.Command{
		Use:   "merge [branch]",
		Short: "Merge another branch into the current one with a preview and conflict coaching",
		Long: `Merge another branch into the branch you are on.

Before anything happens you get a preview of what the merge will do
(fast-forward or merge commit, and how many commits come in) and a
confirmation prompt. If the branch is omitted, gitwiz offers a picker over
the other branches in the repository.

When the merge hits conflicts, gitwiz lists the conflicting files and walks
you through aborting, inspecting the conflicts, or resolving them by hand.

With --ai the merge commit message is suggested by the configured AI
provider; you can accept, edit, or cancel before anything is committed.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeBranches,
		SilenceUsage:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := runtime.GetContext(cmd.Context())
			if err != nil {
				return err
			}
			defer rc.Close()

			opts := merge.Options{
				UseAI:   useAI,
				Message: message,
			}
			if len(args) > 0 {
				opts.Source = args[0]
			}

			return merge.Action(cmd.Context(), rc, opts)
		},
	}

	cmd.Flags().BoolVar(&useAI, "ai", false, "Suggest the merge commit message with the configured AI provider")
	cmd.Flags().StringVarP(&message, "message", "m", "", "Use this merge commit message instead of git's default")

	return cmd
}
