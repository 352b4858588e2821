package cli

import (
	"github.com/spf13/cobra"

	"gitwiz.dev/gitwiz/internal/actions/commit"
	"gitwiz.dev/gitwiz/internal/runtime"
)

// newCommitCmd creates the commit command
func newCommitCmd() *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Commit staged changes with an AI-suggested message",
		Long: `Commit the staged changes.

Without -m, gitwiz asks the configured AI provider to suggest a commit
message from the staged diff; you can accept it, edit it in your editor,
or cancel without committing.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := runtime.GetContext(cmd.Context())
			if err != nil {
				return err
			}
			defer rc.Close()

			return commit.Action(cmd.Context(), rc, commit.Options{
				Message: message,
			})
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Commit with this message instead of generating one")

	return cmd
}
