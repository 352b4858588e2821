package cli

import (
	"os"

	"github.com/spf13/cobra"

	"gitwiz.dev/gitwiz/internal/execx"
	"gitwiz.dev/gitwiz/internal/git"
)

// completeBranches is a helper for cobra.ValidArgsFunction that returns all
// branch names in the enclosing repository. Outside a repository it
// completes nothing.
func completeBranches(cmd *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	executor := execx.New()
	root, err := git.DetectRoot(cmd.Context(), executor, dir)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	gateway := git.NewGateway(git.NewInvoker(executor, root))
	branches, err := gateway.Branches(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	names := make([]string, 0, len(branches))
	for _, branch := range branches {
		names = append(names, branch.Name)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
