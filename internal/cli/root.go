package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gitwiz",
		Short: "Gitwiz is a command line assistant that wraps everyday git workflows in guided, recoverable flows",
		Long: `Gitwiz is a command line assistant that wraps everyday git workflows in
guided, recoverable flows: merges with a preview and conflict coaching,
one-command syncing with origin, and AI-suggested commit and merge messages.

https://gitwiz.dev`,
		Version: fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
	}

	// Add subcommands
	rootCmd.AddCommand(newMergeCmd())
	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newCommitCmd())
	rootCmd.AddCommand(newDescribeCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newDoctorCmd())
	rootCmd.AddCommand(newUpgradeCmd())

	return rootCmd
}
