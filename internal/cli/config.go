package cli

import (
	"github.com/spf13/cobra"

	"gitwiz.dev/gitwiz/internal/actions/configure"
	"gitwiz.dev/gitwiz/internal/runtime"
)

// newConfigCmd creates the config command
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configure the AI provider used for message generation",
		Long: `Configure the AI provider gitwiz uses for commit and merge messages.

Examples:
  gitwiz config set
  gitwiz config show`,
	}

	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

// newConfigSetCmd creates the config set command
func newConfigSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Choose a provider, model and API key interactively",
		Long: `Walk through choosing an AI provider, a model, and entering the API key.

The key is stored in the system keychain when one is available; otherwise
it is kept in the config file with a visible encoding and gitwiz warns you.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			rc, err := runtime.GetToolContext()
			if err != nil {
				return err
			}
			defer rc.Close()

			return configure.Set(rc)
		},
	}

	return cmd
}

// newConfigShowCmd creates the config show command
func newConfigShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "show",
		Short:        "Show the configured provider with the API key redacted",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			rc, err := runtime.GetToolContext()
			if err != nil {
				return err
			}
			defer rc.Close()

			return configure.Show(rc)
		},
	}

	return cmd
}
