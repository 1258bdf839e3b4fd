package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// newRootCmd wires every subcommand. A fresh tree per call keeps flag state
// out of package globals.
func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:   "supactl",
		Short: "Check the Supabase client configuration",
		Long: `supactl validates the Supabase settings the API reads at startup
and talks to the project with the same client.

  supactl check                 # fail if PUBLIC_SUPABASE_URL / PUBLIC_SUPABASE_ANON_KEY are missing
  supactl whoami --token <jwt>  # resolve an access token to a user`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if envFile == "" {
				return nil
			}
			if err := godotenv.Load(envFile); err != nil {
				return fmt.Errorf("loading %s: %w", envFile, err)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "Load variables from this .env file first (existing environment wins)")

	root.AddCommand(newCheckCmd(), newWhoamiCmd())
	return root
}

// Execute runs the root command.
func Execute() error {
	if err := newRootCmd().Execute(); err != nil {
		return fmt.Errorf("cli error: %w", err)
	}
	return nil
}
