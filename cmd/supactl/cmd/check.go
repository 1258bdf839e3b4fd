package cmd

import (
	"errors"
	"fmt"

	"supaportal/backend/internal/supabase"

	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the Supabase environment and build the client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := supabase.NewClientFromEnv()
			if err != nil {
				var ce *supabase.ConfigurationError
				if errors.As(err, &ce) {
					fmt.Fprintln(cmd.ErrOrStderr(), ce.Detail())
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %s (schema %s)\n", client.URL(), client.Schema())
			return nil
		},
	}
}
