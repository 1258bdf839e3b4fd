package cmd

import (
	"encoding/json"
	"errors"

	"supaportal/backend/internal/supabase"

	"github.com/spf13/cobra"
)

func newWhoamiCmd() *cobra.Command {
	var token string

	c := &cobra.Command{
		Use:   "whoami",
		Short: "Resolve a user access token through the Supabase auth API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				return errors.New("--token is required")
			}
			client, err := supabase.NewClientFromEnv()
			if err != nil {
				return err
			}
			u, err := client.VerifyToken(cmd.Context(), token)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(u)
		},
	}
	c.Flags().StringVar(&token, "token", "", "User access token (JWT)")
	return c
}
