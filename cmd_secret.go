package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// SecretCmd returns the secret command group
func SecretCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Manage secrets in the OS keyring",
		Long: `Store connection secrets in the OS keyring instead of .env files. With
JARVIS_USE_KEYRING=true an empty JARVIS_DATABASE_URL is read from the
"database_url" secret.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <name> <value>",
		Short: "Store a secret",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.services.Secrets.StoreSecret(args[0], args[1]); err != nil {
				return err
			}
			return renderText(cmd, fmt.Sprintf("Stored secret %q", args[0]))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.services.Secrets.DeleteSecret(args[0]); err != nil {
				return err
			}
			return renderText(cmd, fmt.Sprintf("Deleted secret %q", args[0]))
		},
	})
	return cmd
}
