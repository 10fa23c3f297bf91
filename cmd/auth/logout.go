package auth

import (
	"fmt"

	"github.com/BerryBytes/consolectl/internal/console"

	"github.com/spf13/cobra"
)

func LogoutCmd(client console.Console) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the token and clear the local session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Logout(cmd.Context()); err != nil {
				return fmt.Errorf("logout incomplete: %w", err)
			}
			cmd.Println("Logged out.")
			return nil
		},
	}
}
