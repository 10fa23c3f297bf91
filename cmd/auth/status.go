package auth

import (
	"fmt"
	"time"

	"github.com/BerryBytes/consolectl/internal/console"

	"github.com/spf13/cobra"
)

func StatusCmd(client console.Console) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := client.Status(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to read session: %w", err)
			}
			if !session.LoggedIn() {
				cmd.Println("Not logged in.")
				return nil
			}

			cmd.Println("Logged in.")
			if session.User != nil {
				cmd.Printf("  Username: %s\n", session.User.Username)
				if session.User.TenantID != "" {
					cmd.Printf("  Tenant:   %s\n", session.User.TenantID)
				}
			}
			cmd.Printf("  Token:    %s\n", session.Token.TokenType)
			if session.ExpiresAt != nil {
				state := "valid"
				if session.ExpiresAt.Before(time.Now()) {
					state = "expired"
				}
				cmd.Printf("  Expires:  %s (%s)\n", session.ExpiresAt.Local().Format(time.RFC3339), state)
			}
			return nil
		},
	}
}
