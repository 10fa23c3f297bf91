package auth

import (
	"errors"
	"fmt"

	"github.com/BerryBytes/consolectl/internal/console"
	promptutils "github.com/BerryBytes/consolectl/utils/prompt"

	"github.com/spf13/cobra"
)

func LoginCmd(client console.Console, prompter promptutils.Prompter) *cobra.Command {
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with username and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			username, err := cmd.Flags().GetString("username")
			if err != nil {
				return fmt.Errorf("could not get username flag: %w", err)
			}
			tenant, err := cmd.Flags().GetString("tenant")
			if err != nil {
				return fmt.Errorf("could not get tenant flag: %w", err)
			}

			input, err := collectLoginInput(prompter, username, tenant)
			if errors.Is(err, promptutils.ErrInterrupted) {
				return nil
			} else if err != nil {
				return err
			}

			user, err := client.Login(cmd.Context(), input)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			if user.TenantID != "" {
				cmd.Printf("Logged in as %s (tenant %s)\n", user.Username, user.TenantID)
			} else {
				cmd.Printf("Logged in as %s\n", user.Username)
			}
			return nil
		},
	}

	loginCmd.Flags().StringP("username", "u", "", "Username to log in with")
	loginCmd.Flags().StringP("tenant", "t", "", "Tenant ID (empty for the platform admin)")

	return loginCmd
}

func collectLoginInput(prompter promptutils.Prompter, username, tenant string) (console.LoginInput, error) {
	var err error
	if username == "" {
		username, err = prompter.PromptRequired("Username")
		if err != nil {
			return console.LoginInput{}, err
		}
	}
	password, err := prompter.PromptPassword("Password")
	if err != nil {
		return console.LoginInput{}, err
	}
	return console.LoginInput{Username: username, Password: password, Tenant: tenant}, nil
}
