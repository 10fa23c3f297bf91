package auth

import (
	"github.com/BerryBytes/consolectl/internal/console"
	promptutils "github.com/BerryBytes/consolectl/utils/prompt"

	"github.com/spf13/cobra"
)

type AuthDependencies struct {
	Console  console.Console
	Prompter promptutils.Prompter
}

func NewAuthCommands(deps AuthDependencies) *cobra.Command {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the console session",
		Long:  "Log in to the platform, inspect the stored session and log out.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return nil
		},
	}

	authCmd.AddCommand(LoginCmd(deps.Console, deps.Prompter))
	authCmd.AddCommand(LogoutCmd(deps.Console))
	authCmd.AddCommand(StatusCmd(deps.Console))

	return authCmd
}
