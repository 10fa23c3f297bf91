package plugins

import (
	"fmt"

	"github.com/BerryBytes/consolectl/internal/console"
	promptutils "github.com/BerryBytes/consolectl/utils/prompt"

	"github.com/spf13/cobra"
)

type PluginsDependencies struct {
	Console  console.Console
	Prompter promptutils.Prompter
}

func NewPluginsCommands(deps PluginsDependencies) *cobra.Command {
	pluginsCmd := &cobra.Command{
		Use:   "plugins",
		Short: "Manage platform plugins",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return nil
		},
	}

	pluginsCmd.AddCommand(DeleteCmd(deps.Console, deps.Prompter))
	pluginsCmd.AddCommand(InstallersCmd(deps.Console))

	return pluginsCmd
}

func DeleteCmd(client console.Console, prompter promptutils.Prompter) *cobra.Command {
	deleteCmd := &cobra.Command{
		Use:   "delete <plugin-id>",
		Short: "Delete an installed plugin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, err := cmd.Flags().GetBool("yes")
			if err != nil {
				return fmt.Errorf("could not get yes flag: %w", err)
			}

			id := args[0]
			if !yes && !prompter.PromptForConfirmation(fmt.Sprintf("Delete plugin %s", id)) {
				cmd.Println("Aborted.")
				return nil
			}

			data, err := client.DeletePlugin(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to delete plugin %s: %w", id, err)
			}
			cmd.Printf("Plugin %s deleted (status %s).\n", data.Plugin.ID, data.Plugin.Status)
			return nil
		},
	}

	deleteCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	return deleteCmd
}

func InstallersCmd(client console.Console) *cobra.Command {
	return &cobra.Command{
		Use:   "installers <repo> [repo...]",
		Short: "List the plugin installers of one or more repos",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := client.ListRepoInstallers(cmd.Context(), args)

			failed := 0
			for _, result := range results {
				cmd.Printf("%s:\n", result.Repo)
				if result.Err != nil {
					failed++
					cmd.Printf("  error: %v\n", result.Err)
					continue
				}
				if len(result.Installers) == 0 {
					cmd.Println("  (no installers)")
					continue
				}
				for _, installer := range result.Installers {
					state := ""
					if installer.Installed {
						state = " [installed]"
					}
					cmd.Printf("  %s %s%s\n", installer.Name, installer.Version, state)
				}
			}

			if failed == len(results) {
				return fmt.Errorf("failed to list installers for all %d repo(s)", failed)
			}
			return nil
		},
	}
}
