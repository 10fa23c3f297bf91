package devices

import (
	"fmt"
	"strings"

	"github.com/BerryBytes/consolectl/internal/console"
	promptutils "github.com/BerryBytes/consolectl/utils/prompt"

	"github.com/spf13/cobra"
)

type DevicesDependencies struct {
	Console  console.Console
	Prompter promptutils.Prompter
}

func NewDevicesCommands(deps DevicesDependencies) *cobra.Command {
	devicesCmd := &cobra.Command{
		Use:   "devices",
		Short: "Manage tenant devices",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return nil
		},
	}

	devicesCmd.AddCommand(DeleteCmd(deps.Console, deps.Prompter))
	return devicesCmd
}

func DeleteCmd(client console.Console, prompter promptutils.Prompter) *cobra.Command {
	deleteCmd := &cobra.Command{
		Use:   "delete <device-id> [device-id...]",
		Short: "Delete one or more devices",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			yes, err := cmd.Flags().GetBool("yes")
			if err != nil {
				return fmt.Errorf("could not get yes flag: %w", err)
			}

			if !yes && !prompter.PromptForConfirmation(fmt.Sprintf("Delete %d device(s): %s", len(args), strings.Join(args, ", "))) {
				cmd.Println("Aborted.")
				return nil
			}

			if err := client.DeleteDevices(cmd.Context(), args); err != nil {
				return fmt.Errorf("failed to delete devices: %w", err)
			}
			cmd.Printf("Deleted %d device(s).\n", len(args))
			return nil
		},
	}

	deleteCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	return deleteCmd
}
