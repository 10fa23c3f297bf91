package menu

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/BerryBytes/consolectl/internal/console"
	menuquery "github.com/BerryBytes/consolectl/internal/menu"
	"github.com/BerryBytes/consolectl/models"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func NewMenuCommands(client console.Console) *cobra.Command {
	menuCmd := &cobra.Command{
		Use:   "menu",
		Short: "Inspect the authorized menu tree",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return nil
		},
	}

	menuCmd.AddCommand(ListCmd(client))
	return menuCmd
}

func ListCmd(client console.Console) *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the menu entries of the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := cmd.Flags().GetString("output")
			if err != nil {
				return fmt.Errorf("could not get output flag: %w", err)
			}
			apps, err := cmd.Flags().GetBool("apps")
			if err != nil {
				return fmt.Errorf("could not get apps flag: %w", err)
			}

			entries, err := client.Entries(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to fetch menu: %w", err)
			}

			var value any = entries
			if apps {
				value = menuquery.ToDescriptors(entries)
			}

			switch output {
			case "yaml":
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				defer enc.Close()
				return enc.Encode(value)
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(value)
			case "text", "":
				if apps {
					printDescriptors(cmd.OutOrStdout(), menuquery.ToDescriptors(entries))
				} else {
					printEntries(cmd.OutOrStdout(), entries, 0)
				}
				return nil
			default:
				return fmt.Errorf("unsupported output format %q", output)
			}
		},
	}

	listCmd.Flags().StringP("output", "o", "text", "Output format: text, yaml or json")
	listCmd.Flags().Bool("apps", false, "Show the sub-application descriptors derived from the menu")

	return listCmd
}

func printEntries(w io.Writer, entries []models.MenuEntry, depth int) {
	if depth == 0 && len(entries) == 0 {
		fmt.Fprintln(w, "No menu entries.")
		return
	}
	indent := strings.Repeat("  ", depth)
	for _, entry := range entries {
		fmt.Fprintf(w, "%s- %s", indent, entry.Name)
		if entry.Path != "" {
			fmt.Fprintf(w, " (%s)", entry.Path)
		}
		fmt.Fprintln(w)
		printEntries(w, entry.Children, depth+1)
	}
}

func printDescriptors(w io.Writer, descriptors []models.SubApplicationDescriptor) {
	if len(descriptors) == 0 {
		fmt.Fprintln(w, "No sub-applications.")
		return
	}
	for _, d := range descriptors {
		fmt.Fprintf(w, "%s\n  activeRule: %s\n  entry:      %s\n  container:  %s\n", d.Name, d.ActiveRule, d.Entry, d.Container)
	}
}
