package shell

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// Runner serves the shell until the context is cancelled.
type Runner interface {
	Run(ctx context.Context, addr string) error
}

func NewShellCommands(runner Runner) *cobra.Command {
	shellCmd := &cobra.Command{
		Use:   "shell",
		Short: "Run the console shell",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return nil
		},
	}

	shellCmd.AddCommand(ServeCmd(runner))
	return shellCmd
}

func ServeCmd(runner Runner) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout, login page and sub-application routes over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			listen, err := cmd.Flags().GetString("listen")
			if err != nil {
				return fmt.Errorf("could not get listen flag: %w", err)
			}
			if err := runner.Run(cmd.Context(), listen); err != nil {
				return fmt.Errorf("shell stopped: %w", err)
			}
			return nil
		},
	}

	serveCmd.Flags().StringP("listen", "l", "", "Listen address (defaults to shell.listen_addr)")
	return serveCmd
}
