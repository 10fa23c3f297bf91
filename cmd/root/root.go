package root

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	cmdAuth "github.com/BerryBytes/consolectl/cmd/auth"
	cmdDevices "github.com/BerryBytes/consolectl/cmd/devices"
	cmdMenu "github.com/BerryBytes/consolectl/cmd/menu"
	cmdPlugins "github.com/BerryBytes/consolectl/cmd/plugins"
	cmdShell "github.com/BerryBytes/consolectl/cmd/shell"
	"github.com/BerryBytes/consolectl/internal/app"
	"github.com/BerryBytes/consolectl/internal/config"
	"github.com/BerryBytes/consolectl/internal/console"
	promptutils "github.com/BerryBytes/consolectl/utils/prompt"

	"github.com/spf13/cobra"
)

type Dependencies struct {
	Console  console.Console
	Prompter promptutils.Prompter
	Shell    cmdShell.Runner
}

func NewRootCmd(deps Dependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "consolectl",
		Short:         "Platform console CLI and shell",
		Long:          `A CLI for logging in to the platform console, running its administrative calls and serving the console shell.`,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Println("No subcommand provided. Showing help...")
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(cmdAuth.NewAuthCommands(cmdAuth.AuthDependencies{Console: deps.Console, Prompter: deps.Prompter}))
	rootCmd.AddCommand(cmdMenu.NewMenuCommands(deps.Console))
	rootCmd.AddCommand(cmdPlugins.NewPluginsCommands(cmdPlugins.PluginsDependencies{Console: deps.Console, Prompter: deps.Prompter}))
	rootCmd.AddCommand(cmdDevices.NewDevicesCommands(cmdDevices.DevicesDependencies{Console: deps.Console, Prompter: deps.Prompter}))
	rootCmd.AddCommand(cmdShell.NewShellCommands(deps.Shell))

	return rootCmd
}

// Execute loads the configuration, wires the application and runs the
// command line until it finishes or the process is interrupted.
func Execute() error {
	cfg, err := config.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	application, err := app.New(cfg, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return NewRootCmd(Dependencies{
		Console:  application.Console,
		Prompter: application.Prompter,
		Shell:    application.Shell,
	}).ExecuteContext(ctx)
}
