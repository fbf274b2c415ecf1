// Package cli wires the cobra command tree and the interactive shell.
package cli

import (
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/doeshing/nlterm/internal/app"
	"github.com/doeshing/nlterm/internal/infrastructure/cli/commands"
	"github.com/doeshing/nlterm/internal/infrastructure/cli/format"
	"github.com/doeshing/nlterm/internal/pkg/filesystem"
)

// NewRootCmd wires the cobra root command. Running it without a subcommand
// starts the interactive shell.
func NewRootCmd(lazy *app.Lazy) *cobra.Command {
	shellCmd := newShellCommand(lazy)

	root := &cobra.Command{
		Use:   "nlterm",
		Short: "nlterm - a terminal that understands plain English",
		Long: "nlterm runs shell-like built-ins over your filesystem and translates " +
			"natural language phrases such as \"create a folder called demo\" into commands.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, lazy)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&lazy.Options.ConfigPath, "config", lazy.Options.ConfigPath, "Config file (default ~/.nlterm/config.yaml)")
	root.PersistentFlags().BoolVarP(&lazy.Options.Verbose, "verbose", "v", lazy.Options.Verbose, "Enable debug logging")

	root.AddCommand(
		shellCmd,
		commands.NewTranslateCommand(lazy),
		commands.NewExecCommand(lazy),
		commands.NewServeCommand(lazy),
		commands.NewHistoryCommand(lazy),
		commands.NewDoctorCommand(lazy),
		commands.NewConfigCommand(lazy),
		commands.NewVersionCommand(),
	)
	return root
}

func newShellCommand(lazy *app.Lazy) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, lazy)
		},
	}
}

func runShell(cmd *cobra.Command, lazy *app.Lazy) error {
	container, err := lazy.Get(cmd.Context())
	if err != nil {
		return err
	}
	shell := &Shell{
		Term:      container.NewTerminal(uuid.NewString()),
		Formatter: format.Select(container.Config.GetRichMode(), os.Stdout),
		FS:        container.FileSystem,
		Out:       cmd.OutOrStdout(),
		Home:      container.Home,
		User:      container.User,
		Banner:    container.Config.Shell.Banner,
	}
	historyFile := ""
	if container.Config.Shell.HistoryFile != "" {
		historyFile = filesystem.ExpandPath(container.Config.Shell.HistoryFile)
	}
	return shell.Run(cmd.Context(), historyFile)
}
