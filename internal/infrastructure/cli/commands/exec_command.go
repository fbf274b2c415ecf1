package commands

import (
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/doeshing/nlterm/internal/app"
	"github.com/doeshing/nlterm/internal/infrastructure/cli/format"
)

// NewExecCommand runs one line through a fresh session and exits with its
// status.
func NewExecCommand(lazy *app.Lazy) *cobra.Command {
	var natural bool

	cmd := &cobra.Command{
		Use:   "exec <command...>",
		Short: "Execute a command line (or phrase with --nl) once",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := lazy.Get(cmd.Context())
			if err != nil {
				return err
			}
			term := container.NewTerminal(uuid.NewString())
			res := term.Execute(cmd.Context(), strings.Join(args, " "), natural)
			format.Select(container.Config.GetRichMode(), outFile(cmd)).Result(cmd.OutOrStdout(), res)
			if res.ExitCode != 0 {
				return &ExitCodeError{Code: res.ExitCode}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&natural, "nl", false, "Treat the input as natural language")
	cmd.Flags().SetInterspersed(false)
	return cmd
}

// outFile returns the command's output as a file when it is one, so
// formatter selection can detect a terminal.
func outFile(cmd *cobra.Command) *os.File {
	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		return f
	}
	return nil
}
