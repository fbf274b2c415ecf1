package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/nlterm/internal/app"
	"github.com/doeshing/nlterm/internal/infrastructure/cli/format"
)

// NewTranslateCommand prints the shell command a phrase maps to without
// running it.
func NewTranslateCommand(lazy *app.Lazy) *cobra.Command {
	return &cobra.Command{
		Use:   "translate <text...>",
		Short: "Show the command a natural language phrase translates to",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := lazy.Get(cmd.Context())
			if err != nil {
				return err
			}
			text := strings.Join(args, " ")
			out := format.Select(container.Config.GetRichMode(), outFile(cmd))
			translated, ok := container.Translator.Translate(text)
			if !ok {
				out.Error(cmd.ErrOrStderr(), "could not understand: "+text)
				return &ExitCodeError{Code: 1}
			}
			out.Translation(cmd.OutOrStdout(), text, translated)
			return nil
		},
	}
}
