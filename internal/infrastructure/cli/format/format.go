// Package format renders terminal results for people. Plain writes bare
// text; Rich adds lipgloss colour and glamour-rendered markdown.
package format

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/doeshing/nlterm/internal/domain"
	"github.com/doeshing/nlterm/internal/ports"
)

// Select picks the formatter for mode (auto, always, never). Auto uses Rich
// only when out is a terminal.
func Select(mode string, out *os.File) ports.Formatter {
	switch mode {
	case domain.RichAlways:
		return NewRich()
	case domain.RichNever:
		return Plain{}
	}
	if out != nil && (isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd())) {
		return NewRich()
	}
	return Plain{}
}

// Plain writes unstyled text.
type Plain struct{}

func (Plain) Banner(w io.Writer, text string) {
	fmt.Fprintln(w, text)
}

func (Plain) Prompt(user, path string) string {
	return fmt.Sprintf("%s@nlterm:%s$ ", user, path)
}

func (Plain) Result(w io.Writer, res domain.CommandResult) {
	if res.AITranslation != "" {
		fmt.Fprintf(w, "-> %s\n", res.AITranslation)
	}
	if res.Output != "" {
		fmt.Fprintln(w, res.Output)
	}
	if res.Error != "" {
		fmt.Fprintf(w, "error: %s\n", res.Error)
	}
}

func (Plain) Translation(w io.Writer, original, translated string) {
	fmt.Fprintf(w, "%s\n-> %s\n", original, translated)
}

func (Plain) Help(w io.Writer, text string) {
	fmt.Fprintln(w, text)
}

func (Plain) Error(w io.Writer, msg string) {
	fmt.Fprintf(w, "error: %s\n", msg)
}

var _ ports.Formatter = Plain{}
