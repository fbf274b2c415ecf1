package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/doeshing/nlterm/internal/domain"
	"github.com/doeshing/nlterm/internal/ports"
)

var (
	accent  = lipgloss.Color("#8BC34A")
	info    = lipgloss.Color("#2196F3")
	danger  = lipgloss.Color("#e53935")
	muted   = lipgloss.Color("#9e9e9e")
	warning = lipgloss.Color("#FFC107")
)

// Rich styles output for an interactive terminal.
type Rich struct {
	user        lipgloss.Style
	path        lipgloss.Style
	translation lipgloss.Style
	errorStyle  lipgloss.Style
	banner      lipgloss.Style
	exitCode    lipgloss.Style
	markdown    *glamour.TermRenderer
}

// NewRich builds the styles once. Markdown rendering is skipped if glamour
// cannot initialise.
func NewRich() *Rich {
	md, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		md = nil
	}
	return &Rich{
		user:        lipgloss.NewStyle().Foreground(accent).Bold(true),
		path:        lipgloss.NewStyle().Foreground(info).Bold(true),
		translation: lipgloss.NewStyle().Foreground(warning).Italic(true),
		errorStyle:  lipgloss.NewStyle().Foreground(danger).Bold(true),
		banner: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 2),
		exitCode: lipgloss.NewStyle().Foreground(muted),
		markdown: md,
	}
}

func (r *Rich) Banner(w io.Writer, text string) {
	fmt.Fprintln(w, r.banner.Render(text))
}

func (r *Rich) Prompt(user, path string) string {
	return r.user.Render(user+"@nlterm") + ":" + r.path.Render(path) + "$ "
}

func (r *Rich) Result(w io.Writer, res domain.CommandResult) {
	if res.AITranslation != "" {
		fmt.Fprintln(w, r.translation.Render("-> "+res.AITranslation))
	}
	if res.Output != "" {
		if res.Succeeded() {
			fmt.Fprintln(w, res.Output)
		} else {
			fmt.Fprintln(w, r.errorStyle.Render(res.Output))
		}
	}
	if res.Error != "" {
		fmt.Fprintln(w, r.exitCode.Render(fmt.Sprintf("[exit %d] %s", res.ExitCode, res.Error)))
	}
}

func (r *Rich) Translation(w io.Writer, original, translated string) {
	fmt.Fprintln(w, r.exitCode.Render(original))
	fmt.Fprintln(w, r.translation.Render("-> "+translated))
}

// Help renders text as a markdown code block so column alignment survives.
func (r *Rich) Help(w io.Writer, text string) {
	if r.markdown == nil {
		fmt.Fprintln(w, text)
		return
	}
	out, err := r.markdown.Render("```\n" + text + "\n```\n")
	if err != nil {
		fmt.Fprintln(w, text)
		return
	}
	fmt.Fprint(w, strings.TrimLeft(out, "\n"))
}

func (r *Rich) Error(w io.Writer, msg string) {
	fmt.Fprintln(w, r.errorStyle.Render("error: "+msg))
}

var _ ports.Formatter = (*Rich)(nil)
