package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chzyer/readline"

	"github.com/doeshing/nlterm/internal/application/terminal"
	"github.com/doeshing/nlterm/internal/pkg/filesystem"
	"github.com/doeshing/nlterm/internal/ports"
)

const (
	bannerText = "# nlterm\n\nType `help` for available commands or `exit` to quit.\n" +
		"Try `translate create a folder called demo` to run plain English."
	msgUseExit  = "Use 'exit' to quit the terminal."
	msgGoodbye  = "Goodbye!"
	clearScreen = "\033[H\033[2J"
)

// replWords are handled by the shell itself rather than the terminal.
var replWords = []string{"exit", "quit", "translate"}

// Shell is the interactive loop around one terminal session.
type Shell struct {
	Term      *terminal.Service
	Formatter ports.Formatter
	FS        ports.FileSystem
	Out       io.Writer
	Home      string
	User      string
	Banner    bool
}

// Run reads lines until exit, quit or EOF. historyFile may be empty.
func (s *Shell) Run(ctx context.Context, historyFile string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.prompt(),
		HistoryFile:     historyFile,
		AutoComplete:    &Completer{Term: s.Term, FS: s.FS},
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdout:          s.Out,
	})
	if err != nil {
		return fmt.Errorf("init readline: %w", err)
	}
	defer rl.Close()

	if s.Banner {
		s.Formatter.Banner(s.Out, bannerText)
	}

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			fmt.Fprintln(s.Out, msgUseExit)
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(s.Out, msgGoodbye)
			return nil
		}
		if err != nil {
			return err
		}
		if s.Handle(ctx, line) {
			fmt.Fprintln(s.Out, msgGoodbye)
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		rl.SetPrompt(s.prompt())
	}
}

// Handle runs one input line and reports whether the shell should stop.
func (s *Shell) Handle(ctx context.Context, line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}
	name, rest := splitFirst(input)

	switch strings.ToLower(name) {
	case "exit", "quit":
		return true
	case "translate":
		if rest == "" {
			s.Formatter.Error(s.Out, "translate: missing text")
			return false
		}
		s.Formatter.Result(s.Out, s.Term.Execute(ctx, rest, true))
	case "help":
		res := s.Term.Execute(ctx, input, false)
		if res.ExitCode == 0 {
			s.Formatter.Help(s.Out, res.Output)
		} else {
			s.Formatter.Result(s.Out, res)
		}
	case "clear":
		res := s.Term.Execute(ctx, input, false)
		if res.ExitCode == 0 {
			fmt.Fprint(s.Out, clearScreen)
		} else {
			s.Formatter.Result(s.Out, res)
		}
	default:
		s.Formatter.Result(s.Out, s.Term.Execute(ctx, input, false))
	}
	return false
}

func (s *Shell) prompt() string {
	return s.Formatter.Prompt(s.User, displayPath(s.Home, s.Term.CurrentPath()))
}

// displayPath abbreviates paths under home with "~".
func displayPath(home, path string) string {
	if home == "" {
		return path
	}
	if path == home {
		return "~"
	}
	rel, err := filepath.Rel(home, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return "~/" + filepath.ToSlash(rel)
}

func splitFirst(input string) (string, string) {
	fields := strings.SplitN(input, " ", 2)
	if len(fields) == 1 {
		return fields[0], ""
	}
	return fields[0], strings.TrimSpace(fields[1])
}

// Completer completes command names in first position and entries of the
// session directory afterwards.
type Completer struct {
	Term *terminal.Service
	FS   ports.FileSystem
}

// Do implements readline.AutoCompleter.
func (c *Completer) Do(line []rune, pos int) ([][]rune, int) {
	before := string(line[:pos])
	word := before
	if i := strings.LastIndexAny(before, " \t"); i >= 0 {
		word = before[i+1:]
	}
	first := strings.TrimSpace(before) == word || strings.TrimSpace(before) == ""

	var candidates []string
	prefix := word
	if first {
		candidates = append(append([]string{}, c.Term.Builtins()...), replWords...)
	} else {
		var dirPart string
		dirPart, prefix = splitPathWord(word)
		candidates = c.entries(dirPart)
	}
	sort.Strings(candidates)

	var out [][]rune
	for _, cand := range candidates {
		if strings.HasPrefix(cand, prefix) && cand != prefix {
			out = append(out, []rune(cand[len(prefix):]))
		}
	}
	return out, len([]rune(prefix))
}

// entries lists dirPart (relative to the session directory), marking
// directories with a trailing slash.
func (c *Completer) entries(dirPart string) []string {
	if c.FS == nil {
		return nil
	}
	dir := c.Term.CurrentPath()
	if dirPart != "" {
		expanded := filesystem.ExpandPath(dirPart)
		if filepath.IsAbs(expanded) {
			dir = expanded
		} else {
			dir = filepath.Join(dir, expanded)
		}
	}
	list, err := c.FS.ReadDir(dir)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(list))
	for _, entry := range list {
		name := entry.Name()
		if entry.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}
	return names
}

// splitPathWord splits "a/b/fi" into ("a/b/", "fi").
func splitPathWord(word string) (string, string) {
	i := strings.LastIndex(word, "/")
	if i < 0 {
		return "", word
	}
	return word[:i+1], word[i+1:]
}
