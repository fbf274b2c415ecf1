package builtins

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/doeshing/nlterm/internal/domain"
)

// HelpText is what the help built-in prints.
const HelpText = `nlterm commands

File operations:
  ls [path]              List directory contents
  pwd                    Print working directory
  cd [path]              Change directory (no argument returns home)
  mkdir <dir>...         Create directories
  rm [-r] <path>...      Remove files, or directories with -r
  rmdir <dir>...         Remove empty directories
  touch <file>...        Create or update files
  cat <file>...          Display file contents
  cp [-r] <src>... <dst> Copy files or directories
  mv <src>... <dst>      Move or rename
  find <text> [dir]      Find entries whose name contains text
  grep [-i] <text> [path] Search file contents
  which <name>...        Locate a command
  whereis <name>...      Locate every copy of a command
  du [path]...           Show disk usage of paths
  echo <text>            Print text

System information:
  ps                     Show running processes
  free                   Show memory usage
  df [path]              Show disk usage
  uptime                 Show system uptime
  cpu                    Show CPU usage
  system_info            Show detailed system information
  whoami                 Show current user
  date                   Show current date and time

Natural language:
  "create a folder called test"
  "show me my files"
  "what's my memory usage"
  "create a new folder called test and move file1.txt into it"

Utilities:
  history [N] [-a] [-s term]  Show command history
  help                   Show this help message
  clear                  Clear screen

Commands may be chained with &&. Anything else runs through the system shell.`

// showHistory implements history [N] [-a|--all] [-s term|--search=term].
func showHistory(_ context.Context, env *Env, args []string) (string, int) {
	q := domain.HistoryQuery{Limit: env.historyLimit()}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-a" || arg == "--all":
			q.All = true
		case strings.HasPrefix(arg, "--search=") || strings.HasPrefix(arg, "-s="):
			q.Search = arg[strings.IndexByte(arg, '=')+1:]
		case arg == "-s" || arg == "--search":
			if i+1 >= len(args) {
				return fmt.Sprintf("history: %s requires an argument", arg), 1
			}
			i++
			q.Search = args[i]
		default:
			n, err := strconv.Atoi(arg)
			if err != nil || n <= 0 {
				return fmt.Sprintf("history: invalid argument '%s'", arg), 1
			}
			q.Limit = n
		}
	}

	entries := env.Session.History(q)
	if len(entries) == 0 {
		if q.Search != "" {
			return fmt.Sprintf("No commands in history matching '%s'", q.Search), 0
		}
		return "No commands in history", 0
	}
	out := make([]string, 0, len(entries))
	for i, entry := range entries {
		out = append(out, fmt.Sprintf("%4d  %s", i+1, entry))
	}
	return strings.Join(out, "\n"), 0
}

func showHelp(context.Context, *Env, []string) (string, int) {
	return HelpText, 0
}

// clearScreen produces no output; interactive hosts clear the display
// themselves when they see the command.
func clearScreen(context.Context, *Env, []string) (string, int) {
	return "", 0
}
