package builtins

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
)

// operand is a path argument as typed and as resolved.
type operand struct {
	display string
	path    string
}

// splitFlags separates leading-dash flags from operands. A lone "-" is an operand.
func splitFlags(args []string) (flags string, operands []string) {
	var b strings.Builder
	for _, arg := range args {
		if len(arg) > 1 && strings.HasPrefix(arg, "-") {
			b.WriteString(strings.TrimLeft(arg, "-"))
			continue
		}
		operands = append(operands, arg)
	}
	return b.String(), operands
}

func hasWildcard(s string) bool {
	return strings.ContainsAny(s, "*?[")
}

// resolve maps operands to absolute paths without wildcard expansion.
func resolve(env *Env, args []string) []operand {
	out := make([]operand, 0, len(args))
	for _, arg := range args {
		out = append(out, operand{display: arg, path: env.Session.Resolve(arg)})
	}
	return out
}

// expand resolves operands and expands wildcards against the cursor. A
// pattern matching nothing is kept verbatim so the caller reports it missing.
func expand(env *Env, args []string) []operand {
	var out []operand
	for _, arg := range args {
		abs := env.Session.Resolve(arg)
		if !hasWildcard(arg) {
			out = append(out, operand{display: arg, path: abs})
			continue
		}
		matches, err := env.FS.Glob(abs)
		if err != nil || len(matches) == 0 {
			out = append(out, operand{display: arg, path: abs})
			continue
		}
		dir := filepath.Dir(arg)
		for _, m := range matches {
			display := filepath.Base(m)
			if dir != "." {
				display = filepath.Join(dir, display)
			}
			out = append(out, operand{display: display, path: m})
		}
	}
	return out
}

// relative renders path relative to base, falling back to the absolute path.
func relative(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

// describe maps filesystem errors onto the messages coreutils prints.
func describe(err error) string {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "No such file or directory"
	case errors.Is(err, fs.ErrPermission):
		return "Permission denied"
	case errors.Is(err, fs.ErrExist):
		return "File exists"
	default:
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return pathErr.Err.Error()
		}
		return err.Error()
	}
}

// lines joins output lines and converts the failure flag into an exit code.
func lines(out []string, failed bool) (string, int) {
	code := 0
	if failed {
		code = 1
	}
	return strings.Join(out, "\n"), code
}

// joinBase places src inside dir under its own name.
func joinBase(dir, src string) string {
	return filepath.Join(dir, filepath.Base(src))
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func isPermission(err error) bool {
	return errors.Is(err, fs.ErrPermission)
}
