package builtins

import (
	"context"
	"fmt"
	"io/fs"
	"strings"
	"unicode/utf8"

	"github.com/doeshing/nlterm/internal/domain"
)

// find <text> [dir]: entries whose name contains text, recursively.
func find(ctx context.Context, env *Env, args []string) (string, int) {
	_, operands := splitFlags(args)
	if len(operands) == 0 {
		return "find: missing search term", 1
	}
	term := operands[0]
	root := env.Session.CurrentPath()
	if len(operands) > 1 {
		root = env.Session.Resolve(operands[1])
	}
	if info, err := env.FS.Stat(root); err != nil || !info.IsDir() {
		return fmt.Sprintf("find: '%s': No such directory", operands[len(operands)-1]), 1
	}

	var results []string
	truncated := false
	_ = env.FS.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return fs.SkipAll
		}
		if err != nil || path == root {
			return nil
		}
		if !strings.Contains(d.Name(), term) {
			return nil
		}
		if len(results) == domain.MaxSearchResults {
			truncated = true
			return fs.SkipAll
		}
		results = append(results, relative(env.Session.CurrentPath(), path))
		return nil
	})

	if len(results) == 0 {
		return fmt.Sprintf("No files found matching '%s'", term), 0
	}
	if truncated {
		results = append(results, fmt.Sprintf("... (showing first %d results)", domain.MaxSearchResults))
	}
	return strings.Join(results, "\n"), 0
}

// grep [-i] <text> [path]: lines containing text in a file or, recursively, a directory.
// Files that cannot be read or are not valid UTF-8 are skipped.
func grep(ctx context.Context, env *Env, args []string) (string, int) {
	flags, operands := splitFlags(args)
	if len(operands) == 0 {
		return "grep: missing search pattern", 1
	}
	fold := strings.Contains(flags, "i")
	term := operands[0]
	needle := term
	if fold {
		needle = strings.ToLower(term)
	}
	root := env.Session.CurrentPath()
	if len(operands) > 1 {
		root = env.Session.Resolve(operands[1])
	}
	info, err := env.FS.Stat(root)
	if err != nil {
		return fmt.Sprintf("grep: %s: %s", operands[len(operands)-1], describe(err)), 1
	}

	var results []string
	truncated := false
	scan := func(path string) bool {
		data, err := env.FS.ReadFile(path)
		if err != nil || !utf8.Valid(data) {
			return true
		}
		for i, line := range strings.Split(string(data), "\n") {
			hay := line
			if fold {
				hay = strings.ToLower(line)
			}
			if !strings.Contains(hay, needle) {
				continue
			}
			if len(results) == domain.MaxSearchResults {
				truncated = true
				return false
			}
			results = append(results, fmt.Sprintf("%s:%d: %s", relative(env.Session.CurrentPath(), path), i+1, strings.TrimSpace(line)))
		}
		return true
	}

	if info.IsDir() {
		_ = env.FS.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if ctx.Err() != nil {
				return fs.SkipAll
			}
			if err != nil || d.IsDir() || !d.Type().IsRegular() {
				return nil
			}
			if !scan(path) {
				return fs.SkipAll
			}
			return nil
		})
	} else {
		scan(root)
	}

	if len(results) == 0 {
		return fmt.Sprintf("grep: no matches for '%s'", term), 1
	}
	if truncated {
		results = append(results, fmt.Sprintf("... (showing first %d matches)", domain.MaxSearchResults))
	}
	return strings.Join(results, "\n"), 0
}

func (r *Registry) which(_ context.Context, env *Env, args []string) (string, int) {
	if len(args) == 0 {
		return "which: missing command name", 1
	}
	var out []string
	failed := false
	for _, name := range args {
		if r.Has(name) {
			out = append(out, fmt.Sprintf("%s: shell built-in command", name))
			continue
		}
		if env.Runner == nil {
			out = append(out, fmt.Sprintf("which: no %s in PATH", name))
			failed = true
			continue
		}
		path, err := env.Runner.LookPath(name)
		if err != nil {
			out = append(out, fmt.Sprintf("which: no %s in PATH", name))
			failed = true
			continue
		}
		out = append(out, path)
	}
	return lines(out, failed)
}

func (r *Registry) whereis(_ context.Context, env *Env, args []string) (string, int) {
	if len(args) == 0 {
		return "whereis: missing command name", 1
	}
	var out []string
	for _, name := range args {
		locations := []string{}
		if r.Has(name) {
			locations = append(locations, "(built-in)")
		}
		if env.Runner != nil {
			locations = append(locations, env.Runner.LookAll(name)...)
		}
		entry := name + ":"
		if len(locations) > 0 {
			entry += " " + strings.Join(locations, " ")
		}
		out = append(out, entry)
	}
	return strings.Join(out, "\n"), 0
}

