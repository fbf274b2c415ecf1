package builtins

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

func pwd(_ context.Context, env *Env, _ []string) (string, int) {
	return env.Session.CurrentPath(), 0
}

func echo(_ context.Context, _ *Env, args []string) (string, int) {
	return strings.Join(args, " "), 0
}

func ls(_ context.Context, env *Env, args []string) (string, int) {
	_, operands := splitFlags(args)
	target := operand{display: ".", path: env.Session.CurrentPath()}
	if len(operands) > 0 {
		target = resolve(env, operands[:1])[0]
	}

	info, err := env.FS.Stat(target.path)
	if err != nil {
		return fmt.Sprintf("ls: cannot access '%s': %s", target.display, describe(err)), 1
	}
	if !info.IsDir() {
		return target.display, 0
	}

	entries, err := env.FS.ReadDir(target.path)
	if err != nil {
		return fmt.Sprintf("ls: cannot open directory '%s': %s", target.display, describe(err)), 1
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, "\n"), 0
}

// cd only moves the cursor once the target is known to be a directory.
func cd(_ context.Context, env *Env, args []string) (string, int) {
	if len(args) == 0 {
		env.Session.SetCurrentPath(env.Session.Home())
		return "", 0
	}
	target := env.Session.Resolve(args[0])
	info, err := env.FS.Stat(target)
	if err != nil {
		return fmt.Sprintf("cd: %s: %s", args[0], describe(err)), 1
	}
	if !info.IsDir() {
		return fmt.Sprintf("cd: %s: Not a directory", args[0]), 1
	}
	env.Session.SetCurrentPath(target)
	return "", 0
}

func mkdir(_ context.Context, env *Env, args []string) (string, int) {
	_, operands := splitFlags(args)
	if len(operands) == 0 {
		return "mkdir: missing operand", 1
	}
	var out []string
	failed := false
	for _, op := range resolve(env, operands) {
		if _, err := env.FS.Stat(op.path); err == nil {
			out = append(out, fmt.Sprintf("mkdir: cannot create directory '%s': File exists", op.display))
			failed = true
			continue
		}
		if err := env.FS.MkdirAll(op.path); err != nil {
			out = append(out, fmt.Sprintf("mkdir: cannot create directory '%s': %s", op.display, describe(err)))
			failed = true
			continue
		}
		out = append(out, fmt.Sprintf("Created directory: %s", op.display))
	}
	return lines(out, failed)
}

func rm(_ context.Context, env *Env, args []string) (string, int) {
	flags, operands := splitFlags(args)
	if len(operands) == 0 {
		return "rm: missing operand", 1
	}
	recursive := strings.ContainsAny(flags, "rR")
	force := strings.Contains(flags, "f")

	var out []string
	failed := false
	for _, op := range expand(env, operands) {
		info, err := env.FS.Stat(op.path)
		if err != nil {
			if force && isNotExist(err) {
				continue
			}
			out = append(out, rmFailure(op.display, err))
			failed = true
			continue
		}
		if info.IsDir() {
			if !recursive {
				out = append(out, fmt.Sprintf("rm: cannot remove '%s': Is a directory", op.display))
				failed = true
				continue
			}
			if err := env.FS.RemoveAll(op.path); err != nil {
				out = append(out, rmFailure(op.display, err))
				failed = true
				continue
			}
			out = append(out, fmt.Sprintf("Removed directory: %s", op.display))
			continue
		}
		if err := env.FS.Remove(op.path); err != nil {
			out = append(out, rmFailure(op.display, err))
			failed = true
			continue
		}
		out = append(out, fmt.Sprintf("Removed file: %s", op.display))
	}
	return lines(out, failed)
}

// rmFailure keeps missing, permission and other errors distinguishable.
func rmFailure(name string, err error) string {
	switch {
	case isNotExist(err):
		return fmt.Sprintf("rm: cannot remove '%s': No such file or directory", name)
	case isPermission(err):
		return fmt.Sprintf("rm: cannot remove '%s': Permission denied", name)
	default:
		return fmt.Sprintf("rm: error removing '%s': %s", name, describe(err))
	}
}

func rmdir(_ context.Context, env *Env, args []string) (string, int) {
	_, operands := splitFlags(args)
	if len(operands) == 0 {
		return "rmdir: missing operand", 1
	}
	var out []string
	failed := false
	for _, op := range resolve(env, operands) {
		info, err := env.FS.Stat(op.path)
		if err != nil {
			out = append(out, fmt.Sprintf("rmdir: failed to remove '%s': %s", op.display, describe(err)))
			failed = true
			continue
		}
		if !info.IsDir() {
			out = append(out, fmt.Sprintf("rmdir: failed to remove '%s': Not a directory", op.display))
			failed = true
			continue
		}
		entries, err := env.FS.ReadDir(op.path)
		if err == nil && len(entries) > 0 {
			out = append(out, fmt.Sprintf("rmdir: failed to remove '%s': Directory not empty", op.display))
			failed = true
			continue
		}
		if err := env.FS.Remove(op.path); err != nil {
			out = append(out, fmt.Sprintf("rmdir: failed to remove '%s': %s", op.display, describe(err)))
			failed = true
			continue
		}
		out = append(out, fmt.Sprintf("Removed directory: %s", op.display))
	}
	return lines(out, failed)
}

func touch(_ context.Context, env *Env, args []string) (string, int) {
	_, operands := splitFlags(args)
	if len(operands) == 0 {
		return "touch: missing file operand", 1
	}
	var out []string
	failed := false
	for _, op := range resolve(env, operands) {
		_, statErr := env.FS.Stat(op.path)
		if err := env.FS.Touch(op.path); err != nil {
			out = append(out, fmt.Sprintf("touch: cannot touch '%s': %s", op.display, describe(err)))
			failed = true
			continue
		}
		if statErr == nil {
			out = append(out, fmt.Sprintf("Updated file: %s", op.display))
		} else {
			out = append(out, fmt.Sprintf("Created file: %s", op.display))
		}
	}
	return lines(out, failed)
}

func cat(_ context.Context, env *Env, args []string) (string, int) {
	_, operands := splitFlags(args)
	if len(operands) == 0 {
		return "cat: missing file operand", 1
	}
	var b strings.Builder
	var errs []string
	for _, op := range expand(env, operands) {
		info, err := env.FS.Stat(op.path)
		if err == nil && info.IsDir() {
			errs = append(errs, fmt.Sprintf("cat: %s: Is a directory", op.display))
			continue
		}
		data, err := env.FS.ReadFile(op.path)
		if err != nil {
			errs = append(errs, fmt.Sprintf("cat: %s: %s", op.display, describe(err)))
			continue
		}
		b.Write(data)
	}
	if len(errs) > 0 {
		if b.Len() > 0 {
			errs = append([]string{strings.TrimRight(b.String(), "\n")}, errs...)
		}
		return strings.Join(errs, "\n"), 1
	}
	return b.String(), 0
}

func cp(_ context.Context, env *Env, args []string) (string, int) {
	flags, operands := splitFlags(args)
	recursive := strings.ContainsAny(flags, "rRa")
	spec := transferSpec{name: "cp", action: "copy", verb: "Copied", allowDirs: recursive}
	return transfer(env, spec, operands, func(src, dst string) error {
		return env.FS.Copy(src, dst, recursive)
	})
}

func mv(_ context.Context, env *Env, args []string) (string, int) {
	_, operands := splitFlags(args)
	spec := transferSpec{name: "mv", action: "move", verb: "Moved", allowDirs: true}
	return transfer(env, spec, operands, env.FS.Move)
}

type transferSpec struct {
	name      string
	action    string
	verb      string
	allowDirs bool
}

// transfer implements the shared cp/mv operand handling: the last operand is
// the destination and an existing directory receives the sources by name.
func transfer(env *Env, spec transferSpec, operands []string, op func(src, dst string) error) (string, int) {
	name := spec.name
	switch len(operands) {
	case 0:
		return fmt.Sprintf("%s: missing file operand", name), 1
	case 1:
		return fmt.Sprintf("%s: missing destination file operand after '%s'", name, operands[0]), 1
	}

	dstArg := operands[len(operands)-1]
	dst := env.Session.Resolve(dstArg)
	sources := expand(env, operands[:len(operands)-1])

	dstInfo, dstErr := env.FS.Stat(dst)
	dstIsDir := dstErr == nil && dstInfo.IsDir()
	if !dstIsDir && (len(sources) > 1 || strings.HasSuffix(dstArg, "/")) {
		return fmt.Sprintf("%s: target '%s' is not a directory", name, dstArg), 1
	}

	var out []string
	failed := false
	for _, src := range sources {
		info, err := env.FS.Stat(src.path)
		if err != nil {
			out = append(out, fmt.Sprintf("%s: cannot stat '%s': %s", name, src.display, describe(err)))
			failed = true
			continue
		}
		if info.IsDir() && !spec.allowDirs {
			out = append(out, fmt.Sprintf("%s: -r not specified; omitting directory '%s'", name, src.display))
			failed = true
			continue
		}
		target := dst
		if dstIsDir {
			target = joinBase(dst, src.path)
		}
		if target == src.path {
			out = append(out, fmt.Sprintf("%s: '%s' and '%s' are the same file", name, src.display, dstArg))
			failed = true
			continue
		}
		if err := op(src.path, target); err != nil {
			out = append(out, fmt.Sprintf("%s: cannot %s '%s' to '%s': %s", name, spec.action, src.display, dstArg, describe(err)))
			failed = true
			continue
		}
		out = append(out, fmt.Sprintf("%s %s to %s", spec.verb, src.display, dstArg))
	}
	return lines(out, failed)
}
