// Package dispatcher executes resolved command strings: && chains,
// built-ins and the external process fallback.
package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/doeshing/nlterm/internal/application/builtins"
	"github.com/doeshing/nlterm/internal/domain"
	"github.com/doeshing/nlterm/internal/pkg/logger"
	"github.com/doeshing/nlterm/internal/ports"
)

// Dispatcher runs commands against one session.
type Dispatcher struct {
	Registry *builtins.Registry
	Runner   ports.ProcessRunner
	Env      *builtins.Env
	Logger   ports.Logger
	// Timeout is only used to word the timeout error; the runner enforces it.
	Timeout time.Duration
}

// New wires a dispatcher. A nil logger discards output.
func New(registry *builtins.Registry, runner ports.ProcessRunner, env *builtins.Env, log ports.Logger, timeout time.Duration) *Dispatcher {
	if log == nil {
		log = logger.Nop()
	}
	if timeout <= 0 {
		timeout = domain.DefaultCommandTimeout
	}
	return &Dispatcher{Registry: registry, Runner: runner, Env: env, Logger: log, Timeout: timeout}
}

// Execute runs command, which must already be translated. Chains stop at the
// first segment with a nonzero exit status.
func (d *Dispatcher) Execute(ctx context.Context, command string) domain.CommandResult {
	command = strings.TrimSpace(command)
	if command == "" {
		return domain.CommandResult{}
	}
	if !strings.Contains(command, domain.ChainDelimiter) {
		return d.segment(ctx, command)
	}

	var out []string
	for i, seg := range strings.Split(command, domain.ChainDelimiter) {
		step := i + 1
		res := d.segment(ctx, strings.TrimSpace(seg))
		if res.Output != "" {
			out = append(out, fmt.Sprintf("Step %d: %s", step, res.Output))
		}
		if res.ExitCode != 0 {
			out = append(out, fmt.Sprintf("Command failed with exit code %d", res.ExitCode))
			d.Logger.Debug("chain stopped", map[string]interface{}{
				"step":      step,
				"exit_code": res.ExitCode,
			})
			return domain.CommandResult{
				Output:   strings.Join(out, "\n"),
				ExitCode: res.ExitCode,
				Error:    fmt.Sprintf("Command chain failed at step %d", step),
			}
		}
	}
	return domain.CommandResult{Output: strings.Join(out, "\n")}
}

func (d *Dispatcher) segment(ctx context.Context, seg string) domain.CommandResult {
	fields := strings.Fields(seg)
	if len(fields) == 0 {
		return domain.CommandResult{}
	}
	name := strings.ToLower(fields[0])

	if d.Registry != nil {
		if b, ok := d.Registry.Lookup(name); ok {
			d.Logger.Debug("builtin", map[string]interface{}{"name": name, "args": fields[1:]})
			out, code := d.invoke(ctx, name, b, fields[1:])
			return domain.CommandResult{Output: out, ExitCode: code}
		}
	}
	return d.external(ctx, seg)
}

// invoke turns a panicking built-in into an ordinary failure.
func (d *Dispatcher) invoke(ctx context.Context, name string, b builtins.Builtin, args []string) (out string, code int) {
	defer func() {
		if r := recover(); r != nil {
			d.Logger.Error("builtin panicked", fmt.Errorf("%v", r), map[string]interface{}{"name": name})
			out = fmt.Sprintf("Error executing %s: %v", name, r)
			code = 1
		}
	}()
	return b(ctx, d.Env, args)
}

func (d *Dispatcher) external(ctx context.Context, seg string) domain.CommandResult {
	if d.Runner == nil {
		return domain.CommandResult{
			Output:   fmt.Sprintf("%s: command not found", strings.Fields(seg)[0]),
			ExitCode: 127,
		}
	}
	dir := ""
	if d.Env != nil && d.Env.Session != nil {
		dir = d.Env.Session.CurrentPath()
	}
	d.Logger.Debug("external", map[string]interface{}{"command": seg, "dir": dir})

	res := d.Runner.Run(ctx, seg, dir)
	switch {
	case res.TimedOut:
		return domain.CommandResult{
			Output:   "Command timed out",
			ExitCode: 1,
			Error:    fmt.Sprintf("command timed out after %s", d.Timeout),
		}
	case res.Err != nil && !errors.Is(res.Err, context.Canceled):
		return domain.CommandResult{
			Output:   fmt.Sprintf("Error executing command: %v", res.Err),
			ExitCode: 1,
			Error:    res.Err.Error(),
		}
	}
	return domain.CommandResult{
		Output:   strings.TrimRight(res.Output, "\n"),
		ExitCode: res.ExitCode,
	}
}
