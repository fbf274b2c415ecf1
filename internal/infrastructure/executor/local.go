// Package executor runs external commands for the dispatcher.
package executor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/doeshing/nlterm/internal/domain"
	"github.com/doeshing/nlterm/internal/ports"
)

// LocalExecutor runs commands on the host shell.
type LocalExecutor struct {
	shell   string
	timeout time.Duration
}

// NewLocalExecutor builds a new executor. shell defaults to /bin/sh and a
// non-positive timeout to domain.DefaultCommandTimeout.
func NewLocalExecutor(shell string, timeout time.Duration) *LocalExecutor {
	if shell == "" {
		shell = "/bin/sh"
	}
	if timeout <= 0 {
		timeout = domain.DefaultCommandTimeout
	}
	return &LocalExecutor{shell: shell, timeout: timeout}
}

// Shell returns the interpreter commands run under.
func (e *LocalExecutor) Shell() string {
	return e.shell
}

// Timeout returns the per-command limit.
func (e *LocalExecutor) Timeout() time.Duration {
	return e.timeout
}

// Run implements ports.ProcessRunner.
func (e *LocalExecutor) Run(ctx context.Context, command, dir string) domain.ProcessResult {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	c := exec.CommandContext(ctx, e.shell, "-c", command)
	c.Dir = dir
	// Children that inherit the pipe must not keep Wait blocked past the deadline.
	c.WaitDelay = time.Second
	var out bytes.Buffer
	c.Stdout = &out
	c.Stderr = &out

	err := c.Run()
	result := domain.ProcessResult{Output: out.String()}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		result.ExitCode = 1
		result.TimedOut = true
		result.Err = ctx.Err()
		return result
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		if result.ExitCode < 0 {
			result.ExitCode = 1
		}
		return result
	}
	if err != nil {
		result.ExitCode = 1
		result.Err = err
	}
	return result
}

// LookPath implements ports.ProcessRunner.
func (e *LocalExecutor) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// LookAll returns every executable named name on PATH, in PATH order.
func (e *LocalExecutor) LookAll(name string) []string {
	var found []string
	seen := map[string]bool{}
	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name)
		if seen[candidate] {
			continue
		}
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() || info.Mode()&0o111 == 0 {
			continue
		}
		seen[candidate] = true
		found = append(found, candidate)
	}
	return found
}

var _ ports.ProcessRunner = (*LocalExecutor)(nil)
