package dispatcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/doeshing/nlterm/internal/application/builtins"
	"github.com/doeshing/nlterm/internal/domain"
	"github.com/doeshing/nlterm/internal/infrastructure/fsys"
	"github.com/doeshing/nlterm/internal/pkg/logger"
)

// fakeRunner fails every command named false_cmd and records what ran.
type fakeRunner struct {
	ran    []string
	dirs   []string
	result *domain.ProcessResult
}

func (f *fakeRunner) Run(_ context.Context, command, dir string) domain.ProcessResult {
	f.ran = append(f.ran, command)
	f.dirs = append(f.dirs, dir)
	if f.result != nil {
		return *f.result
	}
	if command == "false_cmd" {
		return domain.ProcessResult{Output: "", ExitCode: 2}
	}
	return domain.ProcessResult{Output: "external: " + command + "\n"}
}

func (f *fakeRunner) LookPath(string) (string, error) { return "", errors.New("nope") }
func (f *fakeRunner) LookAll(string) []string        { return nil }

func newDispatcher(t *testing.T) (*Dispatcher, *fakeRunner) {
	t.Helper()
	root := t.TempDir()
	runner := &fakeRunner{}
	env := &builtins.Env{
		Session: domain.NewSession(root, root),
		FS:      fsys.New(),
		Runner:  runner,
	}
	return New(builtins.NewRegistry(), runner, env, nil, 0), runner
}

func TestExecuteBuiltin(t *testing.T) {
	d, runner := newDispatcher(t)
	res := d.Execute(context.Background(), "echo hi")
	assert.Equal(t, domain.CommandResult{Output: "hi"}, res)
	assert.Empty(t, runner.ran)
}

func TestBuiltinNamesAreCaseInsensitive(t *testing.T) {
	d, runner := newDispatcher(t)
	res := d.Execute(context.Background(), "PWD")
	assert.Equal(t, d.Env.Session.CurrentPath(), res.Output)
	assert.Empty(t, runner.ran)
}

func TestExternalUsesCursor(t *testing.T) {
	d, runner := newDispatcher(t)
	require.NoError(t, os.Mkdir(filepath.Join(d.Env.Session.CurrentPath(), "sub"), 0o755))
	d.Execute(context.Background(), "cd sub")

	res := d.Execute(context.Background(), "uname -a")
	assert.Equal(t, "external: uname -a", res.Output)
	assert.Equal(t, 0, res.ExitCode)
	require.Len(t, runner.dirs, 1)
	assert.Equal(t, filepath.Join(d.Env.Session.Home(), "sub"), runner.dirs[0])
}

func TestChainLabelsSteps(t *testing.T) {
	d, _ := newDispatcher(t)
	res := d.Execute(context.Background(), "mkdir demo && echo done")
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "Step 1: Created directory: demo\nStep 2: done", res.Output)
	assert.Empty(t, res.Error)
}

func TestChainShortCircuits(t *testing.T) {
	d, runner := newDispatcher(t)
	res := d.Execute(context.Background(), "false_cmd && ls")
	assert.Equal(t, 2, res.ExitCode)
	assert.Equal(t, "Command chain failed at step 1", res.Error)
	assert.Equal(t, "Command failed with exit code 2", res.Output)
	assert.Equal(t, []string{"false_cmd"}, runner.ran)
}

func TestChainFailureMidway(t *testing.T) {
	d, runner := newDispatcher(t)
	res := d.Execute(context.Background(), "echo one && cd missing && echo never")
	assert.Equal(t, 1, res.ExitCode)
	assert.Equal(t, "Command chain failed at step 2", res.Error)
	assert.Equal(t, "Step 1: one\nStep 2: cd: missing: No such file or directory\nCommand failed with exit code 1", res.Output)
	assert.Empty(t, runner.ran)
}

func TestTimeout(t *testing.T) {
	d, runner := newDispatcher(t)
	runner.result = &domain.ProcessResult{ExitCode: 1, TimedOut: true}
	res := d.Execute(context.Background(), "sleep 100")
	assert.Equal(t, domain.CommandResult{
		Output:   "Command timed out",
		ExitCode: 1,
		Error:    "command timed out after 30s",
	}, res)
}

func TestLaunchFailure(t *testing.T) {
	d, runner := newDispatcher(t)
	runner.result = &domain.ProcessResult{ExitCode: 1, Err: errors.New("exec: no shell")}
	res := d.Execute(context.Background(), "anything")
	assert.Equal(t, 1, res.ExitCode)
	assert.Equal(t, "Error executing command: exec: no shell", res.Output)
}

func TestBuiltinPanicIsRecovered(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	d, _ := newDispatcher(t)
	d.Logger = logger.Wrap(zap.New(core))
	d.Registry = builtins.NewRegistry()
	d.Env.FS = nil // ls dereferences the filesystem

	res := d.Execute(context.Background(), "ls")
	assert.Equal(t, 1, res.ExitCode)
	assert.Contains(t, res.Output, "Error executing ls: ")
	assert.Equal(t, 1, logs.FilterMessage("builtin panicked").Len())
}

func TestEmptyCommand(t *testing.T) {
	d, runner := newDispatcher(t)
	assert.Equal(t, domain.CommandResult{}, d.Execute(context.Background(), "   "))
	assert.Empty(t, runner.ran)
}

func TestTimeoutWording(t *testing.T) {
	d := New(nil, nil, nil, nil, 5*time.Second)
	assert.Equal(t, 5*time.Second, d.Timeout)
	res := d.Execute(context.Background(), "whatever --flag")
	assert.Equal(t, 127, res.ExitCode)
}
