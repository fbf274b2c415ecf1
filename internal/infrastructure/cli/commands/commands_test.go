package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/nlterm/internal/app"
	"github.com/doeshing/nlterm/internal/application/builtins"
	"github.com/doeshing/nlterm/internal/application/doctor"
	"github.com/doeshing/nlterm/internal/application/translator"
	"github.com/doeshing/nlterm/internal/domain"
	"github.com/doeshing/nlterm/internal/infrastructure/config"
	"github.com/doeshing/nlterm/internal/infrastructure/executor"
	"github.com/doeshing/nlterm/internal/infrastructure/fsys"
	"github.com/doeshing/nlterm/internal/infrastructure/history"
	"github.com/doeshing/nlterm/internal/pkg/logger"
)

func newTestContainer(t *testing.T) (*app.Container, *history.FileStore) {
	t.Helper()
	dir := t.TempDir()
	loader := config.NewFileLoader(filepath.Join(dir, "config.yaml"))
	cfg, err := loader.Load(context.Background())
	require.NoError(t, err)
	cfg.UI.Rich = domain.RichNever
	cfg.Shell.StartDir = dir

	store := history.NewFileStore(filepath.Join(dir, "history.jsonl"))
	return &app.Container{
		Config:         cfg,
		ConfigProvider: loader,
		ConfigLoader:   loader,
		Logger:         logger.Nop(),
		FileSystem:     fsys.New(),
		Runner:         executor.NewLocalExecutor("", time.Second),
		HistoryStore:   store,
		Translator:     translator.NewDefault(),
		Registry:       builtins.NewRegistry(),
		Home:           dir,
		User:           "tester",
	}, store
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, NewVersionCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "nlterm version")
	assert.Contains(t, out, "Go version")
}

func TestTranslateCommand(t *testing.T) {
	c, _ := newTestContainer(t)
	lazy := app.Preloaded(c)

	out, err := run(t, NewTranslateCommand(lazy), "create", "a", "folder", "called", "demo")
	require.NoError(t, err)
	assert.Contains(t, out, "-> mkdir demo")

	_, err = run(t, NewTranslateCommand(lazy), "xyzzy", "nonsense")
	var exitErr *ExitCodeError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.Code)
}

func TestExecCommandPropagatesExitCode(t *testing.T) {
	c, store := newTestContainer(t)
	lazy := app.Preloaded(c)

	out, err := run(t, NewExecCommand(lazy), "--nl", "create", "a", "folder", "called", "demo")
	require.NoError(t, err)
	assert.Contains(t, out, "Created directory: demo")
	_, statErr := os.Stat(filepath.Join(c.Home, "demo"))
	assert.NoError(t, statErr)

	_, err = run(t, NewExecCommand(lazy), "cd", "missing")
	var exitErr *ExitCodeError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.Code)

	records, err := store.Records(10, "")
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestHistoryListAndStats(t *testing.T) {
	c, store := newTestContainer(t)
	lazy := app.Preloaded(c)

	out, err := run(t, NewHistoryCommand(lazy), "list")
	require.NoError(t, err)
	assert.Contains(t, out, MsgNoHistoryRecorded)

	now := time.Now()
	require.NoError(t, store.Save(domain.HistoryRecord{Timestamp: now, Input: "show me my files", Command: "ls", NaturalLanguage: true, Success: true}))
	require.NoError(t, store.Save(domain.HistoryRecord{Timestamp: now, Input: "rm a.txt", Command: "rm a.txt", ExitCode: 1}))

	out, err = run(t, NewHistoryCommand(lazy), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "show me my files -> ls")
	assert.Contains(t, out, "rm a.txt")

	out, err = run(t, NewHistoryCommand(lazy), "search", "--query", "files")
	require.NoError(t, err)
	assert.Contains(t, out, "show me my files")
	assert.NotContains(t, out, "rm a.txt")

	out, err = run(t, NewHistoryCommand(lazy), "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Entries analyzed: 2")
	assert.Contains(t, out, "Success rate: 50.0%")
	assert.Contains(t, out, "Undo hints:")

	_, err = run(t, NewHistoryCommand(lazy), "search")
	assert.EqualError(t, err, ErrQueryRequired)
}

func TestHistoryUnavailable(t *testing.T) {
	c, _ := newTestContainer(t)
	c.HistoryStore = nil
	_, err := run(t, NewHistoryCommand(app.Preloaded(c)), "list")
	assert.EqualError(t, err, ErrHistoryStoreUnavailable)
}

func TestHistoryRetainUpdatesConfig(t *testing.T) {
	c, _ := newTestContainer(t)
	lazy := app.Preloaded(c)

	out, err := run(t, NewHistoryCommand(lazy), "retain", "--days", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Retained last 7 days")

	cfg, err := c.ConfigProvider.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.History.RetentionDays)
}

func TestConfigGetSetAndDiff(t *testing.T) {
	c, _ := newTestContainer(t)
	lazy := app.Preloaded(c)

	out, err := run(t, NewConfigCommand(lazy), "diff")
	require.NoError(t, err)
	assert.Contains(t, out, MsgNoDifferencesFromDefault)

	_, err = run(t, NewConfigCommand(lazy), "set", "execution.timeout", "45")
	require.NoError(t, err)

	out, err = run(t, NewConfigCommand(lazy), "get", "execution.timeout")
	require.NoError(t, err)
	assert.Equal(t, "45\n", out)

	_, err = run(t, NewConfigCommand(lazy), "set", "execution.nope", "1")
	assert.Error(t, err)

	out, err = run(t, NewConfigCommand(lazy), "path")
	require.NoError(t, err)
	assert.Equal(t, c.ConfigLoader.Path()+"\n", out)

	out, err = run(t, NewConfigCommand(lazy), "validate")
	require.NoError(t, err)
	assert.Contains(t, out, MsgConfigurationValid)
}

func TestLookupAndAssignKey(t *testing.T) {
	m := map[string]interface{}{"a": map[string]interface{}{"b": 1}}

	v, ok := lookupKey(m, []string{"a", "b"})
	require.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = lookupKey(m, []string{"a", "c"})
	assert.False(t, ok)

	assert.True(t, assignKey(m, []string{"a", "b"}, 2))
	assert.False(t, assignKey(m, []string{"a", "b", "c"}, 2))
	assert.False(t, assignKey(m, nil, 2))
}

func TestDoctorCommand(t *testing.T) {
	c, store := newTestContainer(t)
	c.DoctorService = &doctor.Service{
		ConfigProvider: c.ConfigProvider,
		HistoryStore:   store,
		Translator:     c.Translator,
	}

	out, err := run(t, NewDoctorCommand(app.Preloaded(c)))
	require.NoError(t, err)
	assert.Contains(t, out, "[OK] Config file")
	assert.Contains(t, out, "[WARN] Metrics - provider not initialized")
	assert.Contains(t, out, "[OK] Pattern table")
}

func TestDoctorUnavailable(t *testing.T) {
	c, _ := newTestContainer(t)
	_, err := run(t, NewDoctorCommand(app.Preloaded(c)))
	assert.EqualError(t, err, ErrDoctorServiceUnavailable)
}
