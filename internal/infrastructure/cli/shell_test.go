package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/nlterm/internal/application/terminal"
	"github.com/doeshing/nlterm/internal/domain"
	"github.com/doeshing/nlterm/internal/infrastructure/cli/format"
	"github.com/doeshing/nlterm/internal/infrastructure/fsys"
)

func newShell(t *testing.T) (*Shell, *bytes.Buffer) {
	t.Helper()
	home := t.TempDir()
	var out bytes.Buffer
	fs := fsys.New()
	return &Shell{
		Term:      terminal.New(terminal.Options{Home: home, FS: fs}),
		Formatter: format.Plain{},
		FS:        fs,
		Out:       &out,
		Home:      home,
		User:      "tester",
	}, &out
}

func TestHandleExitWords(t *testing.T) {
	s, _ := newShell(t)
	assert.True(t, s.Handle(context.Background(), "exit"))
	assert.True(t, s.Handle(context.Background(), "  QUIT "))
	assert.False(t, s.Handle(context.Background(), ""))
}

func TestHandleTranslateRunsPhrase(t *testing.T) {
	s, out := newShell(t)
	require.False(t, s.Handle(context.Background(), "translate create a folder called demo"))

	assert.Contains(t, out.String(), "-> mkdir demo")
	assert.Contains(t, out.String(), "Created directory: demo")
	_, err := os.Stat(filepath.Join(s.Home, "demo"))
	assert.NoError(t, err)
}

func TestHandleTranslateMissingText(t *testing.T) {
	s, out := newShell(t)
	s.Handle(context.Background(), "translate")
	assert.Equal(t, "error: translate: missing text\n", out.String())
}

func TestHandleLiteralCommandUpdatesPrompt(t *testing.T) {
	s, out := newShell(t)
	ctx := context.Background()
	s.Handle(ctx, "mkdir src && cd src")

	assert.Contains(t, out.String(), "Step 1: Created directory: src")
	assert.Equal(t, "tester@nlterm:~/src$ ", s.prompt())
	assert.Equal(t, []string{"mkdir src && cd src"}, s.Term.History(domain.HistoryQuery{All: true}))
}

func TestHandleClearWritesEscape(t *testing.T) {
	s, out := newShell(t)
	s.Handle(context.Background(), "clear")
	assert.Equal(t, clearScreen, out.String())
}

func TestHandleHelp(t *testing.T) {
	s, out := newShell(t)
	s.Handle(context.Background(), "help")
	assert.Contains(t, out.String(), "nlterm commands")
}

func TestDisplayPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/home/me", "~"},
		{"/home/me/src/app", "~/src/app"},
		{"/home/meow", "/home/meow"},
		{"/tmp", "/tmp"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, displayPath("/home/me", tt.path), tt.path)
	}
	assert.Equal(t, "/tmp", displayPath("", "/tmp"))
}

func TestCompleterCommandNames(t *testing.T) {
	s, _ := newShell(t)
	c := &Completer{Term: s.Term, FS: s.FS}

	got, length := c.Do([]rune("mk"), 2)
	assert.Equal(t, 2, length)
	if diff := cmp.Diff([][]rune{[]rune("dir")}, got); diff != "" {
		t.Errorf("completion mismatch (-want +got):\n%s", diff)
	}

	got, _ = c.Do([]rune("tr"), 2)
	assert.Equal(t, [][]rune{[]rune("anslate")}, got)
}

func TestCompleterEntries(t *testing.T) {
	s, _ := newShell(t)
	require.NoError(t, os.Mkdir(filepath.Join(s.Home, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(s.Home, "draft.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(s.Home, "docs", "notes.md"), nil, 0o644))
	c := &Completer{Term: s.Term, FS: s.FS}

	got, length := c.Do([]rune("cat d"), 5)
	assert.Equal(t, 1, length)
	if diff := cmp.Diff([][]rune{[]rune("ocs/"), []rune("raft.txt")}, got); diff != "" {
		t.Errorf("completion mismatch (-want +got):\n%s", diff)
	}

	got, length = c.Do([]rune("cat docs/n"), 10)
	assert.Equal(t, 1, length)
	assert.Equal(t, [][]rune{[]rune("otes.md")}, got)
}
