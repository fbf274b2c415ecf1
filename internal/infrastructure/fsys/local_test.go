package fsys

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyRecursive(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "nested", "a.txt"), []byte("hello"), 0o644))

	l := New()
	dst := filepath.Join(root, "dst")
	require.NoError(t, l.Copy(src, dst, true))

	data, err := os.ReadFile(filepath.Join(dst, "nested", "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestCopyDirectoryRequiresRecursive(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "src"), 0o755))

	err := New().Copy(filepath.Join(root, "src"), filepath.Join(root, "dst"), false)
	require.Error(t, err)
}

func TestCopyIntoItselfFails(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	require.NoError(t, os.Mkdir(src, 0o755))

	err := New().Copy(src, filepath.Join(src, "inner"), true)
	require.Error(t, err)
}

func TestMoveAndTouch(t *testing.T) {
	root := t.TempDir()
	l := New()
	a := filepath.Join(root, "a.txt")
	require.NoError(t, l.Touch(a))
	_, err := os.Stat(a)
	require.NoError(t, err)

	b := filepath.Join(root, "b.txt")
	require.NoError(t, l.Move(a, b))
	_, err = os.Stat(a)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(b)
	assert.NoError(t, err)
}

func TestWithin(t *testing.T) {
	assert.True(t, within("/a", "/a"))
	assert.True(t, within("/a", "/a/b"))
	assert.False(t, within("/a", "/ab"))
	assert.False(t, within("/a/b", "/a"))
}
