package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/nlterm/internal/domain"
	"github.com/doeshing/nlterm/internal/ports"
)

func stores(t *testing.T) map[string]ports.HistoryRepository {
	t.Helper()
	dir := t.TempDir()
	sqlite, err := NewSQLiteStore(filepath.Join(dir, "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })
	return map[string]ports.HistoryRepository{
		"sqlite": sqlite,
		"jsonl":  NewFileStore(filepath.Join(dir, "history.jsonl")),
	}
}

func record(input string, at time.Time) domain.HistoryRecord {
	return domain.HistoryRecord{
		Timestamp: at.UTC().Truncate(time.Second),
		SessionID: "s1",
		Input:     input,
		Command:   input,
		Success:   true,
		Directory: "/tmp",
	}
}

func TestStoresSaveAndQuery(t *testing.T) {
	now := time.Now()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Save(record("ls", now.Add(-2*time.Minute))))
			require.NoError(t, store.Save(record("echo hello", now.Add(-time.Minute))))
			require.NoError(t, store.Save(record("pwd", now)))

			all, err := store.Records(0, "")
			require.NoError(t, err)
			require.Len(t, all, 3)
			assert.Equal(t, "pwd", all[0].Input)
			assert.Equal(t, "s1", all[0].SessionID)
			assert.True(t, all[0].Success)

			limited, err := store.Records(1, "")
			require.NoError(t, err)
			require.Len(t, limited, 1)

			found, err := store.Records(0, "hello")
			require.NoError(t, err)
			require.Len(t, found, 1)
			assert.Equal(t, "echo hello", found[0].Input)

			require.NoError(t, store.Clear())
			all, err = store.Records(0, "")
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestStoresPrune(t *testing.T) {
	now := time.Now()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Save(record("old", now.AddDate(0, 0, -40))))
			require.NoError(t, store.Save(record("new", now)))
			require.NoError(t, store.PruneOlderThan(30))

			all, err := store.Records(0, "")
			require.NoError(t, err)
			require.Len(t, all, 1)
			assert.Equal(t, "new", all[0].Input)
		})
	}
}

func TestStoresExport(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Save(record("ls", time.Now())))
			dest := filepath.Join(t.TempDir(), "out.jsonl")
			require.NoError(t, store.ExportJSON(dest))
			data, err := os.ReadFile(dest)
			require.NoError(t, err)
			assert.Contains(t, string(data), `"input":"ls"`)
		})
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(domain.HistoryBackendJSONL, filepath.Join(dir, "h.jsonl"), nil)
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, store)

	store, err = Open(domain.HistoryBackendSQLite, filepath.Join(dir, "h.db"), nil)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, store)
	store.(*SQLiteStore).Close()

	_, err = Open("redis", "", nil)
	assert.Error(t, err)
}
