// Package history persists executed commands across sessions.
package history

import (
	"fmt"

	"github.com/doeshing/nlterm/internal/domain"
	"github.com/doeshing/nlterm/internal/ports"
)

// Open returns the store selected by backend. A sqlite database that cannot
// be opened falls back to a jsonl file next to it.
func Open(backend, path string, log ports.Logger) (ports.HistoryRepository, error) {
	switch backend {
	case domain.HistoryBackendJSONL:
		return NewFileStore(path), nil
	case domain.HistoryBackendSQLite, "":
		store, err := NewSQLiteStore(path)
		if err != nil {
			if log != nil {
				log.Warn("sqlite history unavailable, using jsonl", map[string]interface{}{
					"path":  path,
					"error": err.Error(),
				})
			}
			return NewFileStore(path + ".jsonl"), nil
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown history backend %q", backend)
	}
}
