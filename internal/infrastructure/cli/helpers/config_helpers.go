// Package helpers holds plumbing shared by the nlterm subcommands.
package helpers

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/doeshing/nlterm/internal/app"
	configapp "github.com/doeshing/nlterm/internal/application/config"
	"github.com/doeshing/nlterm/internal/domain"
	configinfra "github.com/doeshing/nlterm/internal/infrastructure/config"
)

// ConfigLoader returns the file loader behind c. A container assembled
// without one (an injected provider) cannot be written back.
func ConfigLoader(c *app.Container) (*configinfra.FileLoader, error) {
	if c.ConfigLoader == nil {
		return nil, errors.New("config file is not managed by this process")
	}
	return c.ConfigLoader, nil
}

// PersistConfig is the write path for `config set` and `history retain`.
// cfg must pass the same checks Load applies; the file on disk is
// snapshotted before it is replaced. It returns the snapshot path, empty
// when there was no file yet.
func PersistConfig(c *app.Container, cfg domain.Config) (string, error) {
	loader, err := ConfigLoader(c)
	if err != nil {
		return "", err
	}
	if err := configapp.Validate(cfg); err != nil {
		return "", fmt.Errorf("invalid configuration: %w", err)
	}

	snapshot, err := snapshotConfig(loader)
	if err != nil {
		return "", err
	}
	if err := loader.Save(cfg); err != nil {
		return snapshot, fmt.Errorf("write %s: %w", loader.Path(), err)
	}
	return snapshot, nil
}

func snapshotConfig(loader *configinfra.FileLoader) (string, error) {
	_, err := os.Stat(loader.Path())
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", nil
	case err != nil:
		return "", fmt.Errorf("stat %s: %w", loader.Path(), err)
	}
	snapshot, err := loader.Backup()
	if err != nil {
		return "", fmt.Errorf("back up %s: %w", loader.Path(), err)
	}
	return snapshot, nil
}
