// Package fsys implements ports.FileSystem on the host filesystem.
package fsys

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/doeshing/nlterm/internal/domain"
	"github.com/doeshing/nlterm/internal/ports"
)

// Local operates on absolute host paths.
type Local struct{}

// New returns the host filesystem adapter.
func New() *Local {
	return &Local{}
}

func (Local) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

func (Local) ReadDir(path string) ([]fs.DirEntry, error) {
	return os.ReadDir(path)
}

func (Local) MkdirAll(path string) error {
	return os.MkdirAll(path, domain.DirectoryPermissions)
}

func (Local) Remove(path string) error {
	return os.Remove(path)
}

func (Local) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

func (Local) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (Local) WalkDir(root string, fn fs.WalkDirFunc) error {
	return filepath.WalkDir(root, fn)
}

func (Local) Glob(pattern string) ([]string, error) {
	return filepath.Glob(pattern)
}

// Touch creates path if needed and bumps its modification time.
func (Local) Touch(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, domain.FilePermissions)
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	now := time.Now()
	return os.Chtimes(path, now, now)
}

// Copy copies a file, or a directory tree when recursive is set.
func (l Local) Copy(src, dst string, recursive bool) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return copyFile(src, dst, info.Mode().Perm())
	}
	if !recursive {
		return &fs.PathError{Op: "copy", Path: src, Err: syscall.EISDIR}
	}
	if within(src, dst) {
		return &fs.PathError{Op: "copy", Path: dst, Err: errors.New("cannot copy a directory into itself")}
	}
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, domain.DirectoryPermissions)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		return copyFile(path, target, fi.Mode().Perm())
	})
}

// Move renames src to dst, falling back to copy and remove across devices.
func (l Local) Move(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) || !errors.Is(linkErr.Err, syscall.EXDEV) {
		return err
	}
	if err := l.Copy(src, dst, true); err != nil {
		return fmt.Errorf("move across devices: %w", err)
	}
	return os.RemoveAll(src)
}

func copyFile(src, dst string, perm fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// within reports whether path is root or lies beneath it.
func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

var _ ports.FileSystem = Local{}
