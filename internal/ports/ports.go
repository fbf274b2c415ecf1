// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the terminal core and the
// collaborators a host supplies. Following the Ports and Adapters pattern, the
// translator, dispatcher and built-ins only ever see these interfaces; the
// concrete filesystem, process runner, metrics provider, history store and
// output formatter live in the infrastructure layer.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., FileSystem, ProcessRunner)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: the core depends on abstractions, not implementations
package ports

import (
	"context"
	"io"
	"io/fs"
	"time"

	"github.com/doeshing/nlterm/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.nlterm/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// FileSystem is the filesystem abstraction the built-ins operate on.
// All paths are absolute; resolution against the session cursor happens
// before the call.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	ReadDir(path string) ([]fs.DirEntry, error)
	MkdirAll(path string) error
	Remove(path string) error
	RemoveAll(path string) error
	Copy(src, dst string, recursive bool) error
	Move(src, dst string) error
	ReadFile(path string) ([]byte, error)
	Touch(path string) error
	WalkDir(root string, fn fs.WalkDirFunc) error
	Glob(pattern string) ([]string, error)
}

// ProcessRunner executes commands the dispatcher does not implement natively.
type ProcessRunner interface {
	// Run executes command through the configured shell in dir, bounded by
	// the runner's timeout, with stdout and stderr merged.
	Run(ctx context.Context, command, dir string) domain.ProcessResult
	// LookPath finds the first executable named name on PATH.
	LookPath(name string) (string, error)
	// LookAll finds every executable named name on PATH.
	LookAll(name string) []string
}

// MetricsProvider reports host statistics. Every method may return
// domain.ErrMetricsUnavailable.
type MetricsProvider interface {
	CPUPercent(ctx context.Context, interval time.Duration) (float64, error)
	Memory(ctx context.Context) (domain.MemoryStats, error)
	Disk(ctx context.Context, path string) (domain.DiskStats, error)
	Processes(ctx context.Context) ([]domain.ProcessInfo, error)
	Uptime(ctx context.Context) (time.Duration, error)
	PathUsage(ctx context.Context, path string) (uint64, error)
	Host(ctx context.Context) (domain.HostInfo, error)
}

// HistoryRepository persists executed commands beyond the lifetime of a session.
type HistoryRepository interface {
	Save(record domain.HistoryRecord) error
	Records(limit int, search string) ([]domain.HistoryRecord, error)
	Clear() error
	ExportJSON(dest string) error
	PruneOlderThan(days int) error
	Path() string
}

// Formatter renders core results for a human. A single implementation is
// selected at startup (rich or plain).
type Formatter interface {
	Banner(w io.Writer, text string)
	Prompt(user, path string) string
	Result(w io.Writer, res domain.CommandResult)
	Translation(w io.Writer, original, translated string)
	Help(w io.Writer, text string)
	Error(w io.Writer, msg string)
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
