// Package metrics reports host statistics for the introspection built-ins.
package metrics

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"time"

	"github.com/doeshing/nlterm/internal/domain"
	"github.com/doeshing/nlterm/internal/ports"
)

// Host reads statistics from the running kernel. Only Linux is supported;
// elsewhere every method returns domain.ErrMetricsUnavailable except
// PathUsage, which only needs the filesystem.
type Host struct {
	procRoot string
}

// NewHost returns a provider reading from /proc.
func NewHost() *Host {
	return &Host{procRoot: "/proc"}
}

// PathUsage sums the apparent size of the regular files under path.
func (h *Host) PathUsage(ctx context.Context, path string) (uint64, error) {
	var total uint64
	err := filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			// Unreadable subtrees are skipped like du does.
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		total += uint64(info.Size())
		return nil
	})
	return total, err
}

// Unavailable is the provider for hosts nothing can be measured on.
type Unavailable struct{}

func (Unavailable) CPUPercent(context.Context, time.Duration) (float64, error) {
	return 0, domain.ErrMetricsUnavailable
}

func (Unavailable) Memory(context.Context) (domain.MemoryStats, error) {
	return domain.MemoryStats{}, domain.ErrMetricsUnavailable
}

func (Unavailable) Disk(context.Context, string) (domain.DiskStats, error) {
	return domain.DiskStats{}, domain.ErrMetricsUnavailable
}

func (Unavailable) Processes(context.Context) ([]domain.ProcessInfo, error) {
	return nil, domain.ErrMetricsUnavailable
}

func (Unavailable) Uptime(context.Context) (time.Duration, error) {
	return 0, domain.ErrMetricsUnavailable
}

func (Unavailable) PathUsage(context.Context, string) (uint64, error) {
	return 0, domain.ErrMetricsUnavailable
}

func (Unavailable) Host(context.Context) (domain.HostInfo, error) {
	return domain.HostInfo{}, domain.ErrMetricsUnavailable
}

// Default returns the best provider for the running platform.
func Default() ports.MetricsProvider {
	if runtime.GOOS == "linux" {
		return NewHost()
	}
	return Unavailable{}
}

var (
	_ ports.MetricsProvider = (*Host)(nil)
	_ ports.MetricsProvider = Unavailable{}
)
