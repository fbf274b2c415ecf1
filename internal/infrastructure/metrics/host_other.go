//go:build !linux

package metrics

import (
	"context"
	"time"

	"github.com/doeshing/nlterm/internal/domain"
)

func (h *Host) CPUPercent(context.Context, time.Duration) (float64, error) {
	return 0, domain.ErrMetricsUnavailable
}

func (h *Host) Memory(context.Context) (domain.MemoryStats, error) {
	return domain.MemoryStats{}, domain.ErrMetricsUnavailable
}

func (h *Host) Disk(context.Context, string) (domain.DiskStats, error) {
	return domain.DiskStats{}, domain.ErrMetricsUnavailable
}

func (h *Host) Processes(context.Context) ([]domain.ProcessInfo, error) {
	return nil, domain.ErrMetricsUnavailable
}

func (h *Host) Uptime(context.Context) (time.Duration, error) {
	return 0, domain.ErrMetricsUnavailable
}

func (h *Host) Host(context.Context) (domain.HostInfo, error) {
	return domain.HostInfo{}, domain.ErrMetricsUnavailable
}
