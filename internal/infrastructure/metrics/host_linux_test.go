//go:build linux

package metrics

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/nlterm/internal/domain"
)

func writeProc(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestProcessesParsesStat(t *testing.T) {
	root := t.TempDir()
	writeProc(t, root, "uptime", "200.00 150.00\n")
	// utime=500 stime=500 starttime=10000 ticks: 10s of CPU over 100s alive.
	writeProc(t, root, "42/stat", "42 (my (odd) proc) S 1 42 42 0 -1 4194304 0 0 0 0 500 500 0 0 20 0 1 0 10000 0 0\n")
	writeProc(t, root, "self/stat", "ignored")

	h := &Host{procRoot: root}
	procs, err := h.Processes(context.Background())
	require.NoError(t, err)
	require.Len(t, procs, 1)
	assert.Equal(t, 42, procs[0].PID)
	assert.Equal(t, "my (odd) proc", procs[0].Name)
	assert.InDelta(t, 10.0, procs[0].CPUPercent, 0.001)
}

func TestCPUTimesParsesAggregateLine(t *testing.T) {
	root := t.TempDir()
	writeProc(t, root, "stat", "cpu  100 0 100 700 100 0 0 0 0 0\ncpu0 1 1 1 1\n")

	idle, total, err := (&Host{procRoot: root}).cpuTimes()
	require.NoError(t, err)
	assert.Equal(t, uint64(800), idle)
	assert.Equal(t, uint64(1000), total)
}

func TestMissingProcIsUnavailable(t *testing.T) {
	h := &Host{procRoot: filepath.Join(t.TempDir(), "missing")}
	_, err := h.CPUPercent(context.Background(), time.Millisecond)
	assert.ErrorIs(t, err, domain.ErrMetricsUnavailable)
	_, err = h.Processes(context.Background())
	assert.ErrorIs(t, err, domain.ErrMetricsUnavailable)
}

func TestLiveHostInfo(t *testing.T) {
	info, err := NewHost().Host(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Linux", info.OS)
	assert.Positive(t, info.CPUCores)
}
