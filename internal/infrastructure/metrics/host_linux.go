//go:build linux

package metrics

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"github.com/doeshing/nlterm/internal/domain"
)

// clockTicks is USER_HZ, fixed at 100 on every Linux architecture Go supports.
const clockTicks = 100

// CPUPercent samples /proc/stat twice, interval apart.
func (h *Host) CPUPercent(ctx context.Context, interval time.Duration) (float64, error) {
	idle0, total0, err := h.cpuTimes()
	if err != nil {
		return 0, err
	}
	timer := time.NewTimer(interval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case <-timer.C:
	}
	idle1, total1, err := h.cpuTimes()
	if err != nil {
		return 0, err
	}
	if total1 <= total0 {
		return 0, nil
	}
	busy := float64((total1 - total0) - (idle1 - idle0))
	return busy / float64(total1-total0) * 100, nil
}

func (h *Host) cpuTimes() (idle, total uint64, err error) {
	data, err := os.ReadFile(filepath.Join(h.procRoot, "stat"))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", domain.ErrMetricsUnavailable, err)
	}
	line, _, _ := bytes.Cut(data, []byte("\n"))
	fields := strings.Fields(string(line))
	if len(fields) < 5 || fields[0] != "cpu" {
		return 0, 0, fmt.Errorf("%w: unexpected /proc/stat format", domain.ErrMetricsUnavailable)
	}
	for i, f := range fields[1:] {
		v, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			continue
		}
		total += v
		// idle and iowait
		if i == 3 || i == 4 {
			idle += v
		}
	}
	return idle, total, nil
}

// Memory combines sysinfo(2) with MemAvailable from /proc/meminfo.
func (h *Host) Memory(context.Context) (domain.MemoryStats, error) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return domain.MemoryStats{}, fmt.Errorf("%w: %v", domain.ErrMetricsUnavailable, err)
	}
	unit := uint64(info.Unit)
	if unit == 0 {
		unit = 1
	}
	stats := domain.MemoryStats{
		Total: uint64(info.Totalram) * unit,
		Free:  uint64(info.Freeram) * unit,
	}
	stats.Available = stats.Free + uint64(info.Bufferram)*unit
	if avail, ok := h.memAvailable(); ok {
		stats.Available = avail
	}
	if stats.Total > stats.Available {
		stats.Used = stats.Total - stats.Available
	}
	return stats, nil
}

func (h *Host) memAvailable() (uint64, bool) {
	f, err := os.Open(filepath.Join(h.procRoot, "meminfo"))
	if err != nil {
		return 0, false
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) >= 2 && fields[0] == "MemAvailable:" {
			kb, err := strconv.ParseUint(fields[1], 10, 64)
			if err != nil {
				return 0, false
			}
			return kb * 1024, true
		}
	}
	return 0, false
}

// Disk reports the filesystem holding path.
func (h *Host) Disk(_ context.Context, path string) (domain.DiskStats, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return domain.DiskStats{}, fmt.Errorf("statfs %s: %w", path, err)
	}
	bsize := uint64(st.Bsize)
	total := st.Blocks * bsize
	free := st.Bavail * bsize
	return domain.DiskStats{
		Path:  path,
		Total: total,
		Used:  total - st.Bfree*bsize,
		Free:  free,
	}, nil
}

// Processes lists /proc entries with average CPU usage over each lifetime.
func (h *Host) Processes(context.Context) ([]domain.ProcessInfo, error) {
	entries, err := os.ReadDir(h.procRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMetricsUnavailable, err)
	}
	uptime, err := h.uptimeSeconds()
	if err != nil {
		return nil, err
	}
	var procs []domain.ProcessInfo
	for _, entry := range entries {
		pid, err := strconv.Atoi(entry.Name())
		if err != nil || !entry.IsDir() {
			continue
		}
		p, ok := h.readProcess(pid, uptime)
		if ok {
			procs = append(procs, p)
		}
	}
	return procs, nil
}

// readProcess parses /proc/<pid>/stat. Processes that exit mid-scan are skipped.
func (h *Host) readProcess(pid int, uptime float64) (domain.ProcessInfo, bool) {
	data, err := os.ReadFile(filepath.Join(h.procRoot, strconv.Itoa(pid), "stat"))
	if err != nil {
		return domain.ProcessInfo{}, false
	}
	open := bytes.IndexByte(data, '(')
	closing := bytes.LastIndexByte(data, ')')
	if open < 0 || closing < open {
		return domain.ProcessInfo{}, false
	}
	name := string(data[open+1 : closing])
	// fields after the command name start at field 3 (state)
	rest := strings.Fields(string(data[closing+1:]))
	if len(rest) < 20 {
		return domain.ProcessInfo{}, false
	}
	utime, _ := strconv.ParseFloat(rest[11], 64)
	stime, _ := strconv.ParseFloat(rest[12], 64)
	start, _ := strconv.ParseFloat(rest[19], 64)

	info := domain.ProcessInfo{PID: pid, Name: name}
	elapsed := uptime - start/clockTicks
	if elapsed > 0 {
		info.CPUPercent = (utime + stime) / clockTicks / elapsed * 100
	}
	return info, true
}

func (h *Host) uptimeSeconds() (float64, error) {
	data, err := os.ReadFile(filepath.Join(h.procRoot, "uptime"))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrMetricsUnavailable, err)
	}
	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return 0, fmt.Errorf("%w: empty /proc/uptime", domain.ErrMetricsUnavailable)
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrMetricsUnavailable, err)
	}
	return v, nil
}

func (h *Host) Uptime(context.Context) (time.Duration, error) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrMetricsUnavailable, err)
	}
	return time.Duration(info.Uptime) * time.Second, nil
}

func (h *Host) Host(ctx context.Context) (domain.HostInfo, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return domain.HostInfo{}, fmt.Errorf("%w: %v", domain.ErrMetricsUnavailable, err)
	}
	up, _ := h.Uptime(ctx)
	return domain.HostInfo{
		OS:           unix.ByteSliceToString(uts.Sysname[:]),
		Release:      unix.ByteSliceToString(uts.Release[:]),
		Architecture: unix.ByteSliceToString(uts.Machine[:]),
		Hostname:     unix.ByteSliceToString(uts.Nodename[:]),
		CPUCores:     runtime.NumCPU(),
		Uptime:       up,
	}, nil
}
