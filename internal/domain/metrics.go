package domain

import "time"

// MemoryStats mirrors what the free built-in prints.
type MemoryStats struct {
	Total     uint64
	Available uint64
	Used      uint64
	Free      uint64
}

// UsedPercent returns used memory as a percentage of total.
func (m MemoryStats) UsedPercent() float64 {
	if m.Total == 0 {
		return 0
	}
	return float64(m.Used) / float64(m.Total) * 100
}

// DiskStats describes one mounted filesystem.
type DiskStats struct {
	Path  string
	Total uint64
	Used  uint64
	Free  uint64
}

// UsedPercent returns used space as a percentage of total.
func (d DiskStats) UsedPercent() float64 {
	if d.Total == 0 {
		return 0
	}
	return float64(d.Used) / float64(d.Total) * 100
}

// ProcessInfo is one row of ps output.
type ProcessInfo struct {
	PID        int
	Name       string
	CPUPercent float64
}

// HostInfo is what system_info prints besides memory.
type HostInfo struct {
	OS           string
	Release      string
	Architecture string
	Hostname     string
	CPUCores     int
	Uptime       time.Duration
}
