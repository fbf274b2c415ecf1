package builtins

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/doeshing/nlterm/internal/domain"
)

// DateLayout is the format the date built-in prints.
const DateLayout = "2006-01-02 15:04:05"

// metricsFailure renders a provider error. Unavailable metrics get a fixed
// message so hosts without /proc degrade predictably.
func metricsFailure(cmd, what string, err error) (string, int) {
	if err == nil || errors.Is(err, domain.ErrMetricsUnavailable) {
		return fmt.Sprintf("%s: %s not available", cmd, what), 1
	}
	return fmt.Sprintf("%s: %v", cmd, err), 1
}

func ps(ctx context.Context, env *Env, _ []string) (string, int) {
	if env.Metrics == nil {
		return metricsFailure("ps", "process information", nil)
	}
	procs, err := env.Metrics.Processes(ctx)
	if err != nil {
		return metricsFailure("ps", "process information", err)
	}
	sort.SliceStable(procs, func(i, j int) bool {
		return procs[i].CPUPercent > procs[j].CPUPercent
	})
	if len(procs) > domain.MaxProcessRows {
		procs = procs[:domain.MaxProcessRows]
	}
	out := []string{fmt.Sprintf("%6s %-20s %6s", "PID", "NAME", "CPU%")}
	for _, p := range procs {
		out = append(out, fmt.Sprintf("%6d %-20s %5.1f%%", p.PID, p.Name, p.CPUPercent))
	}
	return strings.Join(out, "\n"), 0
}

func free(ctx context.Context, env *Env, _ []string) (string, int) {
	if env.Metrics == nil {
		return metricsFailure("free", "memory information", nil)
	}
	mem, err := env.Metrics.Memory(ctx)
	if err != nil {
		return metricsFailure("free", "memory information", err)
	}
	return fmt.Sprintf("Memory Usage:\nTotal: %s\nAvailable: %s\nUsed: %s (%.1f%%)\nFree: %s",
		humanize.IBytes(mem.Total),
		humanize.IBytes(mem.Available),
		humanize.IBytes(mem.Used), mem.UsedPercent(),
		humanize.IBytes(mem.Free)), 0
}

// df [path] reports the filesystem holding path, the root by default.
func df(ctx context.Context, env *Env, args []string) (string, int) {
	if env.Metrics == nil {
		return metricsFailure("df", "disk information", nil)
	}
	_, operands := splitFlags(args)
	path := "/"
	if len(operands) > 0 {
		path = env.Session.Resolve(operands[0])
	}
	disk, err := env.Metrics.Disk(ctx, path)
	if err != nil {
		return metricsFailure("df", "disk information", err)
	}
	return fmt.Sprintf("Disk Usage (%s):\nTotal: %s\nUsed: %s\nFree: %s\nUsage: %.1f%%",
		disk.Path,
		humanize.IBytes(disk.Total),
		humanize.IBytes(disk.Used),
		humanize.IBytes(disk.Free),
		disk.UsedPercent()), 0
}

// du [path...] reports the apparent size of each path, the cursor by default.
func du(ctx context.Context, env *Env, args []string) (string, int) {
	if env.Metrics == nil {
		return metricsFailure("du", "disk usage", nil)
	}
	_, operands := splitFlags(args)
	if len(operands) == 0 {
		operands = []string{"."}
	}
	var out []string
	failed := false
	for _, op := range expand(env, operands) {
		if _, err := env.FS.Stat(op.path); err != nil {
			out = append(out, fmt.Sprintf("du: cannot access '%s': %s", op.display, describe(err)))
			failed = true
			continue
		}
		size, err := env.Metrics.PathUsage(ctx, op.path)
		if err != nil {
			msg, _ := metricsFailure("du", "disk usage", err)
			out = append(out, msg)
			failed = true
			continue
		}
		out = append(out, fmt.Sprintf("%s\t%s", humanize.IBytes(size), op.display))
	}
	return lines(out, failed)
}

func uptime(ctx context.Context, env *Env, _ []string) (string, int) {
	if env.Metrics == nil {
		return metricsFailure("uptime", "uptime information", nil)
	}
	up, err := env.Metrics.Uptime(ctx)
	if err != nil {
		return metricsFailure("uptime", "uptime information", err)
	}
	return "System uptime: " + formatUptime(up), 0
}

func formatUptime(d time.Duration) string {
	days := int(d / (24 * time.Hour))
	hours := int(d % (24 * time.Hour) / time.Hour)
	minutes := int(d % time.Hour / time.Minute)
	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

func cpu(ctx context.Context, env *Env, _ []string) (string, int) {
	if env.Metrics == nil {
		return metricsFailure("cpu", "CPU information", nil)
	}
	interval := env.CPUSample
	if interval <= 0 {
		interval = domain.DefaultCPUSampleInterval
	}
	pct, err := env.Metrics.CPUPercent(ctx, interval)
	if err != nil {
		return metricsFailure("cpu", "CPU information", err)
	}
	return fmt.Sprintf("CPU Usage: %.1f%%", pct), 0
}

func systemInfo(ctx context.Context, env *Env, _ []string) (string, int) {
	if env.Metrics == nil {
		return metricsFailure("system_info", "system information", nil)
	}
	host, err := env.Metrics.Host(ctx)
	if err != nil {
		return metricsFailure("system_info", "system information", err)
	}
	out := []string{
		"System Information:",
		fmt.Sprintf("Platform: %s %s", host.OS, host.Release),
		fmt.Sprintf("Architecture: %s", host.Architecture),
		fmt.Sprintf("Hostname: %s", host.Hostname),
		fmt.Sprintf("User: %s", env.user()),
		fmt.Sprintf("Current Directory: %s", env.Session.CurrentPath()),
		fmt.Sprintf("CPU Cores: %d", host.CPUCores),
	}
	if mem, err := env.Metrics.Memory(ctx); err == nil {
		out = append(out, fmt.Sprintf("Memory: %s", humanize.IBytes(mem.Total)))
	}
	if host.Uptime > 0 {
		out = append(out, fmt.Sprintf("Uptime: %s", formatUptime(host.Uptime)))
	}
	return strings.Join(out, "\n"), 0
}

func whoami(_ context.Context, env *Env, _ []string) (string, int) {
	return env.user(), 0
}

func date(_ context.Context, env *Env, _ []string) (string, int) {
	return env.now().Format(DateLayout), 0
}
