package domain

import (
	"fmt"
	"time"
)

// History backends.
const (
	HistoryBackendSQLite = "sqlite"
	HistoryBackendJSONL  = "jsonl"
)

// Rich output modes.
const (
	RichAuto   = "auto"
	RichAlways = "always"
	RichNever  = "never"
)

// GetExecutionShell returns the configured shell for external commands.
// "auto" and empty both resolve to /bin/sh.
func (c *Config) GetExecutionShell() string {
	const defaultShell = "/bin/sh"
	if c.Execution.Shell == "" || c.Execution.Shell == "auto" {
		return defaultShell
	}
	return c.Execution.Shell
}

// GetCommandTimeout returns the external command timeout.
func (c *Config) GetCommandTimeout() time.Duration {
	if c.Execution.TimeoutSeconds <= 0 {
		return DefaultCommandTimeout
	}
	return time.Duration(c.Execution.TimeoutSeconds) * time.Second
}

// GetHistoryDisplayLimit returns how many history entries are shown by default.
func (c *Config) GetHistoryDisplayLimit() int {
	if c.Shell.HistoryDisplayLimit <= 0 {
		return DefaultHistoryLimit
	}
	return c.Shell.HistoryDisplayLimit
}

// GetHistoryRetentionDays returns the number of days to retain history
func (c *Config) GetHistoryRetentionDays() int {
	if c.History.RetentionDays <= 0 {
		return DefaultHistoryRetainDays
	}
	return c.History.RetentionDays
}

// GetHistoryBackend returns the persistent history backend name.
func (c *Config) GetHistoryBackend() string {
	if c.History.Backend == "" {
		return HistoryBackendSQLite
	}
	return c.History.Backend
}

// IsHistoryEnabled reports whether executed commands are persisted.
func (c *Config) IsHistoryEnabled() bool {
	return c.History.Enabled
}

// GetMaxSessions returns the session cap for the HTTP binding.
func (c *Config) GetMaxSessions() int {
	if c.Server.MaxSessions <= 0 {
		return DefaultMaxSessions
	}
	return c.Server.MaxSessions
}

// GetServerAddr returns the HTTP listen address.
func (c *Config) GetServerAddr() string {
	if c.Server.Addr == "" {
		return DefaultServerAddr
	}
	return c.Server.Addr
}

// GetAllowOrigin returns the CORS origin header value.
func (c *Config) GetAllowOrigin() string {
	if c.Server.AllowOrigin == "" {
		return "*"
	}
	return c.Server.AllowOrigin
}

// GetRichMode returns auto, always or never.
func (c *Config) GetRichMode() string {
	if c.UI.Rich == "" {
		return RichAuto
	}
	return c.UI.Rich
}

// GetCPUSampleInterval returns how long the cpu built-in samples for.
func (c *Config) GetCPUSampleInterval() time.Duration {
	if c.Metrics.CPUSampleMS <= 0 {
		return DefaultCPUSampleInterval
	}
	return time.Duration(c.Metrics.CPUSampleMS) * time.Millisecond
}

// ValidateConsistency checks the internal consistency of the configuration
func (c *Config) ValidateConsistency() error {
	switch c.GetHistoryBackend() {
	case HistoryBackendSQLite, HistoryBackendJSONL:
	default:
		return fmt.Errorf("history backend %s is not supported", c.History.Backend)
	}
	switch c.GetRichMode() {
	case RichAuto, RichAlways, RichNever:
	default:
		return fmt.Errorf("ui.rich must be auto|always|never, got %s", c.UI.Rich)
	}
	if c.Execution.TimeoutSeconds < 0 {
		return fmt.Errorf("execution.timeout must be >= 0, got %d", c.Execution.TimeoutSeconds)
	}
	return nil
}
