package config

import (
	"fmt"
	"strings"

	"github.com/doeshing/nlterm/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if err := cfg.ValidateConsistency(); err != nil {
		return err
	}
	if err := validateShell(cfg.Shell); err != nil {
		return err
	}
	if err := validateHistory(cfg.History); err != nil {
		return err
	}
	if err := validateServer(cfg.Server); err != nil {
		return err
	}
	if cfg.Metrics.CPUSampleMS < 0 {
		return fmt.Errorf("metrics.cpu_sample_ms must be >= 0")
	}
	return nil
}

func validateShell(shell domain.ShellSettings) error {
	if shell.HistoryDisplayLimit < 0 {
		return fmt.Errorf("shell.history_display_limit must be >= 0")
	}
	return nil
}

func validateHistory(history domain.HistorySettings) error {
	if history.RetentionDays < 0 {
		return fmt.Errorf("history.retention_days must be >= 0")
	}
	if history.Enabled && strings.TrimSpace(history.Path) == "" {
		return fmt.Errorf("history.path must be set when history is enabled")
	}
	return nil
}

func validateServer(server domain.ServerSettings) error {
	if server.MaxSessions < 0 {
		return fmt.Errorf("server.max_sessions must be >= 0")
	}
	if server.Addr != "" && !strings.Contains(server.Addr, ":") {
		return fmt.Errorf("server.addr must be host:port, got %s", server.Addr)
	}
	return nil
}
