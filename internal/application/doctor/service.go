package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"

	configapp "github.com/doeshing/nlterm/internal/application/config"
	"github.com/doeshing/nlterm/internal/application/translator"
	"github.com/doeshing/nlterm/internal/domain"
	"github.com/doeshing/nlterm/internal/ports"
)

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Metrics        ports.MetricsProvider
	HistoryStore   ports.HistoryRepository
	Translator     *translator.Translator
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	if s.ConfigProvider == nil {
		return domain.HealthReport{}, errors.New("doctor: config provider not set")
	}
	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	if err := configapp.Validate(cfg); err != nil {
		checks = append(checks, fail("Config file", err.Error()))
	} else {
		checks = append(checks, ok("Config file", fmt.Sprintf("format version %s", cfg.ConfigFormatVersion)))
	}

	checks = append(checks, shellCheck(cfg.GetExecutionShell()))
	checks = append(checks, s.metricsCheck(ctx))
	checks = append(checks, s.historyCheck(cfg))
	checks = append(checks, s.translatorCheck())

	return domain.HealthReport{Checks: checks}, nil
}

func shellCheck(shell string) domain.HealthCheck {
	info, err := os.Stat(shell)
	if err != nil {
		return fail("Shell", fmt.Sprintf("%s: %v", shell, err))
	}
	if info.Mode()&0o111 == 0 {
		return fail("Shell", fmt.Sprintf("%s is not executable", shell))
	}
	return ok("Shell", shell)
}

func (s *Service) metricsCheck(ctx context.Context) domain.HealthCheck {
	if s.Metrics == nil {
		return warn("Metrics", "provider not initialized")
	}
	if _, err := s.Metrics.Memory(ctx); err != nil {
		if errors.Is(err, domain.ErrMetricsUnavailable) {
			return warn("Metrics", "host statistics not available on this platform")
		}
		return warn("Metrics", err.Error())
	}
	return ok("Metrics", "host statistics readable")
}

func (s *Service) historyCheck(cfg domain.Config) domain.HealthCheck {
	if !cfg.IsHistoryEnabled() {
		return warn("History store", "disabled in config")
	}
	if s.HistoryStore == nil {
		return fail("History store", "not initialized")
	}
	if _, err := s.HistoryStore.Records(1, ""); err != nil {
		return fail("History store", fmt.Sprintf("%s: %v", s.HistoryStore.Path(), err))
	}
	return ok("History store", s.HistoryStore.Path())
}

func (s *Service) translatorCheck() domain.HealthCheck {
	if s.Translator == nil {
		return fail("Pattern table", "translator not initialized")
	}
	return ok("Pattern table", fmt.Sprintf("%d categories, %d patterns",
		len(s.Translator.Categories()), s.Translator.PatternCount()))
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
