package doctor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/nlterm/internal/application/translator"
	"github.com/doeshing/nlterm/internal/domain"
	"github.com/doeshing/nlterm/internal/infrastructure/metrics"
)

type staticConfig struct {
	cfg domain.Config
	err error
}

func (s staticConfig) Load(context.Context) (domain.Config, error) {
	return s.cfg, s.err
}

func statuses(report domain.HealthReport) map[string]domain.HealthStatus {
	out := map[string]domain.HealthStatus{}
	for _, c := range report.Checks {
		out[c.Name] = c.Status
	}
	return out
}

func TestRunReportsEachCheck(t *testing.T) {
	svc := &Service{
		ConfigProvider: staticConfig{cfg: domain.Config{Execution: domain.ExecutionSettings{Shell: "/bin/sh"}}},
		Metrics:        metrics.Unavailable{},
		Translator:     translator.NewDefault(),
	}
	report, err := svc.Run(context.Background())
	require.NoError(t, err)

	got := statuses(report)
	assert.Equal(t, domain.HealthOK, got["Config file"])
	assert.Equal(t, domain.HealthOK, got["Shell"])
	assert.Equal(t, domain.HealthWarn, got["Metrics"])
	assert.Equal(t, domain.HealthWarn, got["History store"])
	assert.Equal(t, domain.HealthOK, got["Pattern table"])
}

func TestRunFailsOnConfigError(t *testing.T) {
	svc := &Service{ConfigProvider: staticConfig{err: errors.New("boom")}}
	report, err := svc.Run(context.Background())
	require.Error(t, err)
	require.Len(t, report.Checks, 1)
	assert.Equal(t, domain.HealthError, report.Checks[0].Status)
}

func TestShellCheckMissingBinary(t *testing.T) {
	check := shellCheck("/definitely/not/a/shell")
	assert.Equal(t, domain.HealthError, check.Status)
}
