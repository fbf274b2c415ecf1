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

func TestUnavailableReportsSentinel(t *testing.T) {
	ctx := context.Background()
	var u Unavailable
	_, err := u.Memory(ctx)
	assert.ErrorIs(t, err, domain.ErrMetricsUnavailable)
	_, err = u.CPUPercent(ctx, time.Millisecond)
	assert.ErrorIs(t, err, domain.ErrMetricsUnavailable)
	_, err = u.Processes(ctx)
	assert.ErrorIs(t, err, domain.ErrMetricsUnavailable)
	_, err = u.Host(ctx)
	assert.ErrorIs(t, err, domain.ErrMetricsUnavailable)
}

func TestPathUsageSumsRegularFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a"), make([]byte, 100), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b"), make([]byte, 28), 0o644))

	size, err := NewHost().PathUsage(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, uint64(128), size)
}
