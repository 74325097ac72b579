package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/0x0FACED/go-fortune-parallel/pkg/config"
	"github.com/0x0FACED/go-fortune-parallel/pkg/voronoi"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "voronoi.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_EmptyFile_UsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, config.DefaultMaxSitesPerJob, cfg.Build.MaxSitesPerJob)
	assert.InDelta(t, config.DefaultEventCapacityFactor, cfg.Build.EventCapacityFactor, 0)
	assert.InDelta(t, config.DefaultRayExtentFactor, cfg.Build.RayExtentFactor, 0)
	assert.Equal(t, voronoi.NewBoundingBox(0, 1000, 0, 1000), cfg.BoundingBox())
	assert.Equal(t, zapcore.InfoLevel, cfg.LogLevel())
	assert.Equal(t, config.DefaultServerAddr, cfg.Server.Addr)
	assert.Equal(t, config.DefaultMetricsPath, cfg.Server.MetricsPath)
	assert.Len(t, cfg.BuildOptions(), 2)
}

func TestLoadConfig_ValidFile_Unmarshals(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig(writeConfig(t, `build:
  max_sites_per_job: 16
  event_capacity_factor: 2
bounds:
  xl: -50
  xr: 50
  yt: -10
  yb: 10
log:
  level: debug
server:
  addr: "127.0.0.1:9000"
`))
	require.NoError(t, err)

	assert.Equal(t, 16, cfg.Build.MaxSitesPerJob)
	assert.InDelta(t, 2.0, cfg.Build.EventCapacityFactor, 0)
	assert.Equal(t, voronoi.NewBoundingBox(-50, 50, -10, 10), cfg.BoundingBox())
	assert.Equal(t, zapcore.DebugLevel, cfg.LogLevel())
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"job size", "build:\n  max_sites_per_job: 0\n", config.ErrInvalidJobSize},
		{"bounds", "bounds:\n  xl: 10\n  xr: 5\n", config.ErrInvalidBounds},
		{"log level", "log:\n  level: loud\n", config.ErrInvalidLogLevel},
		{"metrics path", "server:\n  metrics_path: metrics\n", config.ErrInvalidServePath},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.LoadConfig(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(writeConfig(t, "build: [unclosed\n"))
	assert.Error(t, err)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("VORONOI_BUILD_MAX_SITES_PER_JOB", "8")

	cfg, err := config.LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Build.MaxSitesPerJob)
}
