// Package config loads the settings of the voronoi command from defaults, an
// optional YAML file and VORONOI_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/0x0FACED/go-fortune-parallel/pkg/logger"
	"github.com/0x0FACED/go-fortune-parallel/pkg/voronoi"
)

const (
	configName      = "voronoi"
	configType      = "yaml"
	envPrefix       = "VORONOI"
	envKeySeparator = "_"
)

const (
	DefaultMaxSitesPerJob      = 64
	DefaultEventCapacityFactor = voronoi.DefaultEventCapacityFactor
	DefaultRayExtentFactor     = voronoi.DefaultRayExtentFactor
	DefaultBoundsXl            = 0.0
	DefaultBoundsXr            = 1000.0
	DefaultBoundsYt            = 0.0
	DefaultBoundsYb            = 1000.0
	DefaultLogLevel            = "info"
	DefaultServerAddr          = ":8080"
	DefaultMetricsPath         = "/metrics"
)

var (
	ErrInvalidJobSize   = errors.New("build.max_sites_per_job must be positive")
	ErrInvalidBounds    = errors.New("bounds must satisfy xl < xr and yt < yb")
	ErrInvalidLogLevel  = errors.New("unknown log.level")
	ErrInvalidServePath = errors.New("server.metrics_path must start with /")
)

type Config struct {
	Build  BuildConfig  `mapstructure:"build"`
	Bounds BoundsConfig `mapstructure:"bounds"`
	Log    LogConfig    `mapstructure:"log"`
	Server ServerConfig `mapstructure:"server"`
}

type BuildConfig struct {
	MaxSitesPerJob      int     `mapstructure:"max_sites_per_job"`
	EventCapacityFactor float64 `mapstructure:"event_capacity_factor"`
	RayExtentFactor     float64 `mapstructure:"ray_extent_factor"`
}

type BoundsConfig struct {
	Xl float64 `mapstructure:"xl"`
	Xr float64 `mapstructure:"xr"`
	Yt float64 `mapstructure:"yt"`
	Yb float64 `mapstructure:"yb"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type ServerConfig struct {
	Addr        string `mapstructure:"addr"`
	MetricsPath string `mapstructure:"metrics_path"`
}

// LoadConfig loads configuration from file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise voronoi.yaml is searched in CWD and $HOME/.config/voronoi.
// Missing config file is not an error; defaults are used.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	applyDefaults(v)

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", configName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "validate config")
	}
	return &cfg, nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("build.max_sites_per_job", DefaultMaxSitesPerJob)
	v.SetDefault("build.event_capacity_factor", DefaultEventCapacityFactor)
	v.SetDefault("build.ray_extent_factor", DefaultRayExtentFactor)

	v.SetDefault("bounds.xl", DefaultBoundsXl)
	v.SetDefault("bounds.xr", DefaultBoundsXr)
	v.SetDefault("bounds.yt", DefaultBoundsYt)
	v.SetDefault("bounds.yb", DefaultBoundsYb)

	v.SetDefault("log.level", DefaultLogLevel)

	v.SetDefault("server.addr", DefaultServerAddr)
	v.SetDefault("server.metrics_path", DefaultMetricsPath)
}

func (c *Config) Validate() error {
	if c.Build.MaxSitesPerJob <= 0 {
		return errors.Wrapf(ErrInvalidJobSize, "got %d", c.Build.MaxSitesPerJob)
	}
	if !c.BoundingBox().Valid() {
		return errors.Wrapf(ErrInvalidBounds, "got %+v", c.Bounds)
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrapf(ErrInvalidLogLevel, "got %q", c.Log.Level)
	}
	if !strings.HasPrefix(c.Server.MetricsPath, "/") {
		return errors.Wrapf(ErrInvalidServePath, "got %q", c.Server.MetricsPath)
	}
	return nil
}

func (c *Config) BoundingBox() voronoi.BoundingBox {
	return voronoi.NewBoundingBox(c.Bounds.Xl, c.Bounds.Xr, c.Bounds.Yt, c.Bounds.Yb)
}

func (c *Config) LogLevel() zapcore.Level {
	lvl, err := logger.ParseLevel(c.Log.Level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// BuildOptions maps the build section to library options. Factor checks are
// left to the options themselves.
func (c *Config) BuildOptions() []voronoi.Option {
	return []voronoi.Option{
		voronoi.WithEventCapacityFactor(c.Build.EventCapacityFactor),
		voronoi.WithRayExtentFactor(c.Build.RayExtentFactor),
	}
}
