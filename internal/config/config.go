// Package config resolves the planner home directory and loads config.toml.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Storage drivers.
const (
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// FileName is the config file looked up under the home directory.
const FileName = "config.toml"

// Config is the planner configuration. Relative paths are resolved against Home.
type Config struct {
	Home    string        `toml:"-"`
	Storage StorageConfig `toml:"storage"`
	Export  ExportConfig  `toml:"export"`
	Log     LogConfig     `toml:"log"`
	Metrics MetricsConfig `toml:"metrics"`
}

type StorageConfig struct {
	Driver      string `toml:"driver"`
	DataDir     string `toml:"data_dir"`
	DSN         string `toml:"dsn"`
	RedisAddr   string `toml:"redis_addr"`
	RedisPrefix string `toml:"redis_prefix"`
}

type ExportConfig struct {
	Dir string `toml:"dir"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // console or json
}

type MetricsConfig struct {
	// Textfile, when set, receives a Prometheus text exposition on exit.
	Textfile string `toml:"textfile"`
}

// Default returns the configuration used when no file is present.
func Default(home string) *Config {
	return &Config{
		Home: home,
		Storage: StorageConfig{
			Driver:  DriverFile,
			DataDir: "db",
		},
		Export: ExportConfig{Dir: "out"},
		Log:    LogConfig{Level: "warn", Format: "console"},
	}
}

// Load reads configuration in priority order:
// 1. Defaults
// 2. path, or <home>/config.toml when path is empty (missing file is fine)
// 3. Environment variables
func Load(home, path string) (*Config, error) {
	cfg := Default(home)
	explicit := path != ""
	if !explicit {
		path = filepath.Join(home, FileName)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if !errors.Is(err, os.ErrNotExist) || explicit {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}
	loadFromEnv(cfg)
	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("PLANNER_STORAGE_DRIVER"); v != "" {
		cfg.Storage.Driver = v
	}
	if v := os.Getenv("PLANNER_DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := os.Getenv("PLANNER_DSN"); v != "" {
		cfg.Storage.DSN = v
	}
	if v := os.Getenv("PLANNER_REDIS_ADDR"); v != "" {
		cfg.Storage.RedisAddr = v
	}
	if v := os.Getenv("PLANNER_EXPORT_DIR"); v != "" {
		cfg.Export.Dir = v
	}
	if v := os.Getenv("PLANNER_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("PLANNER_METRICS_TEXTFILE"); v != "" {
		cfg.Metrics.Textfile = v
	}
}

func (c *Config) finalize() error {
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	switch c.Storage.Driver {
	case DriverFile, DriverMemory, DriverSQLite, DriverPostgres, DriverRedis:
	case "":
		c.Storage.Driver = DriverFile
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	c.Storage.DataDir = c.resolve(c.Storage.DataDir)
	c.Export.Dir = c.resolve(c.Export.Dir)
	if c.Metrics.Textfile != "" {
		c.Metrics.Textfile = c.resolve(c.Metrics.Textfile)
	}
	return nil
}

func (c *Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Home, p)
}

// LockPath is the file used to serialize writers sharing DataDir.
func (c *Config) LockPath() string {
	return filepath.Join(c.Storage.DataDir, ".lock")
}

// SQLitePath is the database file used by the sqlite driver.
func (c *Config) SQLitePath() string {
	if c.Storage.DSN != "" {
		return c.resolve(c.Storage.DSN)
	}
	return filepath.Join(c.Storage.DataDir, "planner.sqlite")
}

type cfgKey struct{}

// WithConfig stores the loaded configuration in the context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, cfgKey{}, cfg)
}

// FromContext returns the configuration stored by WithConfig.
func FromContext(ctx context.Context) (*Config, bool) {
	cfg, ok := ctx.Value(cfgKey{}).(*Config)
	return cfg, ok && cfg != nil
}
