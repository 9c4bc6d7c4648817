package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
)

type Config struct {
	Addr         string        `yaml:"addr"`
	APITimeout   time.Duration `yaml:"timeout"`
	Storage      string        `yaml:"storage"`
	DatabasePath string        `yaml:"database_path"`
	Seed         bool          `yaml:"seed"`
	LogLevel     string        `yaml:"log_level"`
	Metrics      bool          `yaml:"metrics"`
}

// LoadConfig builds defaults from BEC_* environment variables and then
// overlays the YAML file at path, if any.
func LoadConfig(path string) (*Config, error) {
	apiTimeout := 15 * time.Second

	cfg := &Config{
		Addr:         getEnv("BEC_ADDR", ":8080"),
		APITimeout:   apiTimeout,
		Storage:      getEnv("BEC_STORAGE", StorageMemory),
		DatabasePath: getEnv("BEC_DATABASE_PATH", "bectrack.db"),
		Seed:         getEnvBool("BEC_SEED", true),
		LogLevel:     getEnv("BEC_LOG_LEVEL", "info"),
		Metrics:      getEnvBool("BEC_METRICS", true),
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate checks the configuration is usable.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if c.APITimeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %v", c.APITimeout))
	}
	switch c.Storage {
	case StorageMemory:
	case StorageSQLite:
		if strings.TrimSpace(c.DatabasePath) == "" {
			errs = append(errs, errors.New("database_path is required for sqlite storage"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage %q (want %s or %s)", c.Storage, StorageMemory, StorageSQLite))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// SlogLevel parses LogLevel (debug, info, warn, error).
func (c *Config) SlogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}

	return def
}
