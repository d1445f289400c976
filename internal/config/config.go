// Package config provides configuration loading for the ledger.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/Veraticus/spice-ledger/internal/common"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Default store locations per backend.
const (
	DefaultFilePath   = "transactions.txt"
	DefaultSQLitePath = "transactions.db"
)

// EnvPrefix is prepended to environment variable names, e.g. LEDGER_STORE_PATH.
const EnvPrefix = "LEDGER"

// Config is the resolved application configuration.
type Config struct {
	Store   StoreConfig
	Logging LoggingConfig
}

// StoreConfig selects and locates the ledger store.
type StoreConfig struct {
	Backend string
	Path    string
}

// LoggingConfig controls slog output.
type LoggingConfig struct {
	Level  string
	Format string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("store.backend", BackendFile)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// BindEnv makes every key readable from LEDGER_* environment variables.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// LoadDotEnv loads variables from .env files into the process environment.
// Missing files are ignored; variables already set are not overridden.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, path := range paths {
		if err := godotenv.Load(ExpandPath(path)); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// Load resolves the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Store: StoreConfig{
			Backend: strings.ToLower(strings.TrimSpace(v.GetString("store.backend"))),
			Path:    v.GetString("store.path"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
	}

	if cfg.Store.Path == "" {
		cfg.Store.Path = DefaultFilePath
		if cfg.Store.Backend == BackendSQLite {
			cfg.Store.Path = DefaultSQLitePath
		}
	}
	cfg.Store.Path = ExpandPath(cfg.Store.Path)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for unsupported values.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("%w: unknown store backend %q (use %q or %q)", common.ErrInvalidConfig, c.Store.Backend, BackendFile, BackendSQLite)
	}

	if strings.TrimSpace(c.Store.Path) == "" {
		return fmt.Errorf("%w: store path", common.ErrMissingConfig)
	}

	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		return err
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: invalid log format: %s", common.ErrInvalidConfig, c.Logging.Format)
	}

	return nil
}
