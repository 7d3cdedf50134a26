// Package config loads jam settings from a YAML file and JAM_ environment
// variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/faizmokh/jam/internal/ledger"
	"github.com/faizmokh/jam/internal/store"
	"github.com/faizmokh/jam/internal/timer"
)

const (
	keyDefaultDescription = "tracker.default_description"
	keyTickInterval       = "tracker.tick_interval"
	keyStorageDriver      = "storage.driver"
	keyStoragePath        = "storage.path"
	keyReportTimezone     = "report.timezone"
	keyLogLevel           = "log.level"
	keyLogMaxSize         = "log.max_size_mb"
	keyLogMaxBackups      = "log.max_backups"

	envPrefix = "JAM"
)

type (
	// Config holds all configuration settings.
	Config struct {
		Tracker TrackerConfig `mapstructure:"tracker"`
		Storage StorageConfig `mapstructure:"storage"`
		Report  ReportConfig  `mapstructure:"report"`
		Log     LogConfig     `mapstructure:"log"`

		// Path is the file the settings were read from.
		Path string `mapstructure:"-"`
	}

	TrackerConfig struct {
		DefaultDescription string        `mapstructure:"default_description"`
		TickInterval       time.Duration `mapstructure:"tick_interval"`
	}

	StorageConfig struct {
		Driver string `mapstructure:"driver"`
		// Path is empty unless the user pinned the database file.
		Path string `mapstructure:"path"`
	}

	ReportConfig struct {
		Timezone string `mapstructure:"timezone"`
	}

	LogConfig struct {
		Level      string `mapstructure:"level"`
		MaxSizeMB  int    `mapstructure:"max_size_mb"`
		MaxBackups int    `mapstructure:"max_backups"`
	}
)

// Load reads configPath, writing a file with the defaults first if none
// exists, and applies JAM_ environment overrides such as JAM_STORAGE_DRIVER.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	err := v.ReadInConfig()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading config file failed: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
			return nil, fmt.Errorf("create config dir: %w", err)
		}
		if err := v.WriteConfig(); err != nil {
			return nil, fmt.Errorf("writing default config failed: %w", err)
		}
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	c.Path = configPath

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyDefaultDescription, ledger.DefaultDescription)
	v.SetDefault(keyTickInterval, timer.DefaultTickInterval.String())
	v.SetDefault(keyStorageDriver, store.DriverBolt)
	v.SetDefault(keyStoragePath, "")
	v.SetDefault(keyReportTimezone, "")
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyLogMaxSize, 5)
	v.SetDefault(keyLogMaxBackups, 3)
}

// Validate rejects settings jam cannot run with.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case store.DriverBolt, store.DriverSQLite, store.DriverMemory:
	default:
		return fmt.Errorf("%w: storage.driver %q", ErrInvalid, c.Storage.Driver)
	}
	if c.Tracker.TickInterval <= 0 {
		return fmt.Errorf("%w: tracker.tick_interval must be positive", ErrInvalid)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves report.timezone. Empty means the host's local timezone.
func (c *Config) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.Report.Timezone)
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: report.timezone %q: %v", ErrInvalid, name, err)
	}
	return loc, nil
}
