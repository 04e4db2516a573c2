// Package config handles the TOML configuration file for tally.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/xolan/tally/internal/osutil"
)

const (
	// AppName is the application name used for the config directory
	AppName = "tally"
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "config.toml"
)

// Config represents the application configuration.
type Config struct {
	// DataFile is the name of the registry data file inside the app
	// directory. Empty selects the built-in default.
	DataFile string `toml:"data_file"`
	// DefaultCode is the charge code punched when none is given on the
	// command line. Empty means no default.
	DefaultCode string `toml:"default_code"`
	// WeekStartDay defines which day starts the week (monday or sunday)
	WeekStartDay string `toml:"week_start_day"`
	// Timezone is the IANA timezone for window construction, or "Local"
	Timezone string `toml:"timezone"`
	// Theme is the TUI color theme name
	Theme string `toml:"theme"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DataFile:     "",
		DefaultCode:  "",
		WeekStartDay: "monday",
		Timezone:     "Local",
		Theme:        "",
	}
}

// GetConfigPath returns the path to the config file.
// Uses os.UserConfigDir() for a cross-platform XDG-compliant config
// directory, creating it if needed.
func GetConfigPath() (string, error) {
	configDir, err := osutil.Provider.UserConfigDir()
	if err != nil {
		return "", err
	}

	appDir := filepath.Join(configDir, AppName)
	if err := osutil.Provider.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(appDir, ConfigFile), nil
}

// LoadOrDefault reads the config file at path. A missing file yields the
// defaults; an unreadable or invalid file is an error. The loaded config is
// normalized and validated before it is returned.
func LoadOrDefault(path string) (Config, error) {
	cfg := DefaultConfig()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config in %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config as TOML to path.
func Save(path string, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return err
	}
	return f.Close()
}

// Normalize lowercases and trims fields that are compared case-insensitively.
func (c *Config) Normalize() {
	c.WeekStartDay = strings.ToLower(strings.TrimSpace(c.WeekStartDay))
	c.DataFile = strings.TrimSpace(c.DataFile)
	c.DefaultCode = strings.TrimSpace(c.DefaultCode)
	c.Theme = strings.TrimSpace(c.Theme)
}

// Validate checks field values. Call Normalize first.
func (c *Config) Validate() error {
	switch c.WeekStartDay {
	case "monday", "sunday":
	default:
		return fmt.Errorf("week_start_day must be %q or %q, got %q", "monday", "sunday", c.WeekStartDay)
	}

	if _, err := c.Location(); err != nil {
		return fmt.Errorf("unknown timezone %q: %w", c.Timezone, err)
	}

	if strings.ContainsAny(c.DataFile, `/\`) {
		return fmt.Errorf("data_file must be a bare filename, got %q", c.DataFile)
	}

	return nil
}

// Location resolves the configured timezone. "Local" or empty means the
// system local timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// GenerateSampleConfig returns a commented sample config file.
func GenerateSampleConfig() string {
	return `# tally configuration file
#
# All settings are optional; the defaults are shown below.

# Name of the registry data file inside the tally config directory.
#data_file = "codes.json"

# Charge code punched when 'tally punch' is run with no identifier.
#default_code = ""

# Which day starts the week for weekly reports: "monday" or "sunday".
#week_start_day = "monday"

# IANA timezone for report windows, or "Local" for the system timezone.
#timezone = "Local"

# TUI color theme, e.g. "dracula". Run 'tally tui' and cycle themes
# with 't' to preview.
#theme = ""
`
}
