// Package config loads skilldash settings from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration.
type Config struct {
	Database    DatabaseConfig    `yaml:"database"`
	Log         LogConfig         `yaml:"log"`
	User        UserConfig        `yaml:"user"`
	Assessments AssessmentsConfig `yaml:"assessments"`
	Update      UpdateConfig      `yaml:"update"`
}

// DatabaseConfig locates the SQLite database.
type DatabaseConfig struct {
	// Path to the database file. Empty means the XDG data directory.
	Path string `yaml:"path,omitempty"`
}

// LogConfig controls the file logger.
type LogConfig struct {
	Level string `yaml:"level"`
	// Path to the log file. Empty means the XDG state directory.
	Path string `yaml:"path,omitempty"`
}

// UserConfig seeds the local profile on first run.
type UserConfig struct {
	Email string `yaml:"email,omitempty"`
	Name  string `yaml:"name,omitempty"`
}

// AssessmentsConfig points at extra assessment definitions.
type AssessmentsConfig struct {
	ExtraFile string `yaml:"extra_file,omitempty"`
}

// UpdateConfig names the GitHub repository releases are fetched from.
type UpdateConfig struct {
	Owner string `yaml:"owner"`
	Repo  string `yaml:"repo"`
}

// ValidLogLevels lists the accepted log levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Update: UpdateConfig{
			Owner: "abhisek",
			Repo:  "skilldash",
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/skilldash/config.yaml, falling back
// to ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "skilldash", "config.yaml"), nil
}

// Load reads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to a YAML file, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if p := os.Getenv("SKILLDASH_DB"); p != "" {
		c.Database.Path = p
	}
	if lvl := os.Getenv("SKILLDASH_LOG_LEVEL"); lvl != "" {
		c.Log.Level = lvl
	}
	if email := os.Getenv("SKILLDASH_EMAIL"); email != "" {
		c.User.Email = email
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	for _, lvl := range ValidLogLevels {
		if c.Log.Level == lvl {
			return nil
		}
	}
	return fmt.Errorf("invalid log level: %s (valid: %v)", c.Log.Level, ValidLogLevels)
}
