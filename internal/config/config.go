// Package config handles the XDG configuration directory and the optional
// config.yaml inside it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// FileName is the optional settings file inside the config directory.
	FileName = "config.yaml"

	// DBFile is the SQLite database filename.
	DBFile = "todo.db"
)

// Settings are the values read from config.yaml. Every field is optional.
type Settings struct {
	// Storage selects the backend: sqlite (default), redis or memory.
	Storage string `yaml:"storage"`

	RedisAddr   string `yaml:"redis_addr"`
	RedisPrefix string `yaml:"redis_prefix"`

	// Latency toggles the simulated operation delays. Defaults to on.
	Latency *bool `yaml:"latency"`

	// SessionTTL bounds how long a login stays valid. Zero never expires.
	SessionTTL time.Duration `yaml:"session_ttl"`

	// SessionSecret signs session tokens. When empty a key is generated.
	SessionSecret string `yaml:"session_secret"`
}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Logger receives diagnostics. Nil discards them.
	Logger *slog.Logger

	Settings Settings
}

// New creates a Config for the default or specified config directory and
// loads config.yaml from it if present.
// If configDir is empty, uses XDG_CONFIG_HOME/todo or $HOME/.config/todo.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir}
	if err := cfg.load(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

func (c *Config) load() error {
	data, err := os.ReadFile(c.FilePath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", FileName, err)
	}
	if err := yaml.Unmarshal(data, &c.Settings); err != nil {
		return fmt.Errorf("invalid %s: %w", FileName, err)
	}
	return nil
}

// FilePath returns the path to config.yaml.
func (c *Config) FilePath() string {
	return filepath.Join(c.Dir, FileName)
}

// DBPath returns the path to the SQLite database.
func (c *Config) DBPath() string {
	return filepath.Join(c.Dir, DBFile)
}

// LatencyEnabled reports whether operations simulate network delay.
func (c *Config) LatencyEnabled() bool {
	return c.Settings.Latency == nil || *c.Settings.Latency
}

// Log returns the configured logger, or one that discards everything.
func (c *Config) Log() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}
