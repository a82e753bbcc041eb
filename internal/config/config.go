// Package config resolves where the task file lives and how chores logs.
//
// Values are applied in priority order:
//  1. Defaults
//  2. Config file ($XDG_CONFIG_HOME/chores/config.toml)
//  3. Environment variables (CHORES_FILE, CHORES_FORMAT, CHORES_LOG_LEVEL)
//  4. Command-line flags
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	choreserrors "github.com/abatilo/chores/internal/errors"
	"github.com/abatilo/chores/internal/logging"
)

const (
	appName         = "chores"
	DefaultFileName = "todo.json"
	DefaultLogLevel = "warn"
)

// Config holds the resolved settings.
type Config struct {
	// DataFile is the task list file.
	DataFile string `toml:"data_file"`
	// Format forces the codec ("json" or "yaml"). Empty picks by extension.
	Format string `toml:"format"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`
	// HideStatus drops the [ ] / [*] column from list output.
	HideStatus bool `toml:"hide_status"`

	// ConfigFile is the file the settings were read from, if any.
	ConfigFile string `toml:"-"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		DataFile: DefaultDataFile(),
		LogLevel: DefaultLogLevel,
	}
}

// Load resolves defaults, the config file and the environment. An empty
// configPath means the default location, which may be absent.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	explicit := configPath != ""
	if !explicit {
		configPath = DefaultConfigPath()
	}
	configPath = ExpandPath(configPath)

	if err := loadConfigFile(cfg, configPath); err != nil {
		if !errors.Is(err, fs.ErrNotExist) || explicit {
			return nil, fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	} else {
		cfg.ConfigFile = configPath
	}

	loadFromEnv(cfg)

	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadConfigFile decodes TOML from path into cfg and rejects unknown keys.
func loadConfigFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// loadFromEnv overrides cfg from CHORES_* environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("CHORES_FILE"); v != "" {
		cfg.DataFile = v
	}
	if v := os.Getenv("CHORES_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("CHORES_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

// ApplyFlags overrides cfg with the flags the user actually set.
func (c *Config) ApplyFlags(flags *pflag.FlagSet) error {
	if f := flags.Lookup("file"); f != nil && f.Changed {
		c.DataFile = f.Value.String()
	}
	if f := flags.Lookup("format"); f != nil && f.Changed {
		c.Format = f.Value.String()
	}
	if f := flags.Lookup("log-level"); f != nil && f.Changed {
		c.LogLevel = f.Value.String()
	}
	return c.finalize()
}

func (c *Config) finalize() error {
	c.DataFile = ExpandPath(c.DataFile)
	if c.DataFile == "" {
		return choreserrors.ValidationError{Field: "data_file", Reason: "must not be empty"}
	}
	if abs, err := filepath.Abs(c.DataFile); err == nil {
		c.DataFile = abs
	}

	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	switch c.Format {
	case "", "json", "yaml":
	default:
		return choreserrors.ValidationError{Field: "format", Value: c.Format, Reason: "expected json or yaml"}
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return choreserrors.ValidationError{Field: "log_level", Value: c.LogLevel, Reason: "expected debug, info, warn or error"}
	}
	return nil
}

// EnsureDataFile creates the data file's directory and an empty data file if
// they are missing. It reports whether the file was created.
func EnsureDataFile(path string) (bool, error) {
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return false, fmt.Errorf("%s is a directory", path)
		}
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}

	//nolint:gosec // G301: 0755 is appropriate for a user data directory
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create data dir: %w", err)
	}
	//nolint:gosec // G304: the path is the user's own configured data file
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return false, fmt.Errorf("create data file: %w", err)
	}
	return true, f.Close()
}
