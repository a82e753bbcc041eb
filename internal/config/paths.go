package config

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultDataFile returns $XDG_DATA_HOME/chores/todo.json, falling back to
// ~/.local/share when XDG_DATA_HOME is unset.
func DefaultDataFile() string {
	return filepath.Join(xdgDir("XDG_DATA_HOME", ".local", "share"), appName, DefaultFileName)
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/chores/config.toml, falling back
// to ~/.config when XDG_CONFIG_HOME is unset.
func DefaultConfigPath() string {
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), appName, "config.toml")
}

func xdgDir(env string, fallback ...string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(fallback...)
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

// ExpandPath expands environment variables and a leading ~ in p.
func ExpandPath(p string) string {
	if p == "" {
		return p
	}

	expanded := os.ExpandEnv(p)
	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return expanded
		}
		return filepath.Join(home, strings.TrimPrefix(expanded, "~"))
	}
	return expanded
}
