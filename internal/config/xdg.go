// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

const appName = "ellinika"

// Environment overrides for the default paths.
const (
	EnvConfigPath = "ELLINIKA_CONFIG"
	EnvDeckPath   = "ELLINIKA_DECK"
	EnvDBPath     = "ELLINIKA_DB"
)

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultDeckPath returns the deck path from the environment, or empty for
// the built-in deck.
func DefaultDeckPath() string {
	return os.Getenv(EnvDeckPath)
}

// DefaultDeckDir returns the directory for user decks.
func DefaultDeckDir() string {
	return filepath.Join(XDGConfigHome(), appName, "decks")
}

// DefaultDBPath returns the default path for the SQLite drill journal.
func DefaultDBPath() string {
	if v := os.Getenv(EnvDBPath); v != "" {
		return v
	}
	return filepath.Join(XDGDataHome(), appName, appName+".db")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	if v := os.Getenv(EnvConfigPath); v != "" {
		return v
	}
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}

// ResolveDeckPath looks up a relative deck path that does not exist in the
// working directory inside DefaultDeckDir.
func ResolveDeckPath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if _, err := os.Stat(path); err == nil {
		return path
	}
	candidate := filepath.Join(DefaultDeckDir(), path)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return path
}
