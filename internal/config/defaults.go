package config

import (
	"os"
	"path/filepath"
)

// DefaultDataDir returns the default directory for application state.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".roofline"
	}
	return filepath.Join(home, ".local", "share", "roofline")
}

// DefaultDatabasePath returns the default SQLite database location.
func DefaultDatabasePath() string {
	return filepath.Join(DefaultDataDir(), "roofline.db")
}

// DefaultSessionPath returns the default session file location.
func DefaultSessionPath() string {
	return filepath.Join(DefaultDataDir(), "session.json")
}
