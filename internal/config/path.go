// Package config resolves roofline's on-disk locations: the SQLite
// database, the session file, and any user-supplied overrides from the
// config file or environment.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves a path the way users write it in config.yaml or
// ROOFLINE_* variables: a leading ~ becomes the home directory, and
// $VAR references are expanded. Paths needing no expansion pass
// through unchanged.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	switch {
	case path == "~":
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	case strings.HasPrefix(path, "~/"):
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}

	return os.ExpandEnv(path)
}
