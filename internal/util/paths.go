package util

import (
	"os"
	"path/filepath"
	"strings"
)

// HomeDir returns the user's home directory
func HomeDir() string {
	home, _ := os.UserHomeDir()
	return home
}

// SnipconvConfigPath returns the directory holding the snipconv config file.
// XDG_CONFIG_HOME is honored when set.
func SnipconvConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "snipconv")
	}
	return filepath.Join(HomeDir(), ".config", "snipconv")
}

// DefaultDataPath returns the default location of the normalized snippet file.
func DefaultDataPath() string {
	return filepath.Join(SnipconvConfigPath(), "data.json")
}

// ExpandPath expands a leading ~ to the home directory and resolves
// relative paths against baseDir. Returns "" for an empty input.
func ExpandPath(path, baseDir string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		return HomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(HomeDir(), path[2:])
	}
	if !filepath.IsAbs(path) && baseDir != "" {
		return filepath.Join(baseDir, path)
	}
	return path
}
