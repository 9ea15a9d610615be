// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
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

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "bikeshare", "config.toml")
}

// ResolveSource joins a relative dataset source onto dir. Absolute sources are returned as is.
func ResolveSource(dir, src string) string {
	if filepath.IsAbs(src) || dir == "" {
		return src
	}
	return filepath.Join(dir, src)
}
