// Package fs provides filesystem access for saved result documents and config.
package fs

import (
	"os"
	"path/filepath"
)

// DefaultConfigDir returns the default config directory for mvreport.
// Uses XDG_CONFIG_HOME if set, otherwise falls back to ~/.config/mvreport,
// or the working directory if home is unavailable.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mvreport")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config", "mvreport")
}
