// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultDatabasePath is where the item store lives when database.path is
// not configured.
const DefaultDatabasePath = "$HOME/.local/share/adjustly/adjustly.db"

// DefaultCatalogPath is where the promo catalog is looked up when
// catalog.path is not configured.
const DefaultCatalogPath = "$HOME/.config/adjustly/promos.json"

// ExpandPath expands ~ and environment variables in a file path.
// It handles both ~ for home directory and $VAR style environment variables.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}
