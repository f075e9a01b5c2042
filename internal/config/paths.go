package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the XDG-compliant user config location,
// ~/.config/relkit/config.yml.
func UserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "relkit", "config.yml"), nil
}

// ProjectConfigPath returns the project config location relative to the
// working directory.
func ProjectConfigPath() string {
	return ".relkit.yml"
}

// LegacyProjectConfigPath returns the deprecated JSON project config
// location.
func LegacyProjectConfigPath() string {
	return ".relkit.json"
}
