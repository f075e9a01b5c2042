// Package config provides hierarchical configuration management for
// relkit using koanf. Configuration is loaded with priority:
// environment variables > project config (.relkit.yml) > user config
// (~/.config/relkit/config.yml) > defaults. A legacy JSON project config
// (.relkit.json) is still read, with a migration warning.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Configuration holds the relkit tool settings.
type Configuration struct {
	// ChangelogPath is the changelog artifact location.
	// Can be set via RELKIT_CHANGELOG_PATH.
	ChangelogPath string `koanf:"changelog_path"`

	// VersionFile is the version declaration artifact: any text file
	// carrying a version='X.Y.Z' token (e.g., setup.py).
	// Can be set via RELKIT_VERSION_FILE.
	VersionFile string `koanf:"version_file"`

	// VerifyCmd is the shell command run as the post-mutation
	// verification hook during release. Empty disables verification.
	// Can be set via RELKIT_VERIFY_CMD.
	VerifyCmd string `koanf:"verify_cmd"`

	// AllowDirty permits releasing from a git worktree with uncommitted
	// changes. Can be set via RELKIT_ALLOW_DIRTY.
	AllowDirty bool `koanf:"allow_dirty"`

	// Plain disables colors and icons in terminal output.
	// Can be set via RELKIT_PLAIN.
	Plain bool `koanf:"plain"`
}

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .relkit.yml)
	ProjectConfigPath string
	// WarningWriter receives migration warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses migration warnings
	SkipWarnings bool
}

// Load loads configuration from user, project, and environment sources.
// Priority: environment variables > project config > user config > defaults.
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options.
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := opts.WarningWriter
	if warningWriter == nil {
		warningWriter = os.Stderr
	}

	for key, value := range Defaults() {
		k.Set(key, value)
	}

	if err := loadUserConfig(k); err != nil {
		return nil, err
	}
	if err := loadProjectConfig(k, opts.ProjectConfigPath, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider("RELKIT_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment config: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// loadUserConfig loads the user-level YAML config if present.
func loadUserConfig(k *koanf.Koanf) error {
	path, err := UserConfigPath()
	if err != nil || !fileExists(path) {
		return nil
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("loading user config %s: %w", path, err)
	}
	return nil
}

// loadProjectConfig loads the project-level config.
// YAML is preferred; a legacy JSON config is read with a warning.
func loadProjectConfig(k *koanf.Koanf, customPath string, warningWriter io.Writer, skipWarnings bool) error {
	yamlPath := ProjectConfigPath()
	if customPath != "" {
		yamlPath = customPath
	}
	legacyPath := LegacyProjectConfigPath()

	if fileExists(yamlPath) {
		if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading project config %s: %w", yamlPath, err)
		}
		if fileExists(legacyPath) && !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: legacy JSON config found at %s (ignored, using %s)\n", legacyPath, yamlPath)
		}
		return nil
	}

	if fileExists(legacyPath) {
		if err := k.Load(file.Provider(legacyPath), json.Parser()); err != nil {
			return fmt.Errorf("loading legacy project config %s: %w", legacyPath, err)
		}
		if !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: using deprecated JSON config at %s; migrate it to %s\n", legacyPath, ProjectConfigPath())
		}
	}
	return nil
}

// envTransform converts environment variable names to config keys.
// Example: RELKIT_VERSION_FILE -> version_file.
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "RELKIT_"))
}

// fileExists returns true if the file exists and is readable.
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
