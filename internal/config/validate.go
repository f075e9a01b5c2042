package config

import "fmt"

// Validate checks that a configuration is usable.
func Validate(cfg *Configuration) error {
	if cfg.ChangelogPath == "" {
		return fmt.Errorf("changelog_path must not be empty")
	}
	if cfg.VersionFile == "" {
		return fmt.Errorf("version_file must not be empty")
	}
	return nil
}
