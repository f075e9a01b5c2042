package config

// Defaults returns the default configuration values keyed by koanf path.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"changelog_path": "CHANGELOG.md",
		"version_file":   "setup.py",
		"verify_cmd":     "",
		"allow_dirty":    false,
		"plain":          false,
	}
}

// DefaultConfigTemplate is a fully commented project config template.
const DefaultConfigTemplate = `# relkit configuration
# Priority: RELKIT_* env vars > .relkit.yml > ~/.config/relkit/config.yml > defaults

changelog_path: CHANGELOG.md   # Changelog artifact
version_file: setup.py         # File carrying the version='X.Y.Z' token
verify_cmd: ""                 # Shell command run to verify a release (empty = skip)
allow_dirty: false             # Allow releasing with uncommitted changes
plain: false                   # Disable colors and icons in output
`
