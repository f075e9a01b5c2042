package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
	t.Setenv("HOME", filepath.Join(dir, "home"))
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "CHANGELOG.md", cfg.ChangelogPath)
	assert.Equal(t, "setup.py", cfg.VersionFile)
	assert.Equal(t, "", cfg.VerifyCmd)
	assert.False(t, cfg.AllowDirty)
	assert.False(t, cfg.Plain)
}

func TestLoad_ProjectConfig(t *testing.T) {
	dir := isolate(t)

	content := "changelog_path: docs/CHANGES.md\nverify_cmd: make test\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".relkit.yml"), []byte(content), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "docs/CHANGES.md", cfg.ChangelogPath)
	assert.Equal(t, "make test", cfg.VerifyCmd)
	// Unset keys keep their defaults.
	assert.Equal(t, "setup.py", cfg.VersionFile)
}

func TestLoad_CustomProjectConfigPath(t *testing.T) {
	dir := isolate(t)

	custom := filepath.Join(dir, "release.yml")
	require.NoError(t, os.WriteFile(custom, []byte("version_file: pyproject.toml\n"), 0o644))

	cfg, err := Load(custom)
	require.NoError(t, err)
	assert.Equal(t, "pyproject.toml", cfg.VersionFile)
}

func TestLoad_EnvOverridesProject(t *testing.T) {
	dir := isolate(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".relkit.yml"),
		[]byte("changelog_path: from-project.md\n"), 0o644))
	t.Setenv("RELKIT_CHANGELOG_PATH", "from-env.md")
	t.Setenv("RELKIT_ALLOW_DIRTY", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "from-env.md", cfg.ChangelogPath)
	assert.True(t, cfg.AllowDirty)
}

func TestLoad_UserConfig(t *testing.T) {
	dir := isolate(t)

	userDir := filepath.Join(dir, "home", ".config", "relkit")
	require.NoError(t, os.MkdirAll(userDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(userDir, "config.yml"),
		[]byte("plain: true\nversion_file: from-user.py\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Plain)
	assert.Equal(t, "from-user.py", cfg.VersionFile)
}

func TestLoad_ProjectOverridesUser(t *testing.T) {
	dir := isolate(t)

	userDir := filepath.Join(dir, "home", ".config", "relkit")
	require.NoError(t, os.MkdirAll(userDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(userDir, "config.yml"),
		[]byte("version_file: from-user.py\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".relkit.yml"),
		[]byte("version_file: from-project.py\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-project.py", cfg.VersionFile)
}

func TestLoad_LegacyJSONConfig(t *testing.T) {
	dir := isolate(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".relkit.json"),
		[]byte(`{"changelog_path": "legacy.md"}`), 0o644))

	var warnings bytes.Buffer
	cfg, err := LoadWithOptions(LoadOptions{WarningWriter: &warnings})
	require.NoError(t, err)

	assert.Equal(t, "legacy.md", cfg.ChangelogPath)
	assert.Contains(t, warnings.String(), "deprecated JSON config")
}

func TestLoad_YAMLWinsOverLegacy(t *testing.T) {
	dir := isolate(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".relkit.json"),
		[]byte(`{"changelog_path": "legacy.md"}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".relkit.yml"),
		[]byte("changelog_path: current.md\n"), 0o644))

	var warnings bytes.Buffer
	cfg, err := LoadWithOptions(LoadOptions{WarningWriter: &warnings})
	require.NoError(t, err)

	assert.Equal(t, "current.md", cfg.ChangelogPath)
	assert.Contains(t, warnings.String(), "ignored")
}

func TestLoad_SkipWarnings(t *testing.T) {
	dir := isolate(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".relkit.json"),
		[]byte(`{"changelog_path": "legacy.md"}`), 0o644))

	var warnings bytes.Buffer
	_, err := LoadWithOptions(LoadOptions{WarningWriter: &warnings, SkipWarnings: true})
	require.NoError(t, err)
	assert.Empty(t, warnings.String())
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := isolate(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".relkit.yml"),
		[]byte(":\tnot yaml ["), 0o644))

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_ValidationRejectsEmptyPaths(t *testing.T) {
	isolate(t)
	t.Setenv("RELKIT_CHANGELOG_PATH", "")

	// An explicitly empty changelog path is a configuration error.
	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "changelog_path")
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(&Configuration{ChangelogPath: "c", VersionFile: "v"}))
	assert.Error(t, Validate(&Configuration{VersionFile: "v"}))
	assert.Error(t, Validate(&Configuration{ChangelogPath: "c"}))
}
