package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/relkit/relkit/internal/release"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestValidateCmd(t *testing.T) {
	workspace(t, testSetupPy, testChangelog)

	stdout, _, err := runRelkit(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, stdout, "CHANGELOG.md is valid")
}

func TestValidateCmd_Violations(t *testing.T) {
	bad := "## [1.0.0] - 2024-01-01\n\n### Added\n- a\n\n## [2.0.0] - 2024-02-01\n\n### Added\n- b\n"
	workspace(t, testSetupPy, bad)

	_, stderr, err := runRelkit(t, "validate")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, ExitCode(err))
	assert.Contains(t, stderr, "violation(s)")
	assert.Contains(t, stderr, "version-order")
}

func TestAddCmd(t *testing.T) {
	dir := workspace(t, testSetupPy, testChangelog)

	stdout, _, err := runRelkit(t, "add", "--type", "added", "--message", "Support BTC conversion")
	require.NoError(t, err)
	assert.Contains(t, stdout, "added added entry")

	changelogText := readWorkspaceFile(t, dir, "CHANGELOG.md")
	assert.Contains(t, changelogText, "- Support BTC conversion")
}

func TestAddCmd_InvalidType(t *testing.T) {
	workspace(t, testSetupPy, testChangelog)

	_, _, err := runRelkit(t, "add", "--type", "improved", "--message", "x")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidArguments, ExitCode(err))
}

func TestAddCmd_BlankMessage(t *testing.T) {
	workspace(t, testSetupPy, testChangelog)

	_, _, err := runRelkit(t, "add", "--type", "fixed", "--message", "   ")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidArguments, ExitCode(err))
}

func TestCurrentCmd(t *testing.T) {
	workspace(t, testSetupPy, testChangelog)

	stdout, _, err := runRelkit(t, "current")
	require.NoError(t, err)
	assert.Equal(t, "1.0.0\n", stdout)
}

func TestLatestCmd(t *testing.T) {
	workspace(t, testSetupPy, testChangelog)

	stdout, _, err := runRelkit(t, "latest")
	require.NoError(t, err)
	assert.Equal(t, "1.0.0\n", stdout)
}

func TestLatestCmd_NoReleases(t *testing.T) {
	workspace(t, testSetupPy, "## [Unreleased]\n\n### Added\n- pending\n")

	stdout, _, err := runRelkit(t, "latest")
	require.NoError(t, err)
	assert.Equal(t, "0.0.0\n", stdout)
}

func TestSuggestCmd_Quiet(t *testing.T) {
	workspace(t, testSetupPy, testChangelog)

	stdout, _, err := runRelkit(t, "suggest", "--quiet")
	require.NoError(t, err)
	assert.Equal(t, "patch\n", stdout)
}

func TestSuggestCmd_Full(t *testing.T) {
	workspace(t, testSetupPy, testChangelog)

	stdout, _, err := runRelkit(t, "suggest")
	require.NoError(t, err)
	assert.Contains(t, stdout, "1.0.0")
	assert.Contains(t, stdout, "PATCH")
	assert.Contains(t, stdout, "1.0.1")
	assert.Contains(t, stdout, "Incorrect exchange rate rounding")
}

func TestBumpCmd_ExplicitType(t *testing.T) {
	dir := workspace(t, testSetupPy, testChangelog)

	stdout, _, err := runRelkit(t, "bump", "--type", "minor")
	require.NoError(t, err)
	assert.Contains(t, stdout, "1.0.0 to 1.1.0")

	assert.Contains(t, readWorkspaceFile(t, dir, "setup.py"), "version='1.1.0'")
	// The changelog is untouched by bump.
	assert.Equal(t, testChangelog, readWorkspaceFile(t, dir, "CHANGELOG.md"))
}

func TestBumpCmd_Auto(t *testing.T) {
	dir := workspace(t, testSetupPy, testChangelog)

	stdout, _, err := runRelkit(t, "bump", "--auto")
	require.NoError(t, err)
	assert.Contains(t, stdout, "auto-detected bump type: patch")
	assert.Contains(t, readWorkspaceFile(t, dir, "setup.py"), "version='1.0.1'")
}

func TestBumpCmd_AutoNothingPending(t *testing.T) {
	dir := workspace(t, testSetupPy, "## [Unreleased]\n\n## [1.0.0] - 2024-01-01\n\n### Added\n- a\n")

	stdout, _, err := runRelkit(t, "bump", "--auto")
	require.NoError(t, err)
	assert.Contains(t, stdout, "no version bump needed")
	assert.Contains(t, readWorkspaceFile(t, dir, "setup.py"), "version='1.0.0'")
}

func TestBumpCmd_InvalidType(t *testing.T) {
	workspace(t, testSetupPy, testChangelog)

	_, _, err := runRelkit(t, "bump", "--type", "huge")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidArguments, ExitCode(err))
}

func TestReleaseCmd(t *testing.T) {
	dir := workspace(t, testSetupPy, testChangelog)

	stdout, _, err := runRelkit(t, "release")
	require.NoError(t, err)
	assert.Contains(t, stdout, "released 1.0.1")

	assert.Contains(t, readWorkspaceFile(t, dir, "setup.py"), "version='1.0.1'")
	assert.Contains(t, readWorkspaceFile(t, dir, "CHANGELOG.md"), "## [1.0.1]")
}

func TestReleaseCmd_NothingToRelease(t *testing.T) {
	workspace(t, testSetupPy, "## [Unreleased]\n\n## [1.0.0] - 2024-01-01\n\n### Added\n- a\n")

	stdout, _, err := runRelkit(t, "release")
	require.NoError(t, err)
	assert.Contains(t, stdout, "nothing to release")
}

func TestReleaseCmd_ForcedVersion(t *testing.T) {
	dir := workspace(t, testSetupPy, testChangelog)

	_, _, err := runRelkit(t, "release", "--version", "5.0.0")
	require.NoError(t, err)
	assert.Contains(t, readWorkspaceFile(t, dir, "setup.py"), "version='5.0.0'")
	assert.Contains(t, readWorkspaceFile(t, dir, "CHANGELOG.md"), "## [5.0.0]")
}

func TestReleaseCmd_InvalidForcedVersion(t *testing.T) {
	workspace(t, testSetupPy, testChangelog)

	_, _, err := runRelkit(t, "release", "--version", "v5")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidArguments, ExitCode(err))
}

func TestReleaseCmd_VerificationFailureRollsBack(t *testing.T) {
	dir := workspace(t, testSetupPy, testChangelog)

	_, _, err := runRelkit(t, "release", "--verify-cmd", "false")
	require.Error(t, err)

	var verErr *release.VerificationError
	require.ErrorAs(t, err, &verErr)
	assert.Equal(t, ExitVerificationFailed, ExitCode(err))

	assert.Equal(t, testSetupPy, readWorkspaceFile(t, dir, "setup.py"))
	assert.Equal(t, testChangelog, readWorkspaceFile(t, dir, "CHANGELOG.md"))
}

func TestReleaseCmd_VerifyCmdFromConfig(t *testing.T) {
	dir := workspace(t, testSetupPy, testChangelog)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".relkit.yml"),
		[]byte("verify_cmd: \"false\"\n"), 0o644))

	_, _, err := runRelkit(t, "release")
	require.Error(t, err)
	assert.Equal(t, ExitVerificationFailed, ExitCode(err))

	// --skip-verify disables the configured hook.
	_, _, err = runRelkit(t, "release", "--skip-verify")
	require.NoError(t, err)
	assert.Contains(t, readWorkspaceFile(t, dir, "setup.py"), "version='1.0.1'")
}

func TestChangelogShowCmd_UnknownVersion(t *testing.T) {
	workspace(t, testSetupPy, testChangelog)

	_, stderr, err := runRelkit(t, "changelog", "show", "9.9.9")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidArguments, ExitCode(err))
	assert.Contains(t, stderr, "Available versions")
}

func TestChangelogShowCmd(t *testing.T) {
	workspace(t, testSetupPy, testChangelog)

	stdout, _, err := runRelkit(t, "changelog", "show", "1.0.0", "--plain")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Initial release")
}

func TestChangelogExportCmd_Markdown(t *testing.T) {
	workspace(t, testSetupPy, testChangelog)

	stdout, _, err := runRelkit(t, "changelog", "export")
	require.NoError(t, err)
	assert.Contains(t, stdout, "## [Unreleased]")
	assert.Contains(t, stdout, "## [1.0.0] - 2024-01-01")
}

func TestChangelogExportCmd_YAML(t *testing.T) {
	workspace(t, testSetupPy, testChangelog)

	stdout, _, err := runRelkit(t, "changelog", "export", "--format", "yaml")
	require.NoError(t, err)

	var parsed struct {
		Versions []struct {
			Version string `yaml:"version"`
			Date    string `yaml:"date"`
		} `yaml:"versions"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &parsed))
	require.Len(t, parsed.Versions, 2)
	assert.Equal(t, "Unreleased", parsed.Versions[0].Version)
	assert.Equal(t, "1.0.0", parsed.Versions[1].Version)
	assert.Equal(t, "2024-01-01", parsed.Versions[1].Date)
}

func TestChangelogExportCmd_ToFile(t *testing.T) {
	dir := workspace(t, testSetupPy, testChangelog)

	out := filepath.Join(dir, "export.yaml")
	_, _, err := runRelkit(t, "changelog", "export", "--format", "yaml", "--output", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "versions:")
}

func TestChangelogExportCmd_InvalidFormat(t *testing.T) {
	workspace(t, testSetupPy, testChangelog)

	_, _, err := runRelkit(t, "changelog", "export", "--format", "toml")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidArguments, ExitCode(err))
}

func TestFlagOverrides(t *testing.T) {
	dir := workspace(t, testSetupPy, testChangelog)

	altVersion := filepath.Join(dir, "other.py")
	require.NoError(t, os.WriteFile(altVersion, []byte("version='7.7.7'\n"), 0o644))

	stdout, _, err := runRelkit(t, "current", "--version-file", altVersion)
	require.NoError(t, err)
	assert.Equal(t, "7.7.7\n", stdout)
}
