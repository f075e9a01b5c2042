package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

const testSetupPy = "setup(\n    name='converter',\n    version='1.0.0',\n)\n"

const testChangelog = `# Changelog

## [Unreleased]

### Fixed
- Incorrect exchange rate rounding

## [1.0.0] - 2024-01-01

### Added
- Initial release
`

// workspace creates an isolated project directory with the two artifacts
// and chdirs into it, so commands resolve their default paths.
func workspace(t *testing.T, setupPy, changelogMD string) string {
	t.Helper()
	dir := t.TempDir()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
	t.Setenv("HOME", filepath.Join(dir, "home"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "setup.py"), []byte(setupPy), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "CHANGELOG.md"), []byte(changelogMD), 0o644))
	return dir
}

// runRelkit executes the CLI with the given arguments, capturing output.
func runRelkit(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Cleanup(resetCommandState)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)

	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

// resetCommandState restores the package-level flag values and cobra flag
// bookkeeping so commands can run repeatedly within one test binary.
func resetCommandState() {
	changelogFlag, versionFileFlag, configFlag = "", "", ""
	plainFlag = false
	addTypeFlag, addMessageFlag = "", ""
	suggestQuietFlag = false
	bumpTypeFlag, bumpAutoFlag = "", false
	releaseTypeFlag, releaseVersionFlag, releaseVerifyCmdFlag = "", "", ""
	releaseSkipVerifyFlag, releaseAllowDirtyFlag = false, false
	changelogLastFlag = 5
	exportFormatFlag, exportOutFlag = "markdown", ""

	resetFlagChanged(rootCmd)
}

func resetFlagChanged(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	for _, sub := range cmd.Commands() {
		resetFlagChanged(sub)
	}
}

func readWorkspaceFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(data)
}
