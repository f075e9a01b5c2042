// Package cli implements the relkit command surface. Each command lives
// in its own file and registers itself on the root command in init().
package cli

import (
	stderrors "errors"

	"github.com/relkit/relkit/internal/artifact"
	"github.com/relkit/relkit/internal/changelog"
	"github.com/relkit/relkit/internal/config"
	"github.com/relkit/relkit/internal/errors"
	"github.com/relkit/relkit/internal/release"
	"github.com/relkit/relkit/internal/semver"
	"github.com/spf13/cobra"
)

var (
	changelogFlag   string
	versionFileFlag string
	configFlag      string
	plainFlag       bool
)

var rootCmd = &cobra.Command{
	Use:   "relkit",
	Short: "Changelog-driven semantic-version release tooling",
	Long: `relkit maintains a Keep a Changelog CHANGELOG.md, derives semantic
version bumps from its pending entries, and drives the version-bump plus
changelog-promotion release step with snapshot rollback.

The version is read from and written back to a version declaration file
carrying a version='X.Y.Z' token (setup.py by default).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&changelogFlag, "changelog", "", "Path to CHANGELOG.md (overrides config)")
	rootCmd.PersistentFlags().StringVar(&versionFileFlag, "version-file", "", "Path to the version declaration file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to project config file (default: .relkit.yml)")
	rootCmd.PersistentFlags().BoolVar(&plainFlag, "plain", false, "Plain text output (no colors/icons)")
}

// Execute runs the CLI. Errors are printed to stderr in their structured
// form; the returned error carries the process exit code.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	var exitErr *ExitError
	if stderrors.As(err, &exitErr) && exitErr.Message == "" {
		// The command already reported its own diagnostics.
		return err
	}

	errors.PrintError(asCLIError(err))
	return err
}

// asCLIError maps domain errors onto the CLI error taxonomy.
func asCLIError(err error) *errors.CLIError {
	if cliErr := errors.AsCLIError(err); cliErr != nil {
		return cliErr
	}

	var formatErr *changelog.FormatError
	if stderrors.As(err, &formatErr) {
		return errors.Wrap(err, errors.Validation,
			"fix the changelog structure and re-run 'relkit validate'")
	}

	var versionErr *semver.VersionFormatError
	if stderrors.As(err, &versionErr) {
		return errors.Wrap(err, errors.Argument,
			"versions must be three dot-separated integers, e.g. 1.2.0")
	}

	var noChanges *changelog.NoChangesError
	if stderrors.As(err, &noChanges) {
		return errors.Wrap(err, errors.Validation,
			"record pending changes first: relkit add --type <category> --message <text>")
	}

	var validationErr *release.ValidationError
	if stderrors.As(err, &validationErr) {
		return errors.Wrap(err, errors.Validation,
			"run 'relkit validate' for the full list of violations")
	}

	var verificationErr *release.VerificationError
	if stderrors.As(err, &verificationErr) {
		return errors.Wrap(err, errors.Verification,
			"both artifacts were restored to their pre-release state",
			"fix the verification failure and re-run 'relkit release'")
	}

	var persistErr *artifact.PersistenceError
	if stderrors.As(err, &persistErr) {
		return errors.Wrap(err, errors.Runtime)
	}

	return errors.Wrap(err, errors.Runtime)
}

// loadConfig loads the layered configuration and applies flag overrides.
func loadConfig() (*config.Configuration, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, errors.WrapWithMessage(err, errors.Configuration, "loading configuration")
	}
	if changelogFlag != "" {
		cfg.ChangelogPath = changelogFlag
	}
	if versionFileFlag != "" {
		cfg.VersionFile = versionFileFlag
	}
	if plainFlag {
		cfg.Plain = true
	}
	return cfg, nil
}

// loadDocument parses the changelog artifact named by the configuration.
func loadDocument(cfg *config.Configuration) (*changelog.Document, error) {
	return changelog.Load(cfg.ChangelogPath)
}

// saveDocument persists the rendered changelog artifact.
func saveDocument(cfg *config.Configuration, doc *changelog.Document) error {
	return artifact.NewFile(cfg.ChangelogPath).Write([]byte(doc.Render()))
}

// formatOpts builds the terminal format options for the configuration.
func formatOpts(cfg *config.Configuration) changelog.FormatOptions {
	return changelog.FormatOptions{Plain: cfg.Plain}
}
