package cli

import (
	"fmt"

	"github.com/relkit/relkit/internal/artifact"
	"github.com/relkit/relkit/internal/classify"
	"github.com/relkit/relkit/internal/config"
	"github.com/relkit/relkit/internal/errors"
	"github.com/relkit/relkit/internal/output"
	"github.com/relkit/relkit/internal/semver"
	"github.com/spf13/cobra"
)

var (
	bumpTypeFlag string
	bumpAutoFlag bool
)

var bumpCmd = &cobra.Command{
	Use:   "bump",
	Short: "Bump the version declaration in place",
	Long: `Rewrite the version file's version='X.Y.Z' token with the next version.

This mutates the version artifact only: the changelog is not promoted and
no verification runs. Use 'relkit release' for the full release step.

Examples:
  relkit bump --type patch   # Explicit bump kind
  relkit bump --auto         # Derive the kind from the [Unreleased] section`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBump(cmd)
	},
}

func init() {
	rootCmd.AddCommand(bumpCmd)

	bumpCmd.Flags().StringVarP(&bumpTypeFlag, "type", "t", "", "Type of version bump (major, minor, patch)")
	bumpCmd.Flags().BoolVar(&bumpAutoFlag, "auto", false, "Determine the bump type from the changelog")
	bumpCmd.MarkFlagsMutuallyExclusive("type", "auto")
	bumpCmd.MarkFlagsOneRequired("type", "auto")
}

func runBump(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	kind, err := resolveBumpKind(cmd, cfg)
	if err != nil || kind == semver.BumpNone {
		return err
	}

	versions := artifact.NewVersionFile(cfg.VersionFile)
	current, err := versions.Current()
	if err != nil {
		return err
	}

	next, err := current.Bump(kind)
	if err != nil {
		return err
	}

	if err := versions.Set(next); err != nil {
		return err
	}

	output.PrintSuccess(cmd.OutOrStdout(),
		fmt.Sprintf("bumped %s from %s to %s (%s)", cfg.VersionFile, current, next, kind))
	return nil
}

// resolveBumpKind returns the explicit or auto-detected bump kind.
// BumpNone with a nil error means auto detection found nothing to bump.
func resolveBumpKind(cmd *cobra.Command, cfg *config.Configuration) (semver.BumpKind, error) {
	if bumpTypeFlag != "" {
		kind, err := semver.ParseBumpKind(bumpTypeFlag)
		if err != nil || kind == semver.BumpNone {
			return semver.BumpNone, errors.NewArgumentError(
				fmt.Sprintf("invalid bump type %q", bumpTypeFlag),
				"use one of: major, minor, patch")
		}
		return kind, nil
	}

	doc, err := loadDocument(cfg)
	if err != nil {
		return semver.BumpNone, err
	}

	kind, reason := classify.Explain(doc.UnreleasedChanges())
	if kind == semver.BumpNone {
		fmt.Fprintln(cmd.OutOrStdout(), "no version bump needed: "+reason)
		return semver.BumpNone, nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "auto-detected bump type: %s (%s)\n", kind, reason)
	return kind, nil
}
