package cli

import (
	"fmt"

	"github.com/relkit/relkit/internal/output"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the changelog structure",
	Long: `Validate that the changelog parses and satisfies all invariants:
a single [Unreleased] section placed first, strictly descending unique
version labels, a parseable release date on every dated section, and no
blank entries.

Exits 0 when valid, 1 with a list of violations otherwise. No files are
modified.

Example:
  relkit validate`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	doc, err := loadDocument(cfg)
	if err != nil {
		return err
	}

	violations := doc.Validate()
	if len(violations) == 0 {
		output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("%s is valid", cfg.ChangelogPath))
		return nil
	}

	output.PrintFailure(cmd.ErrOrStderr(), fmt.Sprintf("%s has %d violation(s):", cfg.ChangelogPath, len(violations)))
	for _, v := range violations {
		fmt.Fprintf(cmd.ErrOrStderr(), "  - %s\n", v)
	}
	return NewExitError(ExitFailure, "")
}
