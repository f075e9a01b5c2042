package cli

import (
	"fmt"
	"strings"

	"github.com/relkit/relkit/internal/artifact"
	"github.com/relkit/relkit/internal/changelog"
	"github.com/relkit/relkit/internal/classify"
	"github.com/relkit/relkit/internal/output"
	"github.com/relkit/relkit/internal/semver"
	"github.com/spf13/cobra"
)

var suggestQuietFlag bool

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest a version bump from the pending changes",
	Long: `Analyze the [Unreleased] section and suggest a semantic-version bump.

Removals and entries marked breaking or incompatible demand a major bump,
additions a minor bump, and fixes, security patches, or other changes a
patch bump. Nothing is modified.

Examples:
  relkit suggest           # Full analysis
  relkit suggest --quiet   # Print only the bump kind (major|minor|patch|none)`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSuggest(cmd)
	},
}

func init() {
	rootCmd.AddCommand(suggestCmd)

	suggestCmd.Flags().BoolVarP(&suggestQuietFlag, "quiet", "q", false, "Print only the bump kind")
}

func runSuggest(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	doc, err := loadDocument(cfg)
	if err != nil {
		return err
	}

	changes := doc.UnreleasedChanges()
	kind, reason := classify.Explain(changes)

	if suggestQuietFlag {
		fmt.Fprintln(cmd.OutOrStdout(), kind)
		return nil
	}

	current, err := artifact.NewVersionFile(cfg.VersionFile).Current()
	if err != nil {
		return err
	}

	next := current
	if kind != semver.BumpNone {
		next, err = current.Bump(kind)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	output.PrintField(out, "Current version", current.String())
	output.PrintField(out, "Suggested bump", strings.ToUpper(kind.String()))
	output.PrintField(out, "Next version", next.String())
	output.PrintField(out, "Reason", reason)

	printChangeBreakdown(cmd, changes)
	return nil
}

// printChangeBreakdown lists the pending entries per category.
func printChangeBreakdown(cmd *cobra.Command, changes changelog.Changes) {
	if changes.IsEmpty() {
		return
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	for _, cat := range changelog.ValidCategories() {
		entries := changes.Category(cat)
		if len(entries) == 0 {
			continue
		}
		fmt.Fprintf(out, "%s (%d):\n", strings.ToUpper(cat[:1])+cat[1:], len(entries))
		for _, e := range entries {
			fmt.Fprintf(out, "  - %s\n", e)
		}
	}
}
