package cli

import (
	stderrors "errors"
	"fmt"

	"github.com/relkit/relkit/internal/changelog"
	"github.com/spf13/cobra"
)

var changelogLastFlag int

var changelogCmd = &cobra.Command{
	Use:   "changelog",
	Short: "View and export the changelog",
	Long:  `Commands for viewing, exporting, and watching the changelog.`,
}

var changelogShowCmd = &cobra.Command{
	Use:   "show [version]",
	Short: "View changelog entries",
	Long: `View changelog entries with color-coded categories.

By default, shows the 5 most recent entries. Use a version argument to
see all entries for a specific version, or use --last to control entry
count.

Examples:
  relkit changelog show              # Show 5 most recent entries
  relkit changelog show 1.2.0        # Show all entries for version 1.2.0
  relkit changelog show v1.2.0       # Same (v prefix optional)
  relkit changelog show unreleased   # Show pending changes
  relkit changelog show --last 10    # Show 10 most recent entries`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChangelogShow(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(changelogCmd)
	changelogCmd.AddCommand(changelogShowCmd)

	changelogShowCmd.Flags().IntVar(&changelogLastFlag, "last", 5, "Number of entries to show")
}

func runChangelogShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	doc, err := loadDocument(cfg)
	if err != nil {
		return err
	}

	opts := formatOpts(cfg)

	if len(args) == 1 {
		return showSection(cmd, doc, args[0], opts)
	}
	return showLastEntries(cmd, doc, changelogLastFlag, opts)
}

func showSection(cmd *cobra.Command, doc *changelog.Document, version string, opts changelog.FormatOptions) error {
	s, err := doc.GetSection(version)
	if err != nil {
		var notFound *changelog.SectionNotFoundError
		if stderrors.As(err, &notFound) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Version %q not found.\n\nAvailable versions:\n", version)
			for _, ver := range doc.ListVersions() {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", ver)
			}
			return NewExitError(ExitInvalidArguments, "")
		}
		return err
	}

	return changelog.FormatSection(s, cmd.OutOrStdout(), opts)
}

func showLastEntries(cmd *cobra.Command, doc *changelog.Document, n int, opts changelog.FormatOptions) error {
	entries := doc.LastN(n)
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No changelog entries found.")
		return nil
	}

	if err := changelog.FormatEntries(entries, cmd.OutOrStdout(), opts); err != nil {
		return fmt.Errorf("formatting entries: %w", err)
	}

	total := doc.EntryCount()
	if total > len(entries) {
		fmt.Fprintf(cmd.OutOrStdout(), "\n(%d of %d entries shown. Use --last %d to see all)\n",
			len(entries), total, total)
	}
	return nil
}
