package cli

import (
	"fmt"
	"strings"

	"github.com/relkit/relkit/internal/changelog"
	"github.com/relkit/relkit/internal/errors"
	"github.com/relkit/relkit/internal/output"
	"github.com/spf13/cobra"
)

var (
	addTypeFlag    string
	addMessageFlag string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an entry to the [Unreleased] section",
	Long: `Add a new changelog entry under the given category in the
[Unreleased] section, creating the section if it does not exist yet.

Categories: added, changed, deprecated, removed, fixed, security.

Examples:
  relkit add --type added --message "Support BTC conversion"
  relkit add -t fixed -m "Handle missing rate gracefully"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAdd(cmd)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addTypeFlag, "type", "t", "", "Type of change (added, changed, deprecated, removed, fixed, security)")
	addCmd.Flags().StringVarP(&addMessageFlag, "message", "m", "", "Description of the change")
	addCmd.MarkFlagRequired("type")
	addCmd.MarkFlagRequired("message")
}

func runAdd(cmd *cobra.Command) error {
	if !changelog.IsValidCategory(addTypeFlag) {
		return errors.NewArgumentError(
			fmt.Sprintf("invalid entry type %q", addTypeFlag),
			"use one of: "+strings.Join(changelog.ValidCategories(), ", "))
	}
	if strings.TrimSpace(addMessageFlag) == "" {
		return errors.NewArgumentError("entry message must not be blank")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	doc, err := loadDocument(cfg)
	if err != nil {
		return err
	}

	if err := doc.AddEntry(addTypeFlag, addMessageFlag); err != nil {
		return err
	}

	if err := saveDocument(cfg, doc); err != nil {
		return err
	}

	output.PrintSuccess(cmd.OutOrStdout(),
		fmt.Sprintf("added %s entry: %s", strings.ToLower(addTypeFlag), addMessageFlag))
	return nil
}
