package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Print the newest released version in the changelog",
	Long: `Print the version label of the newest dated section in the changelog.
Prints 0.0.0 when no release has been recorded yet.

Example:
  relkit latest`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		doc, err := loadDocument(cfg)
		if err != nil {
			return err
		}

		if s := doc.LatestRelease(); s != nil {
			fmt.Fprintln(cmd.OutOrStdout(), s.Version)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), "0.0.0")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(latestCmd)
}
