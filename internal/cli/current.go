package cli

import (
	"fmt"

	"github.com/relkit/relkit/internal/artifact"
	"github.com/spf13/cobra"
)

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Print the current version",
	Long: `Print the version declared by the version file's version='X.Y.Z' token.

Example:
  relkit current`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		current, err := artifact.NewVersionFile(cfg.VersionFile).Current()
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), current)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(currentCmd)
}
