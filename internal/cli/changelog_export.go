package cli

import (
	"fmt"
	"os"

	"github.com/relkit/relkit/internal/changelog"
	"github.com/relkit/relkit/internal/errors"
	"github.com/relkit/relkit/internal/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	exportFormatFlag string
	exportOutFlag    string
)

var changelogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the changelog in a machine-readable form",
	Long: `Export the parsed changelog either as canonical markdown or as YAML
for consumption by other release tooling.

Examples:
  relkit changelog export                      # Canonical markdown to stdout
  relkit changelog export --format yaml        # YAML to stdout
  relkit changelog export --format yaml -o out.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChangelogExport(cmd)
	},
}

func init() {
	changelogCmd.AddCommand(changelogExportCmd)

	changelogExportCmd.Flags().StringVar(&exportFormatFlag, "format", "markdown", "Output format (markdown, yaml)")
	changelogExportCmd.Flags().StringVarP(&exportOutFlag, "output", "o", "", "Write to file instead of stdout")
}

// yamlExport is the YAML document shape: the section list only, since
// preamble and footer are markdown presentation concerns.
type yamlExport struct {
	Versions []changelog.Section `yaml:"versions"`
}

func runChangelogExport(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	doc, err := loadDocument(cfg)
	if err != nil {
		return err
	}

	var content []byte
	switch exportFormatFlag {
	case "markdown", "md":
		content = []byte(doc.Render())
	case "yaml", "yml":
		content, err = yaml.Marshal(yamlExport{Versions: doc.Sections})
		if err != nil {
			return fmt.Errorf("marshalling changelog YAML: %w", err)
		}
	default:
		return errors.NewArgumentError(
			fmt.Sprintf("invalid export format %q", exportFormatFlag),
			"use one of: markdown, yaml")
	}

	if exportOutFlag == "" {
		fmt.Fprint(cmd.OutOrStdout(), string(content))
		return nil
	}

	if err := os.WriteFile(exportOutFlag, content, 0o644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("exported %s → %s", cfg.ChangelogPath, exportOutFlag))
	return nil
}
