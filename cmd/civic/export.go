package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/steveyegge/civic/internal/config"
	"github.com/steveyegge/civic/internal/debug"
	"github.com/steveyegge/civic/internal/export"
	"github.com/steveyegge/civic/internal/ui"
)

var exportCmd = &cobra.Command{
	Use:     "export",
	GroupID: "views",
	Short:   "Export statistics and all issues as JSON, YAML or TOML",
	Long: `Export a snapshot of the store: the current statistics plus every issue,
most recent first.

Writes to stdout unless -o is given. With -o the format follows the file
extension (.json, .yaml, .yml, .toml) unless --format is set explicitly.`,
	Example: `  civic export
  civic export --format yaml
  civic export -o snapshot.toml`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")
		formatName, _ := cmd.Flags().GetString("format")

		format, err := resolveExportFormat(formatName, cmd.Flags().Changed("format"), output)
		if err != nil {
			FatalError("%v", err)
		}

		snap, err := export.Build(getContext(), store)
		if err != nil {
			FatalError("export failed: %v", err)
		}

		if output == "" {
			if err := export.Encode(os.Stdout, snap, format); err != nil {
				FatalError("export failed: %v", err)
			}
			return
		}

		if err := export.WriteFile(output, snap, format); err != nil {
			FatalError("%v", err)
		}
		debug.PrintNormal("%s Exported %d issues to %s (%s)\n", ui.RenderPassIcon(), len(snap.Issues), output, format)
	},
}

// resolveExportFormat picks the format: an explicit --format wins, then the
// output file's extension, then the export.format config value.
func resolveExportFormat(flagValue string, flagSet bool, output string) (export.Format, error) {
	if flagSet {
		return export.ParseFormat(flagValue)
	}
	if output != "" {
		if f := export.DetectFormatFromExtension(output); f != export.FormatUnknown {
			return f, nil
		}
	}
	return export.ParseFormat(config.GetString(config.KeyExportFormat))
}

func init() {
	exportCmd.Flags().StringP("format", "f", "json", fmt.Sprintf("Output format: %v (default from export.format config)", export.Formats()))
	exportCmd.Flags().StringP("output", "o", "", "Write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}
