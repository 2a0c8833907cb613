package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/steveyegge/civic/internal/config"
	"github.com/steveyegge/civic/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the effective configuration after applying defaults, the config file
(./civic.yaml or ~/.civic/config.yaml), CIVIC_* environment variables and flags.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		settings := config.AllSettings()
		// Flags already resolved into these globals in PersistentPreRun
		settings[config.KeyDB] = dbPath
		settings[config.KeyJSON] = jsonOutput

		if jsonOutput {
			outputJSON(map[string]interface{}{
				"config_file": config.ConfigFileUsed(),
				"settings":    settings,
			})
			return
		}

		file := config.ConfigFileUsed()
		if file == "" {
			file = ui.RenderMuted("(none)")
		}
		fmt.Printf("Config file: %s\n\n", file)

		keys := make([]string, 0, len(settings))
		for k := range settings {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("  %-18s %v\n", k, settings[k])
		}
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
