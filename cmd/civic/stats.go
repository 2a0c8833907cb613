package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/steveyegge/civic/internal/types"
	"github.com/steveyegge/civic/internal/ui"
)

var statsCmd = &cobra.Command{
	Use:     "stats",
	GroupID: "views",
	Short:   "Show issue totals, average votes and counts per category",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		stats, err := store.GetStatistics(getContext())
		if err != nil {
			FatalError("failed to get statistics: %v", err)
		}

		if jsonOutput {
			outputJSON(stats)
			return
		}
		printStats(os.Stdout, stats)
	},
}

func printStats(w io.Writer, stats *types.Statistics) {
	fmt.Fprintf(w, "\n%s\n", ui.RenderHeader("Stats:"))
	fmt.Fprintf(w, "  Total Issues: %d\n", stats.TotalIssues)
	fmt.Fprintf(w, "  Avg Votes: %s\n", formatAverage(stats.AverageVotes))
	fmt.Fprintf(w, "  By Category:\n")
	for _, c := range types.Categories() {
		name := ui.PadColumn(string(c), 15)
		fmt.Fprintf(w, "    %s: %d\n", ui.RenderCategory(c, name), stats.ByCategory[string(c)])
	}
}

// formatAverage prints the shortest exact form of avg, keeping one decimal
// for whole numbers: 0.0, 1.0, 0.67, 12.5.
func formatAverage(avg float64) string {
	s := strconv.FormatFloat(avg, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
