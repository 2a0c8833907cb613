package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/steveyegge/civic/internal/config"
	"github.com/steveyegge/civic/internal/types"
	"github.com/steveyegge/civic/internal/ui"
)

const (
	categoryColumnWidth = 12
	titleColumnWidth    = 40
)

var listCmd = &cobra.Command{
	Use:     "list",
	GroupID: "views",
	Short:   "List issues, most voted first",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		filter := types.IssueFilter{Sort: types.SortOrder(config.GetString(config.KeyListSort))}
		if cmd.Flags().Changed("sort") {
			sortBy, _ := cmd.Flags().GetString("sort")
			filter.Sort = types.SortOrder(sortBy)
		}
		if category, _ := cmd.Flags().GetString("category"); category != "" {
			c := types.Category(category)
			filter.Category = &c
		}

		issues, err := store.GetIssues(getContext(), filter)
		if err != nil {
			FatalStoreError(err)
		}

		if jsonOutput {
			outputJSON(issues)
			return
		}
		printIssueList(os.Stdout, issues)
	},
}

// printIssueList writes one aligned line per issue:
//
//	[category    ] title clipped to 40 cells               | Votes:   3
func printIssueList(w io.Writer, issues []*types.Issue) {
	fmt.Fprintf(w, "\nFound %d issues:\n\n", len(issues))
	for _, issue := range issues {
		category := ui.PadColumn(string(issue.Category), categoryColumnWidth)
		votes := fmt.Sprintf("%3d", issue.Votes)
		fmt.Fprintf(w, "  [%s] %s | Votes: %s\n",
			ui.RenderCategory(issue.Category, category),
			ui.FitColumn(issue.Title, titleColumnWidth),
			ui.RenderVotes(votes, issue.Votes),
		)
	}
}

func init() {
	listCmd.Flags().StringP("category", "c", "", "Only show issues in this category")
	listCmd.Flags().StringP("sort", "s", string(types.DefaultSortOrder), "Sort order: votes or recent (default from list.sort config)")
	rootCmd.AddCommand(listCmd)
}
