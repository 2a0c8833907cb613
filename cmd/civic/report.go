package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/steveyegge/civic/internal/storage"
	"github.com/steveyegge/civic/internal/types"
	"github.com/steveyegge/civic/internal/ui"
)

var reportCmd = &cobra.Command{
	Use:     "report <title> <category> <location>",
	GroupID: "issues",
	Short:   "Report a new civic issue",
	Long: `Report a new civic issue. The category must be one of:
  infrastructure, safety, environment, community, transit

Location is free text, conventionally "lat,lon".`,
	Example: `  civic report "Pothole on 5th Ave" infrastructure "40.7411,-73.9897"`,
	Args:    cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		issue, err := reportIssue(getContext(), store, args[0], types.Category(args[1]), args[2])
		if err != nil {
			FatalStoreError(err)
		}

		if jsonOutput {
			outputJSON(issue)
			return
		}
		fmt.Printf("%s Issue reported: %s\n", ui.RenderPassIcon(), issue.ID)
	},
}

// reportIssue stores a new issue and reads it back.
func reportIssue(ctx context.Context, s storage.Storage, title string, category types.Category, location string) (*types.Issue, error) {
	id, err := s.ReportIssue(ctx, title, category, location)
	if err != nil {
		return nil, err
	}
	issue, err := s.GetIssue(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("issue %s was reported but could not be read back: %w", id, err)
	}
	return issue, nil
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
