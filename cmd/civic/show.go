package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/steveyegge/civic/internal/storage"
	"github.com/steveyegge/civic/internal/types"
	"github.com/steveyegge/civic/internal/ui"
)

var showCmd = &cobra.Command{
	Use:     "show <issue-id>",
	GroupID: "issues",
	Short:   "Show one issue in full",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		issue, err := store.GetIssue(getContext(), args[0])
		if errors.Is(err, storage.ErrNotFound) {
			FatalErrorWithHint(notFoundMessage(args[0]), notFoundHint(args[0]))
		}
		if err != nil {
			FatalError("%v", err)
		}

		if jsonOutput {
			outputJSON(issue)
			return
		}
		printIssue(os.Stdout, issue)
	},
}

func printIssue(w io.Writer, issue *types.Issue) {
	fmt.Fprintf(w, "%s %s\n", ui.RenderAccent(issue.ID), ui.RenderStatus(issue.Status))
	fmt.Fprintf(w, "%s\n\n", ui.RenderHeader(ui.WrapText(issue.Title, 72)))
	fmt.Fprintf(w, "  Category: %s\n", ui.RenderCategory(issue.Category, string(issue.Category)))
	location := issue.Location
	if location == "" {
		location = ui.RenderMuted("(none)")
	}
	fmt.Fprintf(w, "  Location: %s\n", location)
	fmt.Fprintf(w, "  Votes:    %d\n", issue.Votes)
	fmt.Fprintf(w, "  Reported: %s\n", issue.CreatedAt.Local().Format(time.DateTime))
}

func init() {
	rootCmd.AddCommand(showCmd)
}
