package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/steveyegge/civic/internal/idgen"
	"github.com/steveyegge/civic/internal/ui"
)

var voteCmd = &cobra.Command{
	Use:     "vote <issue-id>",
	GroupID: "issues",
	Short:   "Add one vote to an issue",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]
		votes, err := store.VoteIssue(getContext(), id)
		if err != nil {
			FatalError("failed to vote on %s: %v", id, err)
		}
		// VoteIssue reports an unknown ID as zero votes, not an error.
		if votes == 0 {
			FatalErrorWithHint(notFoundMessage(id), notFoundHint(id))
		}

		if jsonOutput {
			outputJSON(map[string]interface{}{
				"id":    id,
				"votes": votes,
			})
			return
		}
		fmt.Printf("%s Vote recorded for %s (%s total)\n", ui.RenderPassIcon(), id, ui.RenderPass(strconv.Itoa(votes)))
	},
}

// notFoundMessage clips pasted garbage so the error stays on one line.
func notFoundMessage(id string) string {
	return fmt.Sprintf("issue %s not found", ui.TruncateSimple(id, maxShownIDLen))
}

// maxShownIDLen leaves room for the issue- prefix and a full UUID.
const maxShownIDLen = 48

// notFoundHint points at the ID format when id could not have been generated
// by civic, and at 'civic list' otherwise.
func notFoundHint(id string) string {
	if _, _, ok := idgen.ParseIssueID(id); !ok {
		return "issue IDs look like issue-<uuid>; run 'civic list' to see them"
	}
	return "Run 'civic list' to see issue IDs"
}

func init() {
	rootCmd.AddCommand(voteCmd)
}
