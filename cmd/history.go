package cmd

import (
	"fmt"

	"github.com/keyfold/keyfold/internal/remote"
	"github.com/keyfold/keyfold/internal/ui"
	"github.com/keyfold/keyfold/internal/workflows"
	"github.com/spf13/cobra"
)

var historyCategory string

func init() {
	historyCmd.Flags().StringVarP(&historyCategory, "category", "c", "", "category path the secret is filed under")
}

var historyCmd = &cobra.Command{
	Use:   "history <key>",
	Short: "List a secret's revisions, newest first",
	Long: `Lists the revisions of a secret ten at a time, newest first, asking
whether to continue between pages. Each line shows the revision ID usable
with 'keyfold get --version'. Deleted secrets keep their history.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting history command")
		profile, err := resolveProfile()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to resolve profile: %v", err)
		}

		spinner, cleanup := startSpinner("Fetching history...", verbose)
		defer cleanup()

		result, err := workflows.History(cmd.Context(), workflows.HistoryOptions{
			Profile:  profile,
			Category: historyCategory,
			Key:      args[0],
			Prompt:   spinnerPrompter{s: spinner},
			RenderPage: func(revisions []remote.Revision) {
				if spinner.Active() {
					spinner.Stop()
				}
				for _, rev := range revisions {
					fmt.Printf("%s  %s  %s\n",
						ui.Highlight.Sprint(rev.ID),
						ui.Muted.Sprint(rev.Timestamp.Format("2006-01-02 15:04")),
						rev.Message)
				}
			},
		})
		if err != nil {
			if finishKnown(spinner, err) {
				return ErrReported
			}
			return Logger.ErrorfAndReturn("History failed: %v", err)
		}

		if result.Revisions == 0 {
			spinner.FinalMSG = ui.Warning.Sprint("No revisions found for ") + ui.Path.Sprint(result.Path)
		}
		return nil
	},
}
