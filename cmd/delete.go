package cmd

import (
	"github.com/keyfold/keyfold/internal/ui"
	"github.com/keyfold/keyfold/internal/workflows"
	"github.com/spf13/cobra"
)

var deleteCategory string

func init() {
	deleteCmd.Flags().StringVarP(&deleteCategory, "category", "c", "", "category path the secret is filed under")
}

var deleteCmd = &cobra.Command{
	Use:   "delete <key>",
	Short: "Delete a secret from the vault",
	Long: `Removes the current version of a secret after confirmation. Earlier
revisions stay reachable through 'keyfold history' and
'keyfold get --version'.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting delete command")
		profile, err := resolveProfile()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to resolve profile: %v", err)
		}

		spinner, cleanup := startSpinner("Deleting secret...", verbose)
		defer cleanup()

		result, err := workflows.Delete(cmd.Context(), workflows.DeleteOptions{
			Profile:  profile,
			Category: deleteCategory,
			Key:      args[0],
			Prompt:   spinnerPrompter{s: spinner},
		})
		if err != nil {
			if finishKnown(spinner, err) {
				return ErrReported
			}
			return Logger.ErrorfAndReturn("Delete failed: %v", err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Deleted secret at " + ui.Path.Sprint(result.Path)
		return nil
	},
}
