package cmd

import (
	"fmt"

	"github.com/keyfold/keyfold/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	getCategory string
	getVersion  string
)

func init() {
	getCmd.Flags().StringVarP(&getCategory, "category", "c", "", "category path the secret is filed under")
	getCmd.Flags().StringVar(&getVersion, "version", "", "revision ID to read, as shown by 'keyfold history'")
}

// resetGetCommandState resets the get command's global state for testing.
func resetGetCommandState() {
	getCategory = ""
	getVersion = ""
}

var getCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Retrieve and decrypt a secret",
	Long: `Fetches a secret from the vault, decrypts it locally and prints the
plaintext to stdout. Nothing else goes to stdout, so the output is safe to
pipe. Pass --version to read the secret as of an earlier revision.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting get command")
		profile, err := resolveProfile()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to resolve profile: %v", err)
		}

		spinner, cleanup := startSpinner("Retrieving secret...", verbose)
		defer cleanup()

		result, err := workflows.Get(cmd.Context(), workflows.GetOptions{
			Profile:  profile,
			Category: getCategory,
			Key:      args[0],
			Version:  getVersion,
			Prompt:   spinnerPrompter{s: spinner},
		})
		if err != nil {
			if finishKnown(spinner, err) {
				return ErrReported
			}
			return Logger.ErrorfAndReturn("Get failed: %v", err)
		}

		// Stop the spinner before printing so the plaintext is the only
		// thing on stdout.
		cleanup()
		fmt.Println(result.Value)
		return nil
	},
}
