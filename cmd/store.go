package cmd

import (
	"github.com/keyfold/keyfold/internal/ui"
	"github.com/keyfold/keyfold/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	storeKey      string
	storeValue    string
	storeCategory string
)

func init() {
	storeCmd.Flags().StringVarP(&storeKey, "key", "k", "", "name of the secret")
	storeCmd.Flags().StringVar(&storeValue, "value", "", "secret value; omit to generate a random one")
	storeCmd.Flags().StringVarP(&storeCategory, "category", "c", "", "category path to file the secret under, e.g. api/prod")
}

// resetStoreCommandState resets the store command's global state for testing.
func resetStoreCommandState() {
	storeKey = ""
	storeValue = ""
	storeCategory = ""
}

var storeCmd = &cobra.Command{
	Use:   "store --key <key> [--value <value>]",
	Short: "Encrypt and store a secret in the vault",
	Long: `Encrypts a secret locally and writes it to the vault repository. The key
and value may also be given as bare arguments. With no value a random
secret is generated and offered for confirmation.

Storing over an existing key asks before overwriting; the previous value
stays reachable through 'keyfold history'.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting store command")
		profile, err := resolveProfile()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to resolve profile: %v", err)
		}

		key := storeKey
		value := storeValue
		rest := args
		if key == "" {
			if len(rest) == 0 {
				return Logger.ErrorfAndReturn("A key is required, either with --key or as the first argument")
			}
			key = rest[0]
			rest = rest[1:]
		}
		if len(rest) > 0 {
			if value != "" {
				return Logger.ErrorfAndReturn("Give the value either with --value or as an argument, not both")
			}
			value = rest[0]
			rest = rest[1:]
		}
		if len(rest) > 0 {
			return Logger.ErrorfAndReturn("Too many arguments")
		}

		spinner, cleanup := startSpinner("Storing secret...", verbose)
		defer cleanup()

		result, err := workflows.Store(cmd.Context(), workflows.StoreOptions{
			Profile:  profile,
			Category: storeCategory,
			Key:      key,
			Value:    value,
			Prompt:   spinnerPrompter{s: spinner},
		})
		if err != nil {
			if finishKnown(spinner, err) {
				return ErrReported
			}
			return Logger.ErrorfAndReturn("Store failed: %v", err)
		}

		verb := "Stored"
		if result.Overwritten {
			verb = "Updated"
		}
		finalMessage := ui.Success.Sprint("✓") + " " + verb + " secret at " + ui.Path.Sprint(result.Path)
		if result.Generated {
			finalMessage += "\n" + ui.Info.Sprint("→") + " Generated value: " + ui.Highlight.Sprint(result.Value)
		}
		spinner.FinalMSG = finalMessage
		return nil
	},
}
