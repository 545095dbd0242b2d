package cmd

import (
	"fmt"

	"github.com/keyfold/keyfold/internal/auth"
	"github.com/keyfold/keyfold/internal/ui"
	"github.com/keyfold/keyfold/internal/workflows"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with GitHub and set your master password",
	Long: `Runs the GitHub device authorization flow and stores the resulting access
token encrypted under your master password. The first login on a profile
sets the master password; later logins unlock it.

If the vault repository belongs to an organization, you may need to install
the Keyfold GitHub App on it before the token can reach it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting login command")
		profile, err := resolveProfile()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to resolve profile: %v", err)
		}
		Logger.Debugf("Active profile: %s", profile)

		spinner, cleanup := startSpinner("Waiting for GitHub authorization...", verbose)
		defer cleanup()

		result, err := workflows.Login(cmd.Context(), workflows.LoginOptions{
			Profile: profile,
			Prompt:  spinnerPrompter{s: spinner},
			OnDeviceCode: func(code *auth.DeviceCode) {
				if spinner.Active() {
					spinner.Stop()
				}
				fmt.Println("Open " + ui.Info.Sprint(code.VerificationURI) + " and enter the code " + ui.Highlight.Sprint(code.UserCode))
				spinner.Restart()
			},
		})
		if err != nil {
			if finishKnown(spinner, err) {
				return ErrReported
			}
			return Logger.ErrorfAndReturn("Login failed: %v", err)
		}

		finalMessage := ui.Success.Sprint("✓") + " Logged in as " + ui.Highlight.Sprint(result.Username) + " on profile " + ui.Highlight.Sprint(result.Profile)
		if result.CreatedPassword {
			finalMessage += "\n" + ui.Info.Sprint("→") + " Next, run " + ui.Code.Sprint("keyfold init") + " to choose a vault repository"
		}
		finalMessage += "\n" + ui.Muted.Sprint("organization-owned vaults need the Keyfold GitHub App installed on the repository")
		spinner.FinalMSG = finalMessage
		return nil
	},
}
