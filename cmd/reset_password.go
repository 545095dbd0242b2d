package cmd

import (
	"github.com/keyfold/keyfold/internal/ui"
	"github.com/keyfold/keyfold/internal/workflows"
	"github.com/spf13/cobra"
)

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Change the master password for this profile",
	Long: `Rotates the master password. The underlying keys never change, so stored
secrets need no re-encryption; only the password-protected wrappings are
rewritten, remote first. If the remote update fails the reset aborts and
the old password keeps working everywhere.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting reset-password command")
		profile, err := resolveProfile()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to resolve profile: %v", err)
		}

		spinner, cleanup := startSpinner("Rotating master password...", verbose)
		defer cleanup()

		result, err := workflows.ResetPassword(cmd.Context(), workflows.ResetPasswordOptions{
			Profile: profile,
			Prompt:  spinnerPrompter{s: spinner},
		})
		if err != nil {
			if finishKnown(spinner, err) {
				return ErrReported
			}
			return Logger.ErrorfAndReturn("Password reset failed: %v", err)
		}

		finalMessage := ui.Success.Sprint("✓") + " Master password updated for profile " + ui.Highlight.Sprint(result.Profile)
		if !result.RemoteRotated {
			finalMessage += "\n" + ui.Muted.Sprint("no vault repository configured; only the local key was rotated")
		}
		spinner.FinalMSG = finalMessage
		return nil
	},
}
