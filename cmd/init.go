package cmd

import (
	"github.com/keyfold/keyfold/internal/ui"
	"github.com/keyfold/keyfold/internal/workflows"
	"github.com/spf13/cobra"
)

var initRepo string

func init() {
	initCmd.Flags().StringVar(&initRepo, "repo", "", `vault repository, as "name" or "owner/name"`)
}

// resetInitCommandState resets the init command's global state for testing.
func resetInitCommandState() {
	initRepo = ""
}

var initCmd = &cobra.Command{
	Use:   "init [--repo <repository>]",
	Short: "Bind this profile to a vault repository",
	Long: `Chooses the private repository that backs this profile's vault, creating
it if it does not exist. The repository may be given with --repo (or as a
bare argument) as "name" (under your own account) or "owner/name"; when
omitted the default repository "` + workflows.DefaultRepoName + `" is used.

Initializing against a repository that already holds a vault joins it:
your master password must match the one the vault was created with.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting init command")
		profile, err := resolveProfile()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to resolve profile: %v", err)
		}

		repo := initRepo
		if len(args) == 1 {
			if repo != "" {
				return Logger.ErrorfAndReturn("Give the repository either with --repo or as an argument, not both")
			}
			repo = args[0]
		}

		spinner, cleanup := startSpinner("Preparing vault repository...", verbose)
		defer cleanup()

		result, err := workflows.Init(cmd.Context(), workflows.InitOptions{
			Profile: profile,
			Repo:    repo,
			Prompt:  spinnerPrompter{s: spinner},
		})
		if err != nil {
			if finishKnown(spinner, err) {
				return ErrReported
			}
			return Logger.ErrorfAndReturn("Init failed: %v", err)
		}

		identity := result.Owner + "/" + result.Repo
		finalMessage := ui.Success.Sprint("✓") + " Vault bound to " + ui.Highlight.Sprint(identity)
		if result.RepoCreated {
			finalMessage += "\n" + ui.Info.Sprint("→") + " Created private repository " + ui.Highlight.Sprint(identity)
		}
		if result.VaultCreated {
			finalMessage += "\n" + ui.Info.Sprint("→") + " Initialized a new vault master key"
		} else {
			finalMessage += "\n" + ui.Info.Sprint("→") + " Joined the existing vault"
		}
		spinner.FinalMSG = finalMessage
		return nil
	},
}
