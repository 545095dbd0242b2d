package cmd

import (
	"fmt"

	"github.com/keyfold/keyfold/internal/ui"
	"github.com/keyfold/keyfold/internal/workflows"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage isolated vault profiles",
	Long: `Profiles keep independent credentials, master passwords and vault
repositories side by side, e.g. 'work' and 'personal'. Every command runs
under the active profile unless --profile overrides it.`,
}

func init() {
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileCreateCmd)
	profileCmd.AddCommand(profileSwitchCmd)
	profileCmd.AddCommand(profileCurrentCmd)
	profileCmd.AddCommand(profileDeleteCmd)
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		infos, err := workflows.ListProfiles(profileFlag)
		if err != nil {
			if finishKnown(nil, err) {
				return ErrReported
			}
			return Logger.ErrorfAndReturn("Failed to list profiles: %v", err)
		}
		for _, info := range infos {
			marker := " "
			if info.Active {
				marker = ui.Success.Sprint("*")
			}
			fmt.Printf("%s %s\n", marker, info.Name)
		}
		return nil
	},
}

var profileCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new, empty profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := workflows.CreateProfile(args[0]); err != nil {
			if finishKnown(nil, err) {
				return ErrReported
			}
			return Logger.ErrorfAndReturn("Failed to create profile: %v", err)
		}
		fmt.Println(ui.Success.Sprint("✓") + " Created profile " + ui.Highlight.Sprint(args[0]))
		fmt.Println(ui.Info.Sprint("→") + " Run " + ui.Code.Sprintf("keyfold login --profile %s", args[0]) + " to set it up")
		return nil
	},
}

var profileSwitchCmd = &cobra.Command{
	Use:   "switch [name]",
	Short: "Make a profile the active one",
	Long: `Makes the named profile the active one for future invocations. With no
name, clears the selection so commands fall back to the default profile.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		if err := workflows.SwitchProfile(name); err != nil {
			if finishKnown(nil, err) {
				return ErrReported
			}
			return Logger.ErrorfAndReturn("Failed to switch profile: %v", err)
		}
		if name == "" {
			fmt.Println(ui.Success.Sprint("✓") + " Cleared the active profile selection")
			return nil
		}
		fmt.Println(ui.Success.Sprint("✓") + " Switched to profile " + ui.Highlight.Sprint(name))
		return nil
	},
}

var profileCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the active profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := workflows.CurrentProfile(profileFlag)
		if err != nil {
			if finishKnown(nil, err) {
				return ErrReported
			}
			return Logger.ErrorfAndReturn("Failed to resolve profile: %v", err)
		}
		fmt.Println(name)
		return nil
	},
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a profile and its local state",
	Long: `Deletes a profile's local state: its wrapped keys, stored token and
repository binding. The vault repository itself and the secrets in it are
not touched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := workflows.DeleteProfile(args[0], spinnerPrompter{}); err != nil {
			if finishKnown(nil, err) {
				return ErrReported
			}
			return Logger.ErrorfAndReturn("Failed to delete profile: %v", err)
		}
		fmt.Println(ui.Success.Sprint("✓") + " Deleted profile " + ui.Highlight.Sprint(args[0]))
		return nil
	},
}
