package cmd

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
	logger "github.com/keyfold/keyfold/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose     bool
	debug       bool
	profileFlag string
	Logger      logger.Logger

	RootCmd = &cobra.Command{
		Use:           "keyfold",
		Short:         "Keyfold - a personal secrets vault backed by a private GitHub repository",
		SilenceErrors: true,
		SilenceUsage:  true,
		Long: `Keyfold stores encrypted secrets in a private GitHub repository you own.

Secrets are encrypted locally before they ever leave your machine; the
repository only sees ciphertext. The repository's commit history doubles as
the version history of every secret.

Run 'keyfold login' to authenticate, 'keyfold init' to pick a vault
repository, then 'keyfold store' and 'keyfold get' to use the vault.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing keyfold with verbose=%t, debug=%t", verbose, debug)
		},
		Run: func(cmd *cobra.Command, args []string) {
			figure.NewFigure("keyfold", "", true).Print()
			fmt.Println()
			fmt.Println("Run 'keyfold --help' to see available commands.")
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	RootCmd.PersistentFlags().StringVar(&profileFlag, "profile", "", "profile to run under (overrides the active profile)")

	RootCmd.AddCommand(loginCmd)
	RootCmd.AddCommand(initCmd)
	RootCmd.AddCommand(storeCmd)
	RootCmd.AddCommand(getCmd)
	RootCmd.AddCommand(historyCmd)
	RootCmd.AddCommand(deleteCmd)
	RootCmd.AddCommand(resetPasswordCmd)
	RootCmd.AddCommand(profileCmd)
}

// Helper functions for testing

// GetRootCmd returns the RootCmd for testing.
func GetRootCmd() *cobra.Command {
	return RootCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	profileFlag = ""
	resetInitCommandState()
	resetStoreCommandState()
	resetGetCommandState()
	historyCategory = ""
	deleteCategory = ""
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
