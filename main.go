package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/keyfold/keyfold/cmd"
)

func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		// Handled failures already printed their message on stderr.
		if !errors.Is(err, cmd.ErrReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
