package main

import (
	"os"

	"github.com/ai8future/actual-model/internal/cli"
)

// Build-time variables
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	rootCmd := cli.RootCmd(cli.Options{
		Version: Version + " (" + GitCommit + ")",
	})

	// Errors are silenced: a status line shows nothing rather than a message
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
