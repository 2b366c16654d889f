// Package cmd holds the citadels command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "citadels",
	Short: "Citadels game server and tools",
	Long: `Runs the Citadels table server, where a shared screen shows the
city and players join from their phones, and inspects stored games.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
