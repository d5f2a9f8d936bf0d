package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "aurafm",
	Short: "AuraFM is a music streaming app backend.",
	Long:  `AuraFM serves the Aura music client: home feed, stats, social hub, AI support chat and player state, backed by an in-memory record store plus optional Spotify catalog and AI chat integrations.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Running without a subcommand starts the server, same as "aurafm server".
		startServer()
	},
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
