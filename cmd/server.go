package cmd

import (
	"log"

	"AuraFM/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the AuraFM server",
	Long:  `Start the AuraFM HTTP server, serving the track, playlist, stats, chat and player APIs.`,
	Run: func(cmd *cobra.Command, args []string) {
		startServer()
	},
}

func startServer() {
	log.Println("Starting AuraFM server...")
	server.Start()
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
