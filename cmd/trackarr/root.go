package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	serverURL  string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "trackarr",
	Short: "CLI client for trackarr audio and subtitle track automation",
	Long: `trackarr - CLI client for trackarr track automation

Browse your media server's libraries and apply an audio or subtitle
track selection across an episode, a season, a show, or a whole
library in one pass.

Run 'trackarrd' to start the server daemon.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8468", "Server URL")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("trackarr {{.Version}}\n")
}
