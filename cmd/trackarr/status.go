package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Server and media server status",
	RunE:  runStatusCmd,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatusCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	status, err := client.Status()
	if err != nil {
		return fmt.Errorf("status check failed: %w", err)
	}

	if jsonOutput {
		return printJSON(cmd, status)
	}

	if status.Server != nil {
		fmt.Printf("Media server: %s (version %s)\n",
			status.Server.MachineIdentifier, status.Server.Version)
	}
	if status.Processing {
		fmt.Println("Batch update: processing")
	} else {
		fmt.Println("Batch update: idle")
	}
	return nil
}
