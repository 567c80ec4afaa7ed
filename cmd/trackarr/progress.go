package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	progressCmd := &cobra.Command{
		Use:   "progress",
		Short: "Show batch update progress",
		Long: `Show the progress of the batch update in flight, or the report
of the last finished one.

Examples:
  trackarr progress           # One snapshot
  trackarr progress --watch   # Poll until the batch finishes
  trackarr progress --results # Include per-item results
  trackarr progress reset     # Discard the finished report`,
		RunE: runProgress,
	}
	progressCmd.Flags().BoolP("watch", "w", false, "Poll until the batch finishes")
	progressCmd.Flags().Bool("results", false, "Include per-item results")

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard the finished batch report",
		RunE:  runProgressReset,
	}
	progressCmd.AddCommand(resetCmd)

	rootCmd.AddCommand(progressCmd)
}

func runProgress(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	watch, _ := cmd.Flags().GetBool("watch")
	showResults, _ := cmd.Flags().GetBool("results")

	for {
		p, err := client.Progress()
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(cmd, p)
		}

		printProgress(p, showResults)
		if !watch || !p.Processing {
			return nil
		}
		time.Sleep(time.Second)
	}
}

func printProgress(p *ProgressResponse, showResults bool) {
	if p.Error != "" {
		fmt.Printf("Failed: %s\n", p.Error)
		return
	}
	if p.Status == "" && p.Total == 0 {
		fmt.Println("No batch update running.")
		return
	}

	state := "done"
	if p.Processing {
		state = "processing"
	}
	fmt.Printf("[%s] %s\n", state, p.Status)
	if p.Total > 0 {
		fmt.Printf("  %d/%d items, %d successful, %d failed/skipped\n",
			p.Current, p.Total, p.Success, p.Failed)
	}

	if showResults && len(p.Results) > 0 {
		fmt.Println()
		for i := range p.Results {
			printItemResultLine(&p.Results[i])
		}
	}
}

func printItemResultLine(res *ItemResultResponse) {
	title := res.Title
	if res.SeasonNumber > 0 || res.EpisodeNumber > 0 {
		title = fmt.Sprintf("S%02dE%02d %s", res.SeasonNumber, res.EpisodeNumber, title)
	}
	if res.Success {
		fmt.Printf("  + %-50s %s\n", title, res.StreamName)
		return
	}
	detail := res.SkipReason
	if res.ErrorMessage != "" {
		detail += ": " + res.ErrorMessage
	}
	fmt.Printf("  - %-50s %s\n", title, detail)
}

func runProgressReset(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	if err := client.delete("/api/v1/progress"); err != nil {
		return err
	}
	fmt.Println("Progress reset.")
	return nil
}
