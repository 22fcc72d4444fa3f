package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one sync pass",
	Long: `Fetches tasks completed since the last run and logs a Habitify
completion for every task whose name matches a habit (case-insensitive).

A failed pass leaves the watermark untouched, so the next scheduled run
retries the same window. Exit code is 0 on success, non-zero otherwise.`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	if err := wireSync(); err != nil {
		return err
	}

	report, err := syncRunner.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	if report.TasksFetched == 0 {
		cmd.Println("No completed tasks found in this window.")
		return nil
	}

	cmd.Printf("Sync complete: %d/%d task(s) synced", report.LogsCreated, report.TasksFetched)
	if report.Unmatched > 0 {
		cmd.Printf(", %d unmatched", report.Unmatched)
	}
	if report.AlreadyDone > 0 {
		cmd.Printf(", %d already synced", report.AlreadyDone)
	}
	cmd.Println()
	return nil
}
