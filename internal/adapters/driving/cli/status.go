package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/loamlabs/habitsync-cli/internal/core/domain"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current watermark and the last run",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if err := wireStores(); err != nil {
		return err
	}

	ctx := cmd.Context()

	state, err := stateStore.GetState(ctx)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		cmd.Println("No sync has run yet.")
		return nil
	case err != nil:
		return err
	}

	cmd.Printf("Last sync: %s\n", state.LastSync.Format(time.RFC3339))

	if runStore == nil {
		return nil
	}
	run, err := runStore.LastRun(ctx)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil
	case err != nil:
		return err
	}

	cmd.Printf("Last run %s at %s: %d task(s) fetched, %d synced, %d unmatched, %d already done\n",
		run.RunID,
		run.StartedAt.Format(time.RFC3339),
		run.TasksFetched, run.LogsCreated, run.Unmatched, run.AlreadyDone)
	return nil
}
