// Package cli implements the cobra command-line interface for habitsync.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/loamlabs/habitsync-cli/internal/adapters/driven/config/file"
	"github.com/loamlabs/habitsync-cli/internal/adapters/driven/habitify"
	"github.com/loamlabs/habitsync-cli/internal/adapters/driven/storage/sqlite"
	"github.com/loamlabs/habitsync-cli/internal/adapters/driven/todoist"
	"github.com/loamlabs/habitsync-cli/internal/core/ports/driven"
	"github.com/loamlabs/habitsync-cli/internal/core/ports/driving"
	"github.com/loamlabs/habitsync-cli/internal/core/services"
	"github.com/loamlabs/habitsync-cli/internal/logger"
)

// version is set via -ldflags at build time.
var version = "dev"

// Flag values.
var (
	verboseFlag bool
	configDir   string
	dataDir     string
)

// Services used by the commands. Wired lazily so that commands which only
// touch local state never require API credentials; tests inject mocks here.
var (
	configStore *file.ConfigStore
	stateStore  driven.StateStore
	runStore    driven.RunStore
	syncRunner  driving.SyncRunner

	store *sqlite.Store
)

var rootCmd = &cobra.Command{
	Use:   "habitsync",
	Short: "One-way sync from completed Todoist tasks to Habitify habit logs",
	Long: `habitsync pushes completed Todoist tasks into Habitify.

Each invocation fetches tasks completed since the last run, matches their
names case-insensitively against your Habitify habits, and logs a
completion for every match. State lives in a local database, so habitsync
is meant to be run periodically from cron:

  */5 * * * * habitsync sync`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"enable verbose logging to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "",
		"config directory (default ~/.habitsync)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "",
		"state database directory (default ~/.habitsync/data)")
}

// Execute runs the root command.
func Execute() error {
	defer closeStore()
	return rootCmd.Execute()
}

// wireConfig loads the configuration store.
func wireConfig() error {
	if configStore != nil {
		return nil
	}

	cs, err := file.NewConfigStore(configDir)
	if err != nil {
		return err
	}
	configStore = cs
	return nil
}

// wireStores opens the state database. Needed by status and sync.
func wireStores() error {
	if stateStore != nil {
		return nil
	}
	if err := wireConfig(); err != nil {
		return err
	}

	dir := dataDir
	if dir == "" {
		dir = configStore.Config().DataDir
	}

	st, err := sqlite.NewStore(dir)
	if err != nil {
		return err
	}
	store = st
	stateStore = st.StateStore()
	runStore = st.RunStore()
	return nil
}

// wireSync builds the full sync service, including both API clients.
func wireSync() error {
	if syncRunner != nil {
		return nil
	}
	if err := wireStores(); err != nil {
		return err
	}

	cfg := configStore.Config()

	tasks, err := todoist.NewClient(todoist.Config{
		Token:   cfg.Todoist.Token,
		BaseURL: cfg.Todoist.BaseURL,
	})
	if err != nil {
		return err
	}

	habits, err := habitify.NewClient(habitify.Config{
		APIKey:  cfg.Habitify.APIKey,
		BaseURL: cfg.Habitify.BaseURL,
	})
	if err != nil {
		return err
	}

	syncRunner = services.NewSyncService(tasks, habits, stateStore, runStore)
	return nil
}

func closeStore() {
	if store != nil {
		_ = store.Close()
	}
}
