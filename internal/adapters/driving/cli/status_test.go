package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loamlabs/habitsync-cli/internal/adapters/driven/storage/memory"
	"github.com/loamlabs/habitsync-cli/internal/core/domain"
)

func setupStatusTest(store *memory.StateStore) func() {
	oldState := stateStore
	oldRuns := runStore
	stateStore = store
	runStore = store
	return func() {
		stateStore = oldState
		runStore = oldRuns
	}
}

func TestStatusCmd_NoStateYet(t *testing.T) {
	cleanup := setupStatusTest(memory.NewStateStore())
	defer cleanup()

	out, err := execute(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "No sync has run yet.")
}

func TestStatusCmd_ShowsWatermarkAndLastRun(t *testing.T) {
	store := memory.NewStateStore()
	mark := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveState(context.Background(), domain.SyncState{LastSync: mark}))
	require.NoError(t, store.SaveRun(context.Background(), domain.SyncReport{
		RunID:        "run-1",
		StartedAt:    mark,
		TasksFetched: 2,
		LogsCreated:  1,
		Unmatched:    1,
	}))

	cleanup := setupStatusTest(store)
	defer cleanup()

	out, err := execute(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Last sync: 2025-06-01T12:00:00Z")
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "2 task(s) fetched, 1 synced, 1 unmatched")
}
