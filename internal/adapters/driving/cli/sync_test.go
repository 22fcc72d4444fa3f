package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loamlabs/habitsync-cli/internal/core/domain"
)

// mockSyncRunner implements driving.SyncRunner for testing.
type mockSyncRunner struct {
	report *domain.SyncReport
	err    error
}

func (m *mockSyncRunner) Run(_ context.Context) (*domain.SyncReport, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.report, nil
}

func setupSyncTest(runner *mockSyncRunner) func() {
	oldRunner := syncRunner
	syncRunner = runner
	return func() {
		syncRunner = oldRunner
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestSyncCmd_Use(t *testing.T) {
	assert.Equal(t, "sync", syncCmd.Use)
}

func TestSyncCmd_Short(t *testing.T) {
	assert.Equal(t, "Run one sync pass", syncCmd.Short)
}

func TestSyncCmd_ReportsSyncedTasks(t *testing.T) {
	cleanup := setupSyncTest(&mockSyncRunner{report: &domain.SyncReport{
		TasksFetched: 3,
		LogsCreated:  2,
		Unmatched:    1,
	}})
	defer cleanup()

	out, err := execute(t, "sync")
	require.NoError(t, err)
	assert.Contains(t, out, "Sync complete: 2/3 task(s) synced")
	assert.Contains(t, out, "1 unmatched")
}

func TestSyncCmd_EmptyWindow(t *testing.T) {
	cleanup := setupSyncTest(&mockSyncRunner{report: &domain.SyncReport{}})
	defer cleanup()

	out, err := execute(t, "sync")
	require.NoError(t, err)
	assert.Contains(t, out, "No completed tasks found")
}

func TestSyncCmd_PropagatesFailure(t *testing.T) {
	cleanup := setupSyncTest(&mockSyncRunner{err: errors.New("connection refused")})
	defer cleanup()

	_, err := execute(t, "sync")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sync failed")
}
