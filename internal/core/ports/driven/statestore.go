package driven

import (
	"context"
	"time"

	"github.com/loamlabs/habitsync-cli/internal/core/domain"
)

// StateStore persists sync progress: the watermark and the set of task IDs
// already pushed to the habit service.
type StateStore interface {
	// GetState retrieves the persisted sync state.
	// Returns domain.ErrNotFound before the first successful run.
	GetState(ctx context.Context) (*domain.SyncState, error)

	// SaveState stores the sync state. The watermark is monotonic: saving
	// a state with an earlier LastSync than the stored one must not
	// regress it.
	SaveState(ctx context.Context, state domain.SyncState) error

	// IsProcessed reports whether a task ID has already been synced.
	IsProcessed(ctx context.Context, taskID string) (bool, error)

	// MarkProcessed records a task ID as synced.
	MarkProcessed(ctx context.Context, taskID string, completedAt time.Time) error

	// PurgeProcessed removes processed entries older than the given age
	// and returns how many were removed. Entries safely before any
	// reachable fetch window no longer guard against double-marking.
	PurgeProcessed(ctx context.Context, olderThan time.Duration) (int64, error)
}

// RunStore persists sync run history.
type RunStore interface {
	// SaveRun stores the report of a completed run.
	SaveRun(ctx context.Context, report domain.SyncReport) error

	// LastRun retrieves the most recent run report.
	// Returns domain.ErrNotFound when no run has been recorded.
	LastRun(ctx context.Context) (*domain.SyncReport, error)
}
