package domain

import "time"

// SyncReport summarises one completed sync pass. Reports are persisted as
// run history so `habitsync status` can show what the last invocation did.
type SyncReport struct {
	// RunID uniquely identifies the invocation.
	RunID string

	// StartedAt is the invocation start, which also becomes the new
	// watermark on success.
	StartedAt time.Time

	// FinishedAt is when the pass completed.
	FinishedAt time.Time

	// TasksFetched is the number of completed tasks in the window.
	TasksFetched int

	// HabitsListed is the number of habits fetched for matching.
	HabitsListed int

	// LogsCreated is the number of habit completions pushed this run.
	LogsCreated int

	// Unmatched counts tasks with no habit of the same normalized name.
	Unmatched int

	// AlreadyDone counts tasks skipped because their ID was in the
	// processed set from an earlier, overlapping window.
	AlreadyDone int
}
