package domain

import "time"

// CompletedTask represents a task the to-do service reports as completed.
// Tasks are ephemeral: they live for a single sync pass and only their IDs
// are persisted, in the processed set.
type CompletedTask struct {
	// ID is the unique identifier of the completion event. Recurring tasks
	// produce a fresh ID per completion, so the ID keys the processed set.
	ID string

	// Content is the display name of the task, matched against habit names.
	Content string

	// CompletedAt is when the task was completed, as reported by the service.
	CompletedAt time.Time
}
