package domain

import "time"

// FirstRunLookback is how far back the fetch window reaches when no sync
// state exists yet.
const FirstRunLookback = 60 * time.Minute

// SyncState tracks how far completion syncing has progressed.
// It is the only persisted state besides the processed-task set: created on
// the first run, read and overwritten on every run.
type SyncState struct {
	// LastSync is the watermark: completions at or after this instant are
	// fetched on the next run.
	LastSync time.Time
}

// WindowStart returns the lower bound of the fetch window for a run
// starting at now. On the first run (zero watermark) the window covers the
// last FirstRunLookback.
func (s SyncState) WindowStart(now time.Time) time.Time {
	if s.LastSync.IsZero() {
		return now.Add(-FirstRunLookback)
	}
	return s.LastSync
}

// Advance returns the state with the watermark moved to t. The watermark
// only ever moves forward; an earlier t leaves the state unchanged.
func (s SyncState) Advance(t time.Time) SyncState {
	if t.After(s.LastSync) {
		return SyncState{LastSync: t}
	}
	return s
}
