// Package memory provides in-memory implementations of the storage ports.
// Primarily used in tests; nothing persists across process restarts.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/loamlabs/habitsync-cli/internal/core/domain"
	"github.com/loamlabs/habitsync-cli/internal/core/ports/driven"
)

// Ensure StateStore implements the interfaces.
var (
	_ driven.StateStore = (*StateStore)(nil)
	_ driven.RunStore   = (*StateStore)(nil)
)

// StateStore is an in-memory implementation of driven.StateStore and
// driven.RunStore.
type StateStore struct {
	mu        sync.RWMutex
	state     *domain.SyncState
	processed map[string]time.Time // task ID -> marked at
	runs      []domain.SyncReport

	clock func() time.Time
}

// NewStateStore creates an empty in-memory state store.
func NewStateStore() *StateStore {
	return &StateStore{
		processed: make(map[string]time.Time),
		clock:     time.Now,
	}
}

// GetState retrieves the stored sync state.
func (s *StateStore) GetState(_ context.Context) (*domain.SyncState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state == nil {
		return nil, domain.ErrNotFound
	}
	state := *s.state
	return &state, nil
}

// SaveState stores the sync state, keeping the watermark monotonic.
func (s *StateStore) SaveState(_ context.Context, state domain.SyncState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != nil {
		state = s.state.Advance(state.LastSync)
	}
	s.state = &state
	return nil
}

// IsProcessed reports whether a task ID has been marked processed.
func (s *StateStore) IsProcessed(_ context.Context, taskID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.processed[taskID]
	return ok, nil
}

// MarkProcessed records a task ID as processed.
func (s *StateStore) MarkProcessed(_ context.Context, taskID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.processed[taskID] = s.clock()
	return nil
}

// PurgeProcessed removes entries marked longer than olderThan ago.
func (s *StateStore) PurgeProcessed(_ context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.clock().Add(-olderThan)
	var purged int64
	for id, markedAt := range s.processed {
		if markedAt.Before(cutoff) {
			delete(s.processed, id)
			purged++
		}
	}
	return purged, nil
}

// SaveRun appends a run report to the history.
func (s *StateStore) SaveRun(_ context.Context, report domain.SyncReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs = append(s.runs, report)
	return nil
}

// LastRun returns the most recently saved run report.
func (s *StateStore) LastRun(_ context.Context) (*domain.SyncReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.runs) == 0 {
		return nil, domain.ErrNotFound
	}
	report := s.runs[len(s.runs)-1]
	return &report, nil
}

// Runs returns all recorded run reports, oldest first.
func (s *StateStore) Runs() []domain.SyncReport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.SyncReport, len(s.runs))
	copy(out, s.runs)
	return out
}
