package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/loamlabs/habitsync-cli/internal/core/domain"
	"github.com/loamlabs/habitsync-cli/internal/core/ports/driven"
	"github.com/loamlabs/habitsync-cli/internal/core/ports/driving"
	"github.com/loamlabs/habitsync-cli/internal/logger"
)

// ProcessedRetention is how long processed task IDs are kept before being
// purged. Far longer than any overlap between two scheduled windows.
const ProcessedRetention = 30 * 24 * time.Hour

// Ensure SyncService implements the interface.
var _ driving.SyncRunner = (*SyncService)(nil)

// SyncService runs the one-way completion sync.
type SyncService struct {
	tasks  driven.TaskSource
	habits driven.HabitTracker
	state  driven.StateStore
	runs   driven.RunStore

	// now is replaceable for tests.
	now func() time.Time
}

// NewSyncService creates a new sync service.
// The runs store is optional - if nil, run history is not recorded.
func NewSyncService(
	tasks driven.TaskSource,
	habits driven.HabitTracker,
	state driven.StateStore,
	runs driven.RunStore,
) *SyncService {
	return &SyncService{
		tasks:  tasks,
		habits: habits,
		state:  state,
		runs:   runs,
		now:    time.Now,
	}
}

// Run performs a single sync pass.
//
// Failure semantics: any error aborts the pass before the watermark is
// saved, so the next scheduled invocation retries the same window. Tasks
// already pushed within the failed pass stay in the processed set and are
// not pushed again on retry.
func (s *SyncService) Run(ctx context.Context) (*domain.SyncReport, error) {
	started := s.now()
	report := &domain.SyncReport{
		RunID:     uuid.NewString(),
		StartedAt: started,
	}

	// 1. Load persisted state.
	var state domain.SyncState
	stored, err := s.state.GetState(ctx)
	switch {
	case err == nil:
		state = *stored
		logger.Info("Last sync: %s", state.LastSync.Format(time.RFC3339))
	case errors.Is(err, domain.ErrNotFound):
		logger.Info("First run: checking the last %s", domain.FirstRunLookback)
	default:
		return nil, fmt.Errorf("load sync state: %w", err)
	}

	// 2. Fetch completed tasks in the window.
	since := state.WindowStart(started)
	tasks, err := s.tasks.CompletedBetween(ctx, since, started)
	if err != nil {
		return nil, fmt.Errorf("fetch completed tasks: %w", err)
	}
	report.TasksFetched = len(tasks)
	logger.Info("Found %d completed task(s) since %s", len(tasks), since.Format(time.RFC3339))

	// 3. Match and push. Skipped entirely when the window was empty; an
	// empty run still advances the watermark below.
	if len(tasks) > 0 {
		if err := s.pushCompletions(ctx, tasks, report); err != nil {
			return nil, err
		}
	}

	// 4. Persist the new watermark. The invocation start time bounds the
	// next window; the processed set covers the overlap.
	if err := s.state.SaveState(ctx, state.Advance(started)); err != nil {
		return nil, fmt.Errorf("save sync state: %w", err)
	}

	// Best effort: a failed purge must not fail an otherwise good run.
	if purged, err := s.state.PurgeProcessed(ctx, ProcessedRetention); err != nil {
		logger.Warn("Could not purge processed tasks: %v", err)
	} else if purged > 0 {
		logger.Debug("Purged %d old processed task(s)", purged)
	}

	report.FinishedAt = s.now()
	if s.runs != nil {
		if err := s.runs.SaveRun(ctx, *report); err != nil {
			logger.Warn("Could not record sync run: %v", err)
		}
	}

	logger.Info("Sync complete: %d/%d task(s) synced", report.LogsCreated, report.TasksFetched)
	return report, nil
}

// pushCompletions matches each fetched task against the habit list and
// logs a completion per match.
func (s *SyncService) pushCompletions(
	ctx context.Context,
	tasks []domain.CompletedTask,
	report *domain.SyncReport,
) error {
	habits, err := s.habits.ListHabits(ctx)
	if err != nil {
		return fmt.Errorf("list habits: %w", err)
	}
	report.HabitsListed = len(habits)
	logger.Info("Found %d habit(s)", len(habits))

	index, collisions := domain.BuildHabitIndex(habits)
	for _, name := range collisions {
		logger.Warn("Multiple habits share the name %q; using the first one", name)
	}

	for _, task := range tasks {
		habit, ok := index.Match(task.Content)
		if !ok {
			report.Unmatched++
			logger.Debug("Skipping %q: no matching habit", task.Content)
			continue
		}

		done, err := s.state.IsProcessed(ctx, task.ID)
		if err != nil {
			return fmt.Errorf("check processed task %s: %w", task.ID, err)
		}
		if done {
			report.AlreadyDone++
			logger.Debug("Skipping %q: already synced", task.Content)
			continue
		}

		logger.Info("Syncing %q (completed %s)", task.Content, task.CompletedAt.Format(time.RFC3339))
		if err := s.habits.LogCompletion(ctx, habit.ID, task.CompletedAt); err != nil {
			return fmt.Errorf("log completion for habit %s: %w", habit.ID, err)
		}
		if err := s.state.MarkProcessed(ctx, task.ID, task.CompletedAt); err != nil {
			return fmt.Errorf("mark task %s processed: %w", task.ID, err)
		}
		report.LogsCreated++
	}

	return nil
}
