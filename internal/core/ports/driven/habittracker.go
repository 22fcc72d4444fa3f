package driven

import (
	"context"
	"time"

	"github.com/loamlabs/habitsync-cli/internal/core/domain"
)

// HabitTracker talks to the habit service.
type HabitTracker interface {
	// ListHabits returns all habits for the authenticated account.
	ListHabits(ctx context.Context) ([]domain.Habit, error)

	// LogCompletion records a completion for a habit at the given time.
	LogCompletion(ctx context.Context, habitID string, at time.Time) error
}
