package driven

import (
	"context"
	"time"

	"github.com/loamlabs/habitsync-cli/internal/core/domain"
)

// TaskSource fetches completed tasks from the to-do service.
type TaskSource interface {
	// CompletedBetween returns tasks completed within [since, until].
	// The bounds come from the persisted watermark and the invocation time.
	CompletedBetween(ctx context.Context, since, until time.Time) ([]domain.CompletedTask, error)
}
