package driving

import (
	"context"

	"github.com/loamlabs/habitsync-cli/internal/core/domain"
)

// SyncRunner executes one sync pass.
type SyncRunner interface {
	// Run performs a single load-fetch-match-push-persist pass and returns
	// its report. Any failure aborts the pass without advancing the
	// watermark; the next scheduled invocation retries the same window.
	Run(ctx context.Context) (*domain.SyncReport, error)
}
