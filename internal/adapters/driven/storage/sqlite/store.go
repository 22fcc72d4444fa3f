package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/loamlabs/habitsync-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/loamlabs/habitsync-cli/internal/core/domain"
	"github.com/loamlabs/habitsync-cli/internal/core/ports/driven"
)

// Store is a SQLite-based storage that provides access to the state and
// run-history store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.habitsync/data/habitsync.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".habitsync", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "habitsync.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// StateStore returns a StateStore interface backed by this store.
func (s *Store) StateStore() driven.StateStore {
	return &stateStore{store: s}
}

// RunStore returns a RunStore interface backed by this store.
func (s *Store) RunStore() driven.RunStore {
	return &runStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version,
		); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== State Store ====================

// stateStore implements driven.StateStore.
type stateStore struct {
	store *Store
}

var _ driven.StateStore = (*stateStore)(nil)

// SaveState stores the sync state. The conditional update keeps the
// watermark monotonic even if an older invocation finishes late.
func (s *stateStore) SaveState(ctx context.Context, state domain.SyncState) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO sync_state (id, last_sync)
		VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET
			last_sync = excluded.last_sync
		WHERE excluded.last_sync > sync_state.last_sync
	`, state.LastSync)

	if err != nil {
		return fmt.Errorf("saving sync state: %w", err)
	}
	return nil
}

// GetState retrieves the sync state.
func (s *stateStore) GetState(ctx context.Context) (*domain.SyncState, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT last_sync FROM sync_state WHERE id = 1
	`)

	var state domain.SyncState
	if err := row.Scan(&state.LastSync); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("getting sync state: %w", err)
	}
	return &state, nil
}

// IsProcessed reports whether a task ID is in the processed set.
func (s *stateStore) IsProcessed(ctx context.Context, taskID string) (bool, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT 1 FROM processed_tasks WHERE task_id = ?
	`, taskID)

	var one int
	if err := row.Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("checking processed task: %w", err)
	}
	return true, nil
}

// MarkProcessed records a task ID as synced.
func (s *stateStore) MarkProcessed(ctx context.Context, taskID string, completedAt time.Time) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO processed_tasks (task_id, completed_at, marked_at)
		VALUES (?, ?, ?)
	`, taskID, completedAt, time.Now())

	if err != nil {
		return fmt.Errorf("marking task processed: %w", err)
	}
	return nil
}

// PurgeProcessed removes processed entries older than the given age.
func (s *stateStore) PurgeProcessed(ctx context.Context, olderThan time.Duration) (int64, error) {
	res, err := s.store.db.ExecContext(ctx, `
		DELETE FROM processed_tasks WHERE marked_at < ?
	`, time.Now().Add(-olderThan))
	if err != nil {
		return 0, fmt.Errorf("purging processed tasks: %w", err)
	}

	purged, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting purged tasks: %w", err)
	}
	return purged, nil
}

// ==================== Run Store ====================

// runStore implements driven.RunStore.
type runStore struct {
	store *Store
}

var _ driven.RunStore = (*runStore)(nil)

// SaveRun stores a run report.
func (s *runStore) SaveRun(ctx context.Context, report domain.SyncReport) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO sync_runs (
			id, started_at, finished_at,
			tasks_fetched, habits_listed, logs_created, unmatched, already_done
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		report.RunID, report.StartedAt, report.FinishedAt,
		report.TasksFetched, report.HabitsListed, report.LogsCreated,
		report.Unmatched, report.AlreadyDone,
	)

	if err != nil {
		return fmt.Errorf("saving sync run: %w", err)
	}
	return nil
}

// LastRun retrieves the most recent run report.
func (s *runStore) LastRun(ctx context.Context) (*domain.SyncReport, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, started_at, finished_at,
			tasks_fetched, habits_listed, logs_created, unmatched, already_done
		FROM sync_runs
		ORDER BY started_at DESC
		LIMIT 1
	`)

	var report domain.SyncReport
	err := row.Scan(
		&report.RunID, &report.StartedAt, &report.FinishedAt,
		&report.TasksFetched, &report.HabitsListed, &report.LogsCreated,
		&report.Unmatched, &report.AlreadyDone,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("getting last sync run: %w", err)
	}
	return &report, nil
}
