// Package sqlite provides a SQLite-based implementation of the driven
// storage port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. It implements both store
// interfaces through a single database connection:
//
//   - StateStore: Watermark and processed-task persistence
//   - RunStore: Sync run history
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory as .up.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.habitsync/data/habitsync.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode.
package sqlite
