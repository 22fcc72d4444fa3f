// Package domain defines the core business entities for habitsync.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - CompletedTask: A task fetched from the to-do service after completion
//   - Habit: A habit fetched from the habit service
//   - HabitIndex: Normalized-name lookup used for task/habit matching
//   - SyncState: The persisted watermark bounding the next fetch window
//   - SyncReport: The outcome of one sync pass
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
