// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - TaskSource: Fetches completed tasks from the to-do service
//   - HabitTracker: Lists habits and records completions
//   - StateStore: Watermark and processed-task persistence
//
// # Optional Interfaces
//
//   - RunStore: Sync run history. Can be nil - runs are simply not recorded.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
