// Package services contains the core application logic for habitsync.
//
// Services implement the driving ports and depend only on domain types and
// driven port interfaces. The single service here, SyncService, runs the
// linear sync procedure: load state, fetch completions since the watermark,
// match against habits by normalized name, push completion logs, persist
// the new state.
package services
