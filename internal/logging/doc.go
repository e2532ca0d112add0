// Package logging provides a small leveled logging interface for the
// multi-image viewer.
//
// Levels, lowest first:
//   - DEBUG: per-key index dumps, route tables, watcher events
//   - INFO: rebuild summaries and startup sections
//   - WARN: recoverable problems surfaced to the user as notices
//   - ERROR: failed operations
//   - FATAL: startup errors that terminate the process
//
// The initial level comes from the DEBUG or LOG_LEVEL environment variables
// and can be replaced at runtime with SetLevel (the --log-level flag).
// Output goes through the standard library logger; SetOutput redirects it,
// which the terminal viewer uses to keep log lines off the screen.
package logging
