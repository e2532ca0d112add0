// Package metrics provides Prometheus instrumentation for the multi-image
// viewer. All metrics are prefixed with "multi_image_viewer_".
//
// # Metric Categories
//
// ## HTTP Metrics
//   - HTTPRequestsTotal: requests by method, path and status
//   - HTTPRequestDuration: request duration by method and path
//   - HTTPRequestsInFlight: requests currently being served
//
// ## Index Metrics
//   - IndexRebuildsTotal: rebuilds by status (success, error)
//   - IndexRebuildDuration: rebuild duration
//   - IndexFoldersScanned: folders listed by successful scans
//   - IndexFilesMatched: image files that produced a key
//   - IndexKeys: keys in the most recent index
//
// ## Session Metrics
//   - NavigationTotal: cursor moves by action (next, prev, jump, ignored)
//   - FolderChangesTotal: folder set edits by operation
//   - RuleChangesTotal: rule edits by result
//   - SessionFolders, SessionPosition, SessionStale: sampled by Collector
//
// ## Preview Metrics
//   - PreviewGenerationsTotal: previews by status
//   - PreviewGenerationDuration: decode + resize + encode time
//   - PreviewDecodeByFormat: decoded source formats
//
// ## Watcher Metrics
//   - WatcherEventsTotal: relevant filesystem events by operation
//   - WatcherRebuildsTotal: rebuilds triggered by the watcher
//
// Call InitializeMetrics once at startup so every labelled series is
// exported from the first scrape.
package metrics
