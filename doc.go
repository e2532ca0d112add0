// Package main provides the entry point for Multi Image Viewer.
//
// Multi Image Viewer pairs up images from several folders by a key taken
// from each file name and pages through the matching sets side by side.
// A typical use is comparing the outputs of different renderers or
// processing steps that write one file per frame number.
//
// # Commands
//
//   - multi-image-viewer [folders...] / serve: browser viewer on a local port
//   - browse [folders...]: full-screen terminal viewer
//   - index [folders...]: print the key table and exit
//   - version: print build information
//
// # Keys
//
// The key rule is a regular expression whose first capture group is the
// key. The default, (\d{5,8})\D*$, takes the last run of five to eight
// digits. Files the pattern does not match are keyed by their full name
// without extension, or skipped with --on-no-match=skip. An empty pattern
// keys every file by its full name.
//
// # Configuration
//
// Settings are read from defaults, then ~/.config/multi-image-viewer/config.yaml
// (or --config), then environment variables, then flags:
//
//   - IMAGE_FOLDERS: folders to open, separated by the OS path list separator
//   - KEY_PATTERN: key pattern (empty selects the full file name)
//   - ON_NO_MATCH: fullname or skip
//   - BIND_ADDRESS: viewer bind address (default: 127.0.0.1)
//   - PORT: viewer port (default: 8080)
//   - METRICS_ENABLED: serve Prometheus metrics (default: false)
//   - METRICS_PORT: metrics port (default: 9090)
//   - WATCH_FOLDERS: rebuild when images change (default: false)
//   - WATCH_DEBOUNCE: delay before a watch rebuild (default: 500ms)
//   - PREVIEW_MAX_DIMENSION: largest preview edge in pixels (default: 1600)
//   - LOG_HTTP: log HTTP requests (default: true)
//   - LOG_LEVEL: debug, info, warn or error
//
// # Graceful Shutdown
//
// serve handles SIGINT and SIGTERM by stopping the folder watcher and the
// metrics collector, then shutting down the metrics and viewer servers
// with a 30 second timeout.
package main
