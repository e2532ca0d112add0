// Package startup handles configuration loading, build information and
// startup/shutdown logging.
//
// # Configuration
//
// [LoadConfig] starts from built-in defaults, overlays the YAML file
// (~/.config/multi-image-viewer/config.yaml unless --config names another)
// and then environment variables. Command-line flags are applied last by
// the caller.
//
//   - IMAGE_FOLDERS / folders: folders to align, separated by the OS path list separator
//   - KEY_PATTERN / key_pattern: key pattern with one capture group; empty selects the full file name
//   - ON_NO_MATCH / on_no_match: "fullname" (default) or "skip"
//   - BIND_ADDRESS / bind_address: HTTP listen address (default: 127.0.0.1)
//   - PORT / port: HTTP server port (default: 8080)
//   - METRICS_ENABLED / metrics_enabled: serve Prometheus metrics (default: false)
//   - METRICS_PORT / metrics_port: metrics server port (default: 9090)
//   - WATCH_FOLDERS / watch: rebuild when selected folders change (default: false)
//   - WATCH_DEBOUNCE / watch_debounce: quiet period before a watch rebuild (default: 500ms)
//   - PREVIEW_MAX_DIMENSION / preview_max_dimension: preview size bound (default: 1600)
//   - LOG_HTTP / log_http: HTTP access logging (default: true)
//   - LOG_LEVEL / log_level: debug, info, warn, error (default: info)
//
// # Build Information
//
// Build-time variables are injected via ldflags and exposed via [GetBuildInfo].
//
// # Lifecycle Logging
//
//   - [LogStartup]: banner, system information and configuration
//   - [LogSessionInit], [LogSessionReady]: initial folders, rule and index
//   - [LogWatcherInit]: folder watcher settings
//   - [LogHTTPRoutes]: registered HTTP routes (debug level)
//   - [LogServerStarted]: endpoints and startup duration
//   - [LogShutdownInitiated], [LogShutdownComplete]: graceful shutdown
package startup
