package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "multi_image_viewer_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "multi_image_viewer_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "multi_image_viewer_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Index metrics
var (
	IndexRebuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "multi_image_viewer_index_rebuilds_total",
			Help: "Total number of index rebuilds",
		},
		[]string{"status"},
	)

	IndexRebuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "multi_image_viewer_index_rebuild_duration_seconds",
			Help:    "Index rebuild duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	IndexFoldersScanned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "multi_image_viewer_index_folders_scanned_total",
			Help: "Total number of folders listed during rebuilds",
		},
	)

	IndexFilesMatched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "multi_image_viewer_index_files_matched_total",
			Help: "Total number of image files that produced a key",
		},
	)

	IndexKeys = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "multi_image_viewer_index_keys",
			Help: "Number of keys in the most recent index",
		},
	)
)

// Session metrics
var (
	NavigationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "multi_image_viewer_navigation_total",
			Help: "Total number of navigation commands",
		},
		[]string{"action"}, // "next", "prev", "jump", "ignored"
	)

	FolderChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "multi_image_viewer_folder_changes_total",
			Help: "Total number of folder set edits",
		},
		[]string{"op"}, // "add", "remove", "duplicate"
	)

	RuleChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "multi_image_viewer_rule_changes_total",
			Help: "Total number of key rule edits",
		},
		[]string{"result"}, // "updated", "cleared", "invalid"
	)

	SessionFolders = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "multi_image_viewer_session_folders",
			Help: "Number of selected folders",
		},
	)

	SessionPosition = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "multi_image_viewer_session_position",
			Help: "Current 1-based cursor position (0 when there is nothing to show)",
		},
	)

	SessionStale = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "multi_image_viewer_session_stale",
			Help: "Whether the index is out of date with the folder set (1 = stale)",
		},
	)
)

// Preview metrics
var (
	PreviewGenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "multi_image_viewer_preview_generations_total",
			Help: "Total number of preview generations",
		},
		[]string{"status"},
	)

	PreviewGenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "multi_image_viewer_preview_generation_duration_seconds",
			Help:    "Preview generation duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	PreviewDecodeByFormat = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "multi_image_viewer_preview_decode_total",
			Help: "Total number of decoded preview sources by format",
		},
		[]string{"format"},
	)
)

// Watcher metrics
var (
	WatcherEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "multi_image_viewer_watcher_events_total",
			Help: "Total number of relevant filesystem events seen by the folder watcher",
		},
		[]string{"op"},
	)

	WatcherRebuildsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "multi_image_viewer_watcher_rebuilds_total",
			Help: "Total number of rebuilds triggered by folder changes",
		},
	)
)
