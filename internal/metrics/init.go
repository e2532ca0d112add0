package metrics

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
func InitializeMetrics() {
	for _, status := range []string{"success", "error"} {
		IndexRebuildsTotal.WithLabelValues(status)
	}

	for _, action := range []string{"next", "prev", "jump", "ignored"} {
		NavigationTotal.WithLabelValues(action)
	}

	for _, op := range []string{"add", "remove", "duplicate"} {
		FolderChangesTotal.WithLabelValues(op)
	}

	for _, result := range []string{"updated", "cleared", "invalid"} {
		RuleChangesTotal.WithLabelValues(result)
	}

	for _, status := range []string{"success", "error_not_found", "error_decode", "error_encode"} {
		PreviewGenerationsTotal.WithLabelValues(status)
	}
	for _, format := range []string{"png", "jpeg", "bmp", "tiff", "webp", "unknown"} {
		PreviewDecodeByFormat.WithLabelValues(format)
	}

	for _, op := range []string{"create", "remove", "rename", "write"} {
		WatcherEventsTotal.WithLabelValues(op)
	}
}
