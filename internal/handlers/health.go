package handlers

import (
	"net/http"
	"runtime"
	"time"

	"multi-image-viewer/internal/startup"
)

const (
	statusHealthy  = "healthy"
	statusStarting = "starting"
	statusDegraded = "degraded"
)

// HealthResponse contains the health check response
type HealthResponse struct {
	Status      string `json:"status"`
	Ready       bool   `json:"ready"`
	Version     string `json:"version"`
	Uptime      string `json:"uptime"`
	Folders     int    `json:"folders"`
	Keys        int    `json:"keys"`
	Stale       bool   `json:"stale"`
	LastRebuild string `json:"lastRebuild,omitempty"`

	GoVersion    string `json:"goVersion"`
	NumGoroutine int    `json:"numGoroutine"`
}

// HealthCheck returns the health status of the service. A stale index
// (the last rebuild failed or folders changed since) reports "degraded".
func (h *Handlers) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	state := h.session.Snapshot()
	ready := h.ready.Load()

	response := HealthResponse{
		Status:       statusHealthy,
		Ready:        ready,
		Version:      startup.Version,
		Uptime:       time.Since(h.startedAt).Round(time.Second).String(),
		Folders:      len(state.Folders),
		Keys:         state.Total,
		Stale:        state.Stale,
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
	}
	if !state.BuiltAt.IsZero() {
		response.LastRebuild = state.BuiltAt.Format(time.RFC3339)
	}

	switch {
	case !ready:
		response.Status = statusStarting
	case state.Stale:
		response.Status = statusDegraded
	}

	w.Header().Set("Content-Type", "application/json")
	if !ready {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	writeJSON(w, response)
}

// LivenessCheck always returns 200 while the server is running
func (h *Handlers) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if r.Method != http.MethodHead {
		writeJSON(w, map[string]string{"status": "alive"})
	}
}

// ReadinessCheck returns 200 once the initial rebuild has run
func (h *Handlers) ReadinessCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if h.ready.Load() {
		writeJSON(w, map[string]string{"status": "ready"})
		return
	}
	w.WriteHeader(http.StatusServiceUnavailable)
	writeJSON(w, map[string]string{"status": "not_ready"})
}
