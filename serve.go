package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"multi-image-viewer/internal/handlers"
	"multi-image-viewer/internal/logging"
	"multi-image-viewer/internal/media"
	"multi-image-viewer/internal/memory"
	"multi-image-viewer/internal/metrics"
	"multi-image-viewer/internal/middleware"
	"multi-image-viewer/internal/session"
	"multi-image-viewer/internal/startup"
	"multi-image-viewer/internal/watcher"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

const collectorInterval = 15 * time.Second

func runServe(cmd *cobra.Command, args []string) error {
	startTime := time.Now()

	config, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	startup.LogStartup(config)
	memory.ConfigureFromEnv()

	s, err := newSession(config)
	if err != nil {
		return err
	}
	startup.LogSessionInit(s.Folders(), s.Rule())
	if len(s.Folders()) > 0 {
		buildStart := time.Now()
		if err := s.Rebuild(); err != nil {
			logging.Warn("Initial index: %s", session.NoticeFor(err).Message)
		} else {
			startup.LogSessionReady(s.Index().Len(), time.Since(buildStart))
		}
	}

	metrics.InitializeMetrics()
	collector := metrics.NewCollector(s, collectorInterval)
	collector.Start()

	h := handlers.New(s, media.NewPreviewGenerator(config.PreviewMaxDimension))

	startup.LogWatcherInit(config.Watch, config.WatchDebounce)
	var w *watcher.Watcher
	if config.Watch {
		w, err = startWatcher(s, config.WatchDebounce, func(err error) {
			if err != nil {
				logging.Warn("Watch rebuild: %s", session.NoticeFor(err).Message)
			}
		})
		if err != nil {
			logging.Error("Failed to start folder watcher: %v", err)
		} else {
			h.OnFoldersChanged(w.SetFolders)
		}
	}

	router := setupRouter(h)
	startup.LogHTTPRoutes(router, config.LogHTTP)

	var handler http.Handler = router
	if config.LogHTTP {
		handler = middleware.Logger(middleware.DefaultLoggingConfig())(handler)
	}
	handler = middleware.Compression(middleware.DefaultCompressionConfig())(handler)

	srv := &http.Server{
		Addr:         config.ListenAddress(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var metricsSrv *http.Server
	if config.MetricsEnabled {
		metricsSrv = startMetricsServer(config, h)
	}

	h.MarkReady()

	done := make(chan struct{})
	go handleShutdown(srv, metricsSrv, w, collector, done)

	startup.LogServerStarted(startup.ServerConfig{
		BindAddress:     config.BindAddress,
		Port:            config.Port,
		MetricsPort:     config.MetricsPort,
		MetricsEnabled:  config.MetricsEnabled,
		StartupDuration: time.Since(startTime),
	})

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	<-done
	return nil
}

func startWatcher(s *session.Session, debounce time.Duration, onRefresh func(error)) (*watcher.Watcher, error) {
	w, err := watcher.New(s, debounce)
	if err != nil {
		return nil, err
	}
	w.OnRefresh(onRefresh)
	w.SetFolders(s.Folders())
	if err := w.Start(); err != nil {
		w.Stop()
		return nil, err
	}
	return w, nil
}

func setupRouter(h *handlers.Handlers) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Metrics(middleware.DefaultMetricsConfig()))

	// Viewer
	r.HandleFunc("/", h.ViewerPage).Methods(http.MethodGet)
	r.HandleFunc("/view", h.ViewerFragment).Methods(http.MethodGet)

	// Session API
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/state", h.GetState).Methods(http.MethodGet)
	api.HandleFunc("/next", h.Next).Methods(http.MethodPost)
	api.HandleFunc("/prev", h.Prev).Methods(http.MethodPost)
	api.HandleFunc("/jump", h.Jump).Methods(http.MethodPost)
	api.HandleFunc("/rebuild", h.Rebuild).Methods(http.MethodPost)
	api.HandleFunc("/folders", h.ListFolders).Methods(http.MethodGet)
	api.HandleFunc("/folders", h.AddFolder).Methods(http.MethodPost)
	api.HandleFunc("/folders", h.RemoveFolder).Methods(http.MethodDelete)
	api.HandleFunc("/rule", h.GetRule).Methods(http.MethodGet)
	api.HandleFunc("/rule", h.SetRule).Methods(http.MethodPut)

	// Images
	api.HandleFunc("/image/{slot}/{key}", h.GetImage).Methods(http.MethodGet)
	api.HandleFunc("/preview/{slot}/{key}", h.GetPreview).Methods(http.MethodGet)

	// Health check and version routes
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.HealthCheck).Methods(http.MethodGet)
	r.HandleFunc("/livez", h.LivenessCheck).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods(http.MethodGet)
	r.HandleFunc("/version", h.GetVersion).Methods(http.MethodGet)

	return r
}

func startMetricsServer(config *startup.Config, h *handlers.Handlers) *http.Server {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)

	srv := &http.Server{
		Addr:              config.BindAddress + ":" + config.MetricsPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Metrics server error: %v", err)
		}
	}()
	return srv
}

func handleShutdown(srv, metricsSrv *http.Server, w *watcher.Watcher, collector *metrics.Collector, done chan<- struct{}) {
	defer close(done)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if w != nil {
		startup.LogShutdownStep("Stopping folder watcher")
		w.Stop()
		startup.LogShutdownStepComplete("Folder watcher stopped")
	}

	startup.LogShutdownStep("Stopping metrics collector")
	collector.Stop()
	startup.LogShutdownStepComplete("Metrics collector stopped")

	if metricsSrv != nil {
		startup.LogShutdownStep("Shutting down metrics server")
		if err := metricsSrv.Shutdown(ctx); err != nil {
			logging.Warn("Metrics server shutdown error: %v", err)
		} else {
			startup.LogShutdownStepComplete("Metrics server stopped")
		}
	}

	startup.LogShutdownStep("Shutting down HTTP server")
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	startup.LogShutdownComplete()
}
