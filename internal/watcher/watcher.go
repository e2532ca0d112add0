package watcher

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"multi-image-viewer/internal/imagetypes"
	"multi-image-viewer/internal/logging"
	"multi-image-viewer/internal/metrics"

	"github.com/fsnotify/fsnotify"
)

// Refresher is rebuilt after folder changes.
type Refresher interface {
	Refresh() error
}

// Watcher monitors the selected folders with fsnotify.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	target    Refresher
	debounce  time.Duration

	mu        sync.Mutex
	folders   map[string]bool
	running   bool
	onRefresh func(error)

	stopChan chan struct{}
	done     chan struct{}
}

// New creates a watcher that calls target.Refresh after changes settle
// for debounce.
func New(target Refresher, debounce time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsWatcher: fsWatcher,
		target:    target,
		debounce:  debounce,
		folders:   make(map[string]bool),
	}, nil
}

// OnRefresh registers fn to receive the result of every triggered refresh.
func (w *Watcher) OnRefresh(fn func(error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onRefresh = fn
}

// SetFolders replaces the watched folder set. Folders that cannot be
// watched are logged and skipped; the rest are still watched.
func (w *Watcher) SetFolders(folders []string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	wanted := make(map[string]bool, len(folders))
	for _, f := range folders {
		wanted[filepath.Clean(f)] = true
	}

	for f := range w.folders {
		if !wanted[f] {
			if err := w.fsWatcher.Remove(f); err != nil {
				logging.Debug("Watcher: failed to remove %s: %v", f, err)
			}
			delete(w.folders, f)
			logging.Debug("Watcher: stopped watching %s", f)
		}
	}

	for f := range wanted {
		if w.folders[f] {
			continue
		}
		if err := w.fsWatcher.Add(f); err != nil {
			logging.Warn("Watcher: cannot watch %s: %v", f, err)
			continue
		}
		w.folders[f] = true
		logging.Debug("Watcher: watching %s", f)
	}
}

// Folders returns the watched folders, sorted.
func (w *Watcher) Folders() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	folders := make([]string, 0, len(w.folders))
	for f := range w.folders {
		folders = append(folders, f)
	}
	sort.Strings(folders)
	return folders
}

// Start begins the event loop.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.stopChan = make(chan struct{})
	w.done = make(chan struct{})

	go w.loop(w.stopChan, w.done)
	logging.Info("Folder watcher started (%d folders, debounce %v)", len(w.folders), w.debounce)
	return nil
}

// Stop ends the event loop and releases the fsnotify watcher. A pending
// refresh is dropped.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		_ = w.fsWatcher.Close()
		return
	}
	w.running = false
	close(w.stopChan)
	done := w.done
	w.mu.Unlock()

	<-done
	if err := w.fsWatcher.Close(); err != nil {
		logging.Warn("Watcher: error closing fsnotify watcher: %v", err)
	}
	logging.Info("Folder watcher stopped")
}

func (w *Watcher) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	// Timers created with go >= 1.23 semantics never deliver stale values
	// after Stop or Reset, so no draining is needed.
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			op, relevant := w.classify(event)
			if !relevant {
				continue
			}
			metrics.WatcherEventsTotal.WithLabelValues(op).Inc()
			logging.Debug("Watcher: %s %s", op, event.Name)

			timer.Reset(w.debounce)

		case <-timer.C:
			w.refresh()

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			logging.Error("Watcher: fsnotify error: %v", err)

		case <-stop:
			timer.Stop()
			return
		}
	}
}

func (w *Watcher) refresh() {
	metrics.WatcherRebuildsTotal.Inc()
	err := w.target.Refresh()
	if err != nil {
		logging.Warn("Watcher: rebuild after folder change: %v", err)
	}

	w.mu.Lock()
	fn := w.onRefresh
	w.mu.Unlock()
	if fn != nil {
		fn(err)
	}
}

// classify reports whether event can change the index, and its metric label.
func (w *Watcher) classify(event fsnotify.Event) (string, bool) {
	op := opLabel(event.Op)
	if op == "" {
		return "", false
	}

	name := filepath.Clean(event.Name)
	w.mu.Lock()
	isFolder := w.folders[name]
	w.mu.Unlock()

	if isFolder {
		return op, op == "remove" || op == "rename"
	}
	return op, imagetypes.IsImage(filepath.Base(name))
}

func opLabel(op fsnotify.Op) string {
	switch {
	case op.Has(fsnotify.Create):
		return "create"
	case op.Has(fsnotify.Remove):
		return "remove"
	case op.Has(fsnotify.Rename):
		return "rename"
	case op.Has(fsnotify.Write):
		return "write"
	default:
		return ""
	}
}
