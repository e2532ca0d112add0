package handlers

import (
	"sync/atomic"
	"time"

	"multi-image-viewer/internal/media"
	"multi-image-viewer/internal/session"
)

// Handlers serves one Session over HTTP.
type Handlers struct {
	session   *session.Session
	previews  *media.PreviewGenerator
	startedAt time.Time
	ready     atomic.Bool

	// onFoldersChanged is called with the new folder list after every
	// successful folder edit.
	onFoldersChanged func([]string)
}

// New creates the handlers for s.
func New(s *session.Session, previews *media.PreviewGenerator) *Handlers {
	return &Handlers{
		session:   s,
		previews:  previews,
		startedAt: time.Now(),
	}
}

// OnFoldersChanged registers fn to be told about folder edits.
func (h *Handlers) OnFoldersChanged(fn func([]string)) {
	h.onFoldersChanged = fn
}

// MarkReady flips the readiness probe once the initial rebuild has run.
func (h *Handlers) MarkReady() {
	h.ready.Store(true)
}

func (h *Handlers) foldersChanged() {
	if h.onFoldersChanged != nil {
		h.onFoldersChanged(h.session.Folders())
	}
}
