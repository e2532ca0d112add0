package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"multi-image-viewer/internal/imagetypes"
	"multi-image-viewer/internal/logging"
	"multi-image-viewer/internal/media"

	"github.com/gorilla/mux"
)

// indexedPath resolves {slot}/{key} against the current index. Only files
// that the index holds are ever served.
func (h *Handlers) indexedPath(w http.ResponseWriter, r *http.Request) (string, bool) {
	vars := mux.Vars(r)
	slot, ok := parseSlot(vars["slot"])
	if !ok {
		http.Error(w, "invalid slot", http.StatusBadRequest)
		return "", false
	}

	path, ok := h.session.ImagePath(vars["key"], slot)
	if !ok {
		http.Error(w, "image not found", http.StatusNotFound)
		return "", false
	}
	return path, true
}

// GetImage serves the original file for a slot. Formats browsers cannot
// display (TIFF) are sent as a JPEG preview instead.
func (h *Handlers) GetImage(w http.ResponseWriter, r *http.Request) {
	path, ok := h.indexedPath(w, r)
	if !ok {
		return
	}

	if !imagetypes.IsBrowserSafe(path) {
		h.writePreview(w, path, h.previews.MaxDimension())
		return
	}

	w.Header().Set("Content-Type", imagetypes.GetMimeType(path))
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeFile(w, r, path)
}

// GetPreview serves a JPEG preview bounded by the "size" query parameter.
func (h *Handlers) GetPreview(w http.ResponseWriter, r *http.Request) {
	path, ok := h.indexedPath(w, r)
	if !ok {
		return
	}

	size := 0
	if s := r.URL.Query().Get("size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "invalid size", http.StatusBadRequest)
			return
		}
		size = n
	}

	h.writePreview(w, path, size)
}

func (h *Handlers) writePreview(w http.ResponseWriter, path string, size int) {
	data, err := h.previews.Generate(path, size)
	if err != nil {
		if errors.Is(err, media.ErrSourceNotFound) {
			http.Error(w, "image not found", http.StatusNotFound)
			return
		}
		logging.Warn("Preview failed for %s: %v", path, err)
		http.Error(w, "failed to generate preview", http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "no-cache")
	if _, err := w.Write(data); err != nil {
		logging.Debug("failed to write preview: %v", err)
	}
}
