package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"multi-image-viewer/internal/logging"
	"multi-image-viewer/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

var viewerTemplates = template.Must(template.New("").Funcs(template.FuncMap{
	"pathEscape": url.PathEscape,
	"itoa":       strconv.Itoa,
}).ParseFS(templateFS, "templates/*.html"))

// ViewerPage renders the full viewer page.
func (h *Handlers) ViewerPage(w http.ResponseWriter, _ *http.Request) {
	h.renderTemplate(w, "page", h.session.Snapshot())
}

// ViewerFragment renders only the view section, for in-place refreshes.
func (h *Handlers) ViewerFragment(w http.ResponseWriter, _ *http.Request) {
	h.renderTemplate(w, "view", h.session.Snapshot())
}

func (h *Handlers) renderTemplate(w http.ResponseWriter, name string, state session.State) {
	var buf bytes.Buffer
	if err := viewerTemplates.ExecuteTemplate(&buf, name, state); err != nil {
		logging.Error("failed to render %s: %v", name, err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := buf.WriteTo(w); err != nil {
		logging.Debug("failed to write page: %v", err)
	}
}
