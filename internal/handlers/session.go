package handlers

import (
	"net/http"
	"strconv"

	"multi-image-viewer/internal/keyrule"
	"multi-image-viewer/internal/session"
)

// GetState returns the session snapshot.
func (h *Handlers) GetState(w http.ResponseWriter, _ *http.Request) {
	h.writeAction(w, nil)
}

// Next advances to the next key.
func (h *Handlers) Next(w http.ResponseWriter, _ *http.Request) {
	h.session.Next()
	h.writeAction(w, nil)
}

// Prev steps back to the previous key.
func (h *Handlers) Prev(w http.ResponseWriter, _ *http.Request) {
	h.session.Prev()
	h.writeAction(w, nil)
}

// JumpRequest carries a 1-based position as typed by the user.
type JumpRequest struct {
	Position string `json:"position"`
}

// Jump moves to a 1-based position. Out-of-range or non-numeric input is
// ignored and the unchanged state is returned.
func (h *Handlers) Jump(w http.ResponseWriter, r *http.Request) {
	var req JumpRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	if req.Position == "" {
		req.Position = r.URL.Query().Get("position")
	}

	h.session.JumpToInput(req.Position)
	h.writeAction(w, nil)
}

// Rebuild recomputes the index from the current folders and rule.
func (h *Handlers) Rebuild(w http.ResponseWriter, _ *http.Request) {
	h.writeAction(w, session.NoticeFor(h.session.Rebuild()))
}

// FolderRequest names a folder to add or remove.
type FolderRequest struct {
	Path string `json:"path"`
}

// FoldersResponse lists the selected folders.
type FoldersResponse struct {
	Folders []string `json:"folders"`
}

// ListFolders returns the selected folders in column order.
func (h *Handlers) ListFolders(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, FoldersResponse{Folders: h.session.Folders()})
}

// AddFolder appends a folder and rebuilds. Adding a folder twice yields an
// informational notice and no change.
func (h *Handlers) AddFolder(w http.ResponseWriter, r *http.Request) {
	path, ok := folderPath(w, r)
	if !ok {
		return
	}

	if _, err := h.session.AddFolder(path); err != nil {
		h.writeAction(w, session.NoticeFor(err))
		return
	}
	h.foldersChanged()
	h.writeAction(w, session.NoticeFor(h.session.Rebuild()))
}

// RemoveFolder removes a folder and rebuilds. Removing a folder that is not
// selected changes nothing.
func (h *Handlers) RemoveFolder(w http.ResponseWriter, r *http.Request) {
	path, ok := folderPath(w, r)
	if !ok {
		return
	}

	if !h.session.RemoveFolder(path) {
		h.writeAction(w, nil)
		return
	}
	h.foldersChanged()
	h.writeAction(w, session.NoticeFor(h.session.Rebuild()))
}

// folderPath reads the folder from the JSON body or the "path" query
// parameter.
func folderPath(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req FolderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return "", false
	}
	if req.Path == "" {
		req.Path = r.URL.Query().Get("path")
	}
	if req.Path == "" {
		writeJSONError(w, "path is required", http.StatusBadRequest)
		return "", false
	}
	return req.Path, true
}

// RuleResponse describes the active key rule.
type RuleResponse struct {
	Pattern   string `json:"pattern"`
	OnNoMatch string `json:"onNoMatch"`
	Display   string `json:"display"`
	Default   string `json:"default"`
}

// GetRule returns the active key rule.
func (h *Handlers) GetRule(w http.ResponseWriter, _ *http.Request) {
	rule := h.session.Rule()
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, RuleResponse{
		Pattern:   rule.Pattern(),
		OnNoMatch: string(rule.OnNoMatch()),
		Display:   rule.String(),
		Default:   keyrule.DefaultPattern,
	})
}

// RuleRequest replaces the key rule. An empty pattern clears it; OnNoMatch
// is optional.
type RuleRequest struct {
	Pattern   string `json:"pattern"`
	OnNoMatch string `json:"onNoMatch,omitempty"`
}

// SetRule applies a new key rule and rebuilds. An invalid pattern leaves
// the active rule unchanged and is reported as an error notice.
func (h *Handlers) SetRule(w http.ResponseWriter, r *http.Request) {
	var req RuleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	var (
		notice *session.Notice
		err    error
	)
	if req.OnNoMatch != "" {
		policy, perr := keyrule.ParsePolicy(req.OnNoMatch)
		if perr != nil {
			writeJSONError(w, perr.Error(), http.StatusBadRequest)
			return
		}
		notice, err = h.session.SetRuleInputWithPolicy(req.Pattern, policy)
	} else {
		notice, err = h.session.SetRuleInput(req.Pattern)
	}
	if err != nil {
		notice = session.NoticeFor(err)
	}
	h.writeAction(w, notice)
}

// parseSlot converts a path variable to a folder slot index.
func parseSlot(s string) (int, bool) {
	slot, err := strconv.Atoi(s)
	if err != nil || slot < 0 {
		return 0, false
	}
	return slot, true
}
