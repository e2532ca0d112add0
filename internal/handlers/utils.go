package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"multi-image-viewer/internal/logging"
	"multi-image-viewer/internal/session"
)

// maxRequestBody bounds JSON request bodies.
const maxRequestBody = 64 << 10

// ActionResponse is returned by every endpoint that changes the session.
type ActionResponse struct {
	State  session.State   `json:"state"`
	Notice *session.Notice `json:"notice,omitempty"`
}

// writeJSON encodes v as JSON and writes it to the response writer.
// Encoding errors are logged since the status line is already sent.
func writeJSON(w http.ResponseWriter, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("failed to encode JSON response: %v", err)
	}
}

// writeJSONError writes an error response as JSON with the given status code.
func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	writeJSON(w, map[string]string{"error": message})
}

// writeAction writes the current state together with an optional notice.
func (h *Handlers) writeAction(w http.ResponseWriter, notice *session.Notice) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, ActionResponse{State: h.session.Snapshot(), Notice: notice})
}

// errNotJSON is returned by decodeJSON for requests that do not declare a
// JSON body. Cross-origin pages cannot send that header without a preflight.
var errNotJSON = errors.New("content type must be application/json")

// decodeJSON reads a JSON body into v. The request must carry an
// application/json Content-Type even when the body is empty; an empty body
// leaves v untouched.
func decodeJSON(r *http.Request, v interface{}) error {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return errNotJSON
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// writeDecodeError reports a decodeJSON failure.
func writeDecodeError(w http.ResponseWriter, err error) {
	if errors.Is(err, errNotJSON) {
		writeJSONError(w, err.Error(), http.StatusUnsupportedMediaType)
		return
	}
	writeJSONError(w, "invalid request body", http.StatusBadRequest)
}
