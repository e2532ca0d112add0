// Package handlers provides the HTTP presentation of a viewing session.
//
// It includes handlers for:
//   - The viewer page and its re-renderable view fragment
//   - Session state and navigation (next, prev, jump, rebuild)
//   - Folder and key rule management
//   - Serving indexed images and JPEG previews
//   - Health checks and version information
//
// Action endpoints answer with the new session state and an optional
// notice. Session-level failures (no folders, invalid pattern, unreadable
// folder) are notices, not HTTP errors; only malformed requests get a
// 4xx status.
package handlers
