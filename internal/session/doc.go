// Package session owns the state of one viewing session: the ordered
// folder list, the active key rule, the latest index and the navigation
// cursor.
//
// A Session is safe for concurrent use. The HTTP handlers, the terminal
// viewer and the folder watcher all drive the same Session.
//
// # Rebuilds
//
// Folder and rule changes mark the index stale. Rebuild recomputes the
// index from scratch and resets the cursor to the first key; Refresh does
// the same but keeps the cursor where it was when it is still in range.
// A failed rebuild never replaces the previous index.
//
// # Collaborators
//
// Folder pickers, rule prompts and rendering are supplied by the caller
// through the FolderPicker, RulePrompter, Renderer and Notifier
// interfaces. Controller wires them to a Session.
//
// # Notices
//
// Every error returned by this package maps to a user-visible Notice via
// NoticeFor. None of them is fatal.
package session
