// Package watcher rebuilds a session when the contents of its folders
// change.
//
// Events for allowlisted image files (create, remove, rename, write) and
// for the removal of a watched folder itself are coalesced: the refresh
// runs once the folders have been quiet for the debounce period.
// Subdirectories are not watched, matching the indexer, which ignores them.
package watcher
