// Package indexer groups image files from several folders by a key
// extracted from their names.
//
// A rebuild lists every folder in order, keeps allowlisted image files,
// derives each file's key with a keyrule.Rule, and records the file in the
// key's slot for that folder:
//
//	folders: [A, B]
//	A/img_00123.png, A/img_00456.png, B/photo_00123.jpg
//
//	00123 -> [A/img_00123.png, B/photo_00123.jpg]
//	00456 -> [A/img_00456.png, ""]
//
// Every slot list has one entry per folder; an empty string marks a folder
// without a file for that key. Keys are ordered numerically (see SortKeys).
//
// Folders are listed through a billy.Filesystem so tests can run against
// memfs; production code uses the OS filesystem. A rebuild either returns a
// complete new Index or an error, never a partially built one.
package indexer
