package indexer

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"multi-image-viewer/internal/imagetypes"
	"multi-image-viewer/internal/keyrule"
	"multi-image-viewer/internal/logging"
	"multi-image-viewer/internal/metrics"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// DirectoryReadError reports a selected folder that could not be listed.
type DirectoryReadError struct {
	Folder string
	Err    error
}

func (e *DirectoryReadError) Error() string {
	return fmt.Sprintf("failed to read folder %s: %v", e.Folder, e.Err)
}

func (e *DirectoryReadError) Unwrap() error {
	return e.Err
}

// IsDirectoryReadError reports whether err is, or wraps, a DirectoryReadError.
func IsDirectoryReadError(err error) bool {
	var dirErr *DirectoryReadError
	return errors.As(err, &dirErr)
}

// Index is the result of one rebuild. It is never modified after Rebuild
// returns it.
type Index struct {
	// Folders is the folder list the index was built from; slot i of every
	// entry belongs to Folders[i].
	Folders []string
	// Entries maps each key to one path per folder ("" when missing).
	Entries map[string][]string
	// Keys holds every key of Entries in navigation order.
	Keys []string
	// Files is the number of image files that produced a key.
	Files int
	// BuiltAt is when the rebuild finished.
	BuiltAt time.Time
}

// Len returns the number of keys.
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.Keys)
}

// Entry returns the slot list for key.
func (i *Index) Entry(key string) ([]string, bool) {
	if i == nil {
		return nil, false
	}
	paths, ok := i.Entries[key]
	return paths, ok
}

// Slot returns the path stored for key in folder position slot.
func (i *Index) Slot(key string, slot int) (string, bool) {
	paths, ok := i.Entry(key)
	if !ok || slot < 0 || slot >= len(paths) || paths[slot] == "" {
		return "", false
	}
	return paths[slot], true
}

// Indexer lists folders and builds an Index.
type Indexer struct {
	fs billy.Filesystem
}

// New creates an Indexer that lists folders through fs.
func New(fs billy.Filesystem) *Indexer {
	return &Indexer{fs: fs}
}

// NewOS creates an Indexer over the host filesystem. Folder paths are used
// as given, so they should be absolute.
func NewOS() *Indexer {
	return New(osfs.New("/"))
}

// Rebuild scans folders in order and returns a fresh index. The first
// folder that cannot be listed aborts the rebuild with a DirectoryReadError.
func (idx *Indexer) Rebuild(folders []string, rule keyrule.Rule) (*Index, error) {
	start := time.Now()
	status := "success"
	defer func() {
		metrics.IndexRebuildsTotal.WithLabelValues(status).Inc()
		metrics.IndexRebuildDuration.Observe(time.Since(start).Seconds())
	}()

	index := &Index{
		Folders: append([]string(nil), folders...),
		Entries: make(map[string][]string),
	}

	for slot, folder := range folders {
		files, err := idx.listImages(folder)
		if err != nil {
			status = "error"
			return nil, &DirectoryReadError{Folder: folder, Err: err}
		}

		for _, name := range files {
			key, ok := rule.Key(name)
			if !ok {
				logging.Debug("Skipping %s: key pattern did not match", filepath.Join(folder, name))
				continue
			}

			paths, exists := index.Entries[key]
			if !exists {
				paths = make([]string, len(folders))
				index.Entries[key] = paths
			}
			// Later names overwrite earlier ones for the same folder and key.
			paths[slot] = filepath.Join(folder, name)
			index.Files++
		}
		metrics.IndexFoldersScanned.Inc()
	}

	index.Keys = make([]string, 0, len(index.Entries))
	for key := range index.Entries {
		index.Keys = append(index.Keys, key)
	}
	SortKeys(index.Keys)
	index.BuiltAt = time.Now()

	metrics.IndexFilesMatched.Add(float64(index.Files))
	metrics.IndexKeys.Set(float64(len(index.Keys)))

	logging.Info("Index rebuilt: %d folders, %d files, %d keys in %v",
		len(folders), index.Files, len(index.Keys), time.Since(start))
	if logging.IsDebugEnabled() {
		logMapping(index)
	}

	return index, nil
}

// listImages returns the allowlisted regular files in folder, sorted by name.
func (idx *Indexer) listImages(folder string) ([]string, error) {
	infos, err := idx.fs.ReadDir(folder)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		if info.IsDir() || !imagetypes.IsImage(info.Name()) {
			continue
		}
		names = append(names, info.Name())
	}
	sort.Strings(names)
	return names, nil
}

// logMapping dumps the key table at debug level.
func logMapping(index *Index) {
	logging.Debug("=== Mapped keys ===")
	for _, key := range index.Keys {
		cols := make([]string, len(index.Folders))
		for i, p := range index.Entries[key] {
			name := "---"
			if p != "" {
				name = filepath.Base(p)
			}
			cols[i] = fmt.Sprintf("%d:%s", i, name)
		}
		logging.Debug("%s: %s", key, strings.Join(cols, " | "))
	}
	logging.Debug("=== Total keys: %d ===", len(index.Keys))
}
