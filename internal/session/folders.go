package session

import (
	"path/filepath"
)

// FolderSet is an ordered list of distinct folder paths. Order defines the
// column order of the aligned view.
type FolderSet struct {
	paths []string
}

// Canonical returns the absolute, cleaned form of path. Paths that cannot
// be made absolute are only cleaned.
func Canonical(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

// Add appends path in canonical form. It returns ErrDuplicateFolder and
// leaves the set unchanged when the folder is already present.
func (f *FolderSet) Add(path string) (string, error) {
	canonical := Canonical(path)
	if f.indexOf(canonical) >= 0 {
		return canonical, &DuplicateFolderError{Folder: canonical}
	}
	f.paths = append(f.paths, canonical)
	return canonical, nil
}

// Remove deletes the first entry equal to the canonical form of path and
// reports whether anything was removed.
func (f *FolderSet) Remove(path string) bool {
	i := f.indexOf(Canonical(path))
	if i < 0 {
		return false
	}
	f.paths = append(f.paths[:i], f.paths[i+1:]...)
	return true
}

// Contains reports whether the canonical form of path is in the set.
func (f *FolderSet) Contains(path string) bool {
	return f.indexOf(Canonical(path)) >= 0
}

// List returns a copy of the folders in order.
func (f *FolderSet) List() []string {
	return append([]string(nil), f.paths...)
}

// Len returns the number of folders.
func (f *FolderSet) Len() int {
	return len(f.paths)
}

func (f *FolderSet) indexOf(canonical string) int {
	for i, p := range f.paths {
		if p == canonical {
			return i
		}
	}
	return -1
}
