package session

import (
	"errors"
	"fmt"
)

var (
	// ErrNoFoldersSelected is returned when a rebuild is requested with an
	// empty folder list.
	ErrNoFoldersSelected = errors.New("no folders selected")

	// ErrNoMatchingImages is returned when a rebuild produced no keys.
	ErrNoMatchingImages = errors.New("no matching images found")

	// ErrDuplicateFolder is matched by every DuplicateFolderError.
	ErrDuplicateFolder = errors.New("folder already selected")

	// ErrCancelled is returned by collaborators when the user backs out of
	// a prompt.
	ErrCancelled = errors.New("cancelled")
)

// DuplicateFolderError reports an attempt to add a folder twice.
type DuplicateFolderError struct {
	Folder string
}

func (e *DuplicateFolderError) Error() string {
	return fmt.Sprintf("folder already selected: %s", e.Folder)
}

// Is makes errors.Is(err, ErrDuplicateFolder) hold.
func (e *DuplicateFolderError) Is(target error) bool {
	return target == ErrDuplicateFolder
}
