package session

import (
	"errors"

	"multi-image-viewer/internal/indexer"
	"multi-image-viewer/internal/keyrule"
)

// Level is the severity of a Notice.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notice is a message for the user.
type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Info returns an informational notice.
func Info(message string) *Notice {
	return &Notice{Level: LevelInfo, Message: message}
}

// NoticeFor converts an error from this package, the indexer or the key
// rule into a notice. It returns nil for a nil error.
func NoticeFor(err error) *Notice {
	if err == nil {
		return nil
	}

	var dirErr *indexer.DirectoryReadError
	switch {
	case errors.Is(err, ErrDuplicateFolder):
		return &Notice{Level: LevelInfo, Message: capitalize(err.Error())}
	case errors.Is(err, ErrNoFoldersSelected):
		return &Notice{Level: LevelWarning, Message: "No folders selected"}
	case errors.Is(err, ErrNoMatchingImages):
		return &Notice{Level: LevelWarning, Message: "No matching images found"}
	case errors.Is(err, ErrCancelled):
		return &Notice{Level: LevelInfo, Message: "Cancelled"}
	case errors.Is(err, keyrule.ErrInvalidPattern):
		return &Notice{Level: LevelError, Message: capitalize(err.Error())}
	case errors.As(err, &dirErr):
		return &Notice{Level: LevelError, Message: capitalize(dirErr.Error())}
	default:
		return &Notice{Level: LevelError, Message: err.Error()}
	}
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
