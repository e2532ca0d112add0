package imagetypes

import (
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// Extensions lists the indexed image formats without the leading dot.
var Extensions = []string{"png", "jpg", "jpeg", "bmp", "tiff", "webp"}

var allowlist = glob.MustCompile("*.{" + strings.Join(Extensions, ",") + "}")

// MimeTypes maps lowercase extensions (with the leading dot) to MIME types.
var MimeTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".bmp":  "image/bmp",
	".tiff": "image/tiff",
	".webp": "image/webp",
}

// browserSafe are formats every mainstream browser renders natively.
var browserSafe = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".bmp":  true,
}

// IsImage reports whether name carries one of the allowlisted extensions,
// ignoring case.
func IsImage(name string) bool {
	return allowlist.Match(strings.ToLower(name))
}

// Ext returns the lowercase extension of name including the leading dot.
func Ext(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

// GetMimeType returns the MIME type for a file name.
// Returns "application/octet-stream" if the extension is not recognized.
func GetMimeType(name string) string {
	if mime, ok := MimeTypes[Ext(name)]; ok {
		return mime
	}
	return "application/octet-stream"
}

// IsBrowserSafe reports whether browsers can display the file as is.
// Everything else is shown through a transcoded preview.
func IsBrowserSafe(name string) bool {
	return browserSafe[Ext(name)]
}

// Stem returns name without its final extension. A dot-file with no other
// dot (".png") is returned unchanged.
func Stem(name string) string {
	base := filepath.Base(name)
	ext := filepath.Ext(base)
	if ext == base {
		return base
	}
	return strings.TrimSuffix(base, ext)
}
