// Package imagetypes holds the image file allowlist and MIME mapping shared
// by the indexer, the preview generator and the HTTP handlers.
//
// Only six formats take part in indexing:
//
//	png, jpg, jpeg, bmp, tiff, webp
//
// Matching is case-insensitive on the file name:
//
//	imagetypes.IsImage("IMG_00123.JPG") // true
//	imagetypes.IsImage("notes.txt")     // false
//
// Stem returns the file name without its extension, which is the grouping
// key when no extraction pattern is active.
package imagetypes
