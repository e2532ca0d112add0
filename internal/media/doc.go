// Package media decodes indexed images and produces browser-safe JPEG
// previews of them.
//
// PNG, JPEG, BMP, TIFF and WebP sources are supported. Very large images are
// downscaled while loading so a preview never holds more than MaxImagePixels
// in memory. Previews are generated on every request and never written to
// disk.
package media
