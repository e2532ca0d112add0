package media

import (
	"bytes"
	"errors"
	"fmt"
	"image/jpeg"
	"os"
	"time"

	"multi-image-viewer/internal/logging"
	"multi-image-viewer/internal/metrics"
	"multi-image-viewer/internal/workers"

	"github.com/disintegration/imaging"
)

const (
	// DefaultPreviewDimension bounds both sides of a preview when the caller
	// does not ask for a size.
	DefaultPreviewDimension = 1600

	// MinPreviewDimension is the smallest size a caller may request.
	MinPreviewDimension = 16

	previewQuality = 85

	// maxPreviewWorkers caps concurrent decodes; each one may hold a
	// MaxImagePixels bitmap.
	maxPreviewWorkers = 4
)

// ErrSourceNotFound is returned when the image to preview does not exist.
var ErrSourceNotFound = errors.New("preview source not found")

// PreviewGenerator renders JPEG previews of images.
type PreviewGenerator struct {
	maxDimension int
	slots        chan struct{}
}

// NewPreviewGenerator creates a generator whose previews never exceed
// maxDimension on either side. Values <= 0 select DefaultPreviewDimension.
func NewPreviewGenerator(maxDimension int) *PreviewGenerator {
	if maxDimension <= 0 {
		maxDimension = DefaultPreviewDimension
	}
	n := workers.ForCPU(maxPreviewWorkers)
	logging.Debug("PreviewGenerator: max dimension %d, %d workers", maxDimension, n)
	return &PreviewGenerator{
		maxDimension: maxDimension,
		slots:        make(chan struct{}, n),
	}
}

// Workers returns how many previews may be generated at once.
func (p *PreviewGenerator) Workers() int {
	return cap(p.slots)
}

// MaxDimension returns the upper bound for preview sizes.
func (p *PreviewGenerator) MaxDimension() int {
	return p.maxDimension
}

// ClampSize maps a requested size to [MinPreviewDimension, MaxDimension].
// Zero or negative requests select MaxDimension.
func (p *PreviewGenerator) ClampSize(size int) int {
	switch {
	case size <= 0 || size > p.maxDimension:
		return p.maxDimension
	case size < MinPreviewDimension:
		return MinPreviewDimension
	default:
		return size
	}
}

// Generate decodes the image at path and returns a JPEG that fits within
// size x size. Calls beyond Workers wait for a free slot.
func (p *PreviewGenerator) Generate(path string, size int) ([]byte, error) {
	start := time.Now()
	size = p.ClampSize(size)

	if _, err := os.Stat(path); err != nil {
		metrics.PreviewGenerationsTotal.WithLabelValues("error_not_found").Inc()
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceNotFound, path, err)
	}

	p.slots <- struct{}{}
	defer func() { <-p.slots }()

	format, err := DetectFormat(path)
	if err != nil {
		format = "unknown"
	}
	metrics.PreviewDecodeByFormat.WithLabelValues(format).Inc()

	img, err := LoadImageConstrained(path, MaxImageDimension, MaxImagePixels)
	if err != nil {
		metrics.PreviewGenerationsTotal.WithLabelValues("error_decode").Inc()
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	preview := imaging.Fit(img, size, size, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, preview, &jpeg.Options{Quality: previewQuality}); err != nil {
		metrics.PreviewGenerationsTotal.WithLabelValues("error_encode").Inc()
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}

	metrics.PreviewGenerationsTotal.WithLabelValues("success").Inc()
	metrics.PreviewGenerationDuration.Observe(time.Since(start).Seconds())
	logging.Debug("Preview generated for %s (%s, %d bytes) in %v", path, format, buf.Len(), time.Since(start))

	return buf.Bytes(), nil
}
