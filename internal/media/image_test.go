package media

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// createTestImage creates a gradient test image and saves it to the given path
func createTestImage(t *testing.T, path string, width, height int, format string) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8((x * 255) / width),
				G: uint8((y * 255) / height),
				B: 128,
				A: 255,
			})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test image file: %v", err)
	}
	defer f.Close()

	switch format {
	case "jpeg", "jpg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
	case "png":
		err = png.Encode(f, img)
	case "bmp":
		err = bmp.Encode(f, img)
	case "tiff":
		err = tiff.Encode(f, img, nil)
	default:
		t.Fatalf("Unsupported test image format: %s", format)
	}

	if err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
}

func TestGetImageDimensions(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name   string
		width  int
		height int
		format string
	}{
		{"small PNG", 100, 100, "png"},
		{"wide JPEG", 640, 480, "jpeg"},
		{"tall BMP", 30, 90, "bmp"},
		{"TIFF", 64, 32, "tiff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, tt.name+"."+tt.format)
			createTestImage(t, path, tt.width, tt.height, tt.format)

			dims, err := GetImageDimensions(path)
			if err != nil {
				t.Fatalf("GetImageDimensions() error = %v", err)
			}
			if dims.Width != tt.width || dims.Height != tt.height {
				t.Errorf("GetImageDimensions() = %dx%d, want %dx%d", dims.Width, dims.Height, tt.width, tt.height)
			}
		})
	}
}

func TestGetImageDimensionsErrors(t *testing.T) {
	tmpDir := t.TempDir()

	if _, err := GetImageDimensions(filepath.Join(tmpDir, "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}

	bogus := filepath.Join(tmpDir, "bogus.png")
	if err := os.WriteFile(bogus, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := GetImageDimensions(bogus); err == nil {
		t.Error("expected error for non-image file")
	}
}

func TestConstrain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		width, height  int
		maxDim, maxPix int
		wantW, wantH   int
	}{
		{"within limits", 100, 50, 200, 1_000_000, 100, 50},
		{"wide over dimension", 8000, 4000, 4096, 100_000_000, 4096, 2048},
		{"tall over dimension", 1000, 4000, 2000, 100_000_000, 500, 2000},
		{"over pixel budget", 1000, 1000, 4096, 250_000, 500, 500},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w, h := constrain(tt.width, tt.height, tt.maxDim, tt.maxPix)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("constrain() = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestLoadImageConstrained(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "big.png")
	createTestImage(t, path, 400, 200, "png")

	img, err := LoadImageConstrained(path, 100, MaxImagePixels)
	if err != nil {
		t.Fatalf("LoadImageConstrained() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Errorf("bounds = %dx%d, want 100x50", b.Dx(), b.Dy())
	}

	img, err = LoadImageConstrained(path, 1000, MaxImagePixels)
	if err != nil {
		t.Fatalf("LoadImageConstrained() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 200 {
		t.Errorf("bounds = %dx%d, want 400x200", b.Dx(), b.Dy())
	}
}

func TestDetectFormat(t *testing.T) {
	tmpDir := t.TempDir()

	for _, format := range []string{"png", "jpeg", "bmp", "tiff"} {
		path := filepath.Join(tmpDir, "img."+format)
		createTestImage(t, path, 8, 8, format)
		got, err := DetectFormat(path)
		if err != nil {
			t.Fatalf("DetectFormat(%s) error = %v", format, err)
		}
		if got != format {
			t.Errorf("DetectFormat(%s) = %q", format, got)
		}
	}

	webp := filepath.Join(tmpDir, "img.webp")
	header := []byte{'R', 'I', 'F', 'F', 0, 0, 0, 0, 'W', 'E', 'B', 'P'}
	if err := os.WriteFile(webp, header, 0o644); err != nil {
		t.Fatal(err)
	}
	if got, _ := DetectFormat(webp); got != "webp" {
		t.Errorf("DetectFormat(webp) = %q", got)
	}

	text := filepath.Join(tmpDir, "notes.txt")
	if err := os.WriteFile(text, []byte("hello world!"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got, _ := DetectFormat(text); got != "unknown" {
		t.Errorf("DetectFormat(txt) = %q, want unknown", got)
	}
}
