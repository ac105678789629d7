package processor

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"
)

func TestFitDimensions(t *testing.T) {
	tests := []struct {
		name       string
		srcW, srcH int
		tgtW, tgtH int
		preserve   bool
		wantW      int
		wantH      int
	}{
		{"already inside box", 800, 500, 1024, 768, true, 800, 500},
		{"exact fit", 1024, 768, 1024, 768, true, 1024, 768},
		{"wide source fits to width", 3000, 2000, 1024, 768, true, 1024, 682},
		{"tall source fits to height", 1000, 2000, 1024, 768, true, 384, 768},
		{"no aspect preservation", 3000, 2000, 1024, 768, false, 1024, 768},
		{"degenerate source", 0, 0, 1024, 768, true, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := FitDimensions(tt.srcW, tt.srcH, tt.tgtW, tt.tgtH, tt.preserve)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("Expected %dx%d, got %dx%d", tt.wantW, tt.wantH, w, h)
			}
		})
	}
}

func TestFitDimensions_NeverUpscales(t *testing.T) {
	w, h := FitDimensions(300, 200, 1024, 768, true)
	if w != 300 || h != 200 {
		t.Errorf("Expected small image untouched, got %dx%d", w, h)
	}
}

func TestResample(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 100))

	resized := Resample(img, 100, 50)
	bounds := resized.Bounds()
	if bounds.Dx() != 100 || bounds.Dy() != 50 {
		t.Errorf("Expected 100x50, got %dx%d", bounds.Dx(), bounds.Dy())
	}

	// Same dimensions returns the input untouched
	same := Resample(img, 200, 100)
	if same != img {
		t.Error("Expected identical image back when dimensions match")
	}
}

func TestEncodeJPEG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 80))
	for y := 0; y < 80; y++ {
		for x := 0; x < 100; x++ {
			img.Set(x, y, color.RGBA{uint8(x * 2), uint8(y * 3), 100, 255})
		}
	}

	encoded, err := EncodeJPEG(img, 0.9, 5*1024*1024)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(encoded) == 0 {
		t.Fatal("Expected non-empty JPEG output")
	}

	decoded, format, err := image.Decode(bytes.NewReader(encoded))
	if err != nil {
		t.Fatalf("Output did not decode: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("Expected jpeg output, got %s", format)
	}
	if decoded.Bounds().Dx() != 100 || decoded.Bounds().Dy() != 80 {
		t.Errorf("Expected 100x80 output, got %dx%d", decoded.Bounds().Dx(), decoded.Bounds().Dy())
	}
}

func TestEncodeJPEG_StepsDownQuality(t *testing.T) {
	// Noisy image so high quality produces a large file
	img := image.NewRGBA(image.Rect(0, 0, 400, 300))
	for y := 0; y < 300; y++ {
		for x := 0; x < 400; x++ {
			img.Set(x, y, color.RGBA{uint8((x * 7) % 256), uint8((y * 13) % 256), uint8((x * y) % 256), 255})
		}
	}

	full, err := EncodeJPEG(img, 1.0, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Force a budget below the full-quality size
	budget := int64(len(full) / 2)
	constrained, err := EncodeJPEG(img, 1.0, budget)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(constrained) >= len(full) {
		t.Errorf("Expected constrained output smaller than %d bytes, got %d", len(full), len(constrained))
	}
}

func mustEncodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("Failed to encode fixture: %v", err)
	}
	return buf.Bytes()
}
