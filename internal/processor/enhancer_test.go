package processor

import (
	"image"
	"image/color"
	"testing"
)

func TestStretchContrast(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.NRGBA{200, 60, 128, 255})
		}
	}

	out := StretchContrast(img, 1.3)
	r, g, b, _ := out.At(2, 2).RGBA()

	// 128 + 1.3*(200-128) = 221, 128 + 1.3*(60-128) = 39
	if uint8(r>>8) != 221 {
		t.Errorf("Expected stretched red 221, got %d", uint8(r>>8))
	}
	if uint8(g>>8) != 39 {
		t.Errorf("Expected stretched green 39, got %d", uint8(g>>8))
	}
	// Midpoint stays put
	if uint8(b>>8) != 128 {
		t.Errorf("Expected midpoint blue unchanged, got %d", uint8(b>>8))
	}
}

func TestStretchContrast_Clamps(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.Set(x, y, color.NRGBA{250, 5, 128, 255})
		}
	}

	out := StretchContrast(img, 2.0)
	r, g, _, _ := out.At(0, 0).RGBA()

	if uint8(r>>8) != 255 {
		t.Errorf("Expected red clamped to 255, got %d", uint8(r>>8))
	}
	if uint8(g>>8) != 0 {
		t.Errorf("Expected green clamped to 0, got %d", uint8(g>>8))
	}
}

func TestSharpenConvolve_PreservesDimensions(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 30, 20))
	out := SharpenConvolve(img, 9)

	bounds := out.Bounds()
	if bounds.Dx() != 30 || bounds.Dy() != 20 {
		t.Errorf("Expected 30x20, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestAdaptiveThreshold_Binarizes(t *testing.T) {
	// Left half dark, right half light
	img := image.NewGray(image.Rect(0, 0, 60, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 60; x++ {
			v := color.Gray{40}
			if x >= 30 {
				v = color.Gray{220}
			}
			img.SetGray(x, y, v)
		}
	}

	out := AdaptiveThreshold(img)

	for y := 0; y < 40; y += 5 {
		for x := 0; x < 60; x += 5 {
			v := out.GrayAt(x, y).Y
			if v != 0 && v != 255 {
				t.Fatalf("Expected binary output, got %d at (%d,%d)", v, x, y)
			}
		}
	}
}

func TestAdaptiveThreshold_UnevenLighting(t *testing.T) {
	// Horizontal brightness gradient with dark text-like dots throughout.
	// A global cutoff would lose the dots on one side.
	img := image.NewGray(image.Rect(0, 0, 100, 50))
	for y := 0; y < 50; y++ {
		for x := 0; x < 100; x++ {
			base := uint8(80 + x)
			if x%10 == 5 && y%10 == 5 {
				base = base / 4
			}
			img.SetGray(x, y, color.Gray{base})
		}
	}

	out := AdaptiveThreshold(img)

	darkLeft := out.GrayAt(5, 5).Y
	darkRight := out.GrayAt(95, 45).Y
	if darkLeft != 0 {
		t.Errorf("Expected dark dot on dim side to stay black, got %d", darkLeft)
	}
	if darkRight != 0 {
		t.Errorf("Expected dark dot on bright side to stay black, got %d", darkRight)
	}
}

func TestAdaptiveThreshold_EmptyImage(t *testing.T) {
	out := AdaptiveThreshold(image.NewGray(image.Rect(0, 0, 0, 0)))
	if out.Bounds().Dx() != 0 || out.Bounds().Dy() != 0 {
		t.Error("Expected empty output for empty input")
	}
}

func TestDenoise_PreservesDimensions(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 50, 30))
	out := Denoise(img)

	bounds := out.Bounds()
	if bounds.Dx() != 50 || bounds.Dy() != 30 {
		t.Errorf("Expected 50x30, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}
