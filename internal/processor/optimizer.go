package processor

import (
	"bytes"
	"image"
	"image/jpeg"

	"github.com/disintegration/imaging"
)

// FitDimensions computes output dimensions that fit within the target box
// while preserving aspect ratio: fit-to-width when the source is wider than
// the target shape, fit-to-height otherwise. Images already inside the box
// are left alone; this stage never upscales.
func FitDimensions(srcWidth, srcHeight, targetWidth, targetHeight int, preserveAspect bool) (int, int) {
	if srcWidth <= 0 || srcHeight <= 0 {
		return srcWidth, srcHeight
	}
	if !preserveAspect {
		return targetWidth, targetHeight
	}
	if srcWidth <= targetWidth && srcHeight <= targetHeight {
		return srcWidth, srcHeight
	}

	srcAspect := float64(srcWidth) / float64(srcHeight)
	targetAspect := float64(targetWidth) / float64(targetHeight)

	if srcAspect > targetAspect {
		width := targetWidth
		height := int(float64(width) / srcAspect)
		if height < 1 {
			height = 1
		}
		return width, height
	}
	height := targetHeight
	width := int(float64(height) * srcAspect)
	if width < 1 {
		width = 1
	}
	return width, height
}

// Resample scales the image to the given dimensions with Lanczos filtering
func Resample(img image.Image, width, height int) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() == width && bounds.Dy() == height {
		return img
	}
	return imaging.Resize(img, width, height, imaging.Lanczos)
}

// EncodeJPEG re-encodes the image at the given quality factor. If the result
// exceeds maxBytes the quality is stepped down until it fits or bottoms out.
func EncodeJPEG(img image.Image, quality float64, maxBytes int64) ([]byte, error) {
	q := int(quality * 100)
	if q < 1 {
		q = 1
	}
	if q > 100 {
		q = 100
	}

	for {
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: q}); err != nil {
			return nil, err
		}
		if maxBytes <= 0 || int64(buf.Len()) <= maxBytes || q <= 30 {
			return buf.Bytes(), nil
		}
		q -= 20
	}
}
