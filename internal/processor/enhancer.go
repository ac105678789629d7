package processor

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"go-id-extractor/internal/analyzer"
)

const (
	adaptiveBlockSize = 25
	adaptiveConstant  = 10.0
	denoiseSigma      = 0.6
)

// StretchContrast applies a linear stretch around the channel midpoint:
// 128 + factor*(value-128), clamped to the valid range.
func StretchContrast(img image.Image, factor float64) image.Image {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{
			R: stretchChannel(c.R, factor),
			G: stretchChannel(c.G, factor),
			B: stretchChannel(c.B, factor),
			A: c.A,
		}
	})
}

func stretchChannel(v uint8, factor float64) uint8 {
	stretched := 128.0 + factor*(float64(v)-128.0)
	if stretched < 0 {
		return 0
	}
	if stretched > 255 {
		return 255
	}
	return uint8(stretched)
}

// SharpenConvolve applies a 3x3 sharpening kernel with a strong center weight
// and -1 neighbors. Results are clamped to the valid channel range by the
// convolution itself.
func SharpenConvolve(img image.Image, centerWeight float64) image.Image {
	kernel := [9]float64{
		-1, -1, -1,
		-1, centerWeight, -1,
		-1, -1, -1,
	}
	return imaging.Convolve3x3(img, kernel, &imaging.ConvolveOptions{Normalize: true})
}

// AdaptiveThreshold binarizes the image against a locally computed reference:
// each pixel is compared to the mean of its block neighborhood minus a small
// constant. This holds up against uneven lighting across a document photo
// where a single global cutoff would not.
func AdaptiveThreshold(img image.Image) *image.Gray {
	gray := analyzer.ToGray(img)
	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	out := image.NewGray(bounds)
	if width == 0 || height == 0 {
		return out
	}

	integral := buildIntegral(gray, width, height)
	half := adaptiveBlockSize / 2

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			x0, y0 := x-half, y-half
			x1, y1 := x+half, y+half
			if x0 < 0 {
				x0 = 0
			}
			if y0 < 0 {
				y0 = 0
			}
			if x1 >= width {
				x1 = width - 1
			}
			if y1 >= height {
				y1 = height - 1
			}

			count := float64((x1 - x0 + 1) * (y1 - y0 + 1))
			sum := integral[(y1+1)*(width+1)+(x1+1)] -
				integral[y0*(width+1)+(x1+1)] -
				integral[(y1+1)*(width+1)+x0] +
				integral[y0*(width+1)+x0]
			localMean := float64(sum) / count

			if float64(gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y) > localMean-adaptiveConstant {
				out.SetGray(bounds.Min.X+x, bounds.Min.Y+y, color.Gray{Y: 255})
			} else {
				out.SetGray(bounds.Min.X+x, bounds.Min.Y+y, color.Gray{Y: 0})
			}
		}
	}
	return out
}

// buildIntegral computes a summed-area table with a zero border row/column
func buildIntegral(gray *image.Gray, width, height int) []uint64 {
	bounds := gray.Bounds()
	integral := make([]uint64, (width+1)*(height+1))
	for y := 0; y < height; y++ {
		var rowSum uint64
		for x := 0; x < width; x++ {
			rowSum += uint64(gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y)
			integral[(y+1)*(width+1)+(x+1)] = integral[y*(width+1)+(x+1)] + rowSum
		}
	}
	return integral
}

// Denoise applies a single light blur. The radius is deliberately sub-pixel
// so fine text strokes survive.
func Denoise(img image.Image) image.Image {
	return imaging.Blur(img, denoiseSigma)
}
