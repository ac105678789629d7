package analyzer

import (
	"image"
	"image/draw"
	"math"

	"gonum.org/v1/gonum/stat"

	"go-id-extractor/pkg/models"
)

// Quality score weights. Sharpness and contrast dominate because text
// legibility drives downstream extraction accuracy.
const (
	weightBrightness = 0.15
	weightContrast   = 0.30
	weightSharpness  = 0.40
	weightNoise      = 0.15

	// Normalization ceilings for raw measurements
	sharpnessVarianceCeiling = 1000.0
	contrastStdDevCeiling    = 64.0
	noiseResponseCeiling     = 25.0

	// Gradient magnitude above which a pixel counts as an edge and is
	// excluded from the noise estimate
	noiseEdgeThreshold = 60.0

	// Upper bound on pixels sampled for the luminance statistics
	maxLuminanceSamples = 200000
)

// QualityAnalyzer computes normalized quality metrics from a decoded image.
// All measurements are deterministic: identical input produces identical
// output. The metrics only gate optional enhancement stages downstream.
type QualityAnalyzer struct{}

// NewQualityAnalyzer creates a new quality analyzer
func NewQualityAnalyzer() *QualityAnalyzer {
	return &QualityAnalyzer{}
}

// Analyze computes brightness, contrast, sharpness and noise level for the
// image, plus a weighted overall score. All values are in [0,1].
func (qa *QualityAnalyzer) Analyze(img image.Image) models.QualityMetrics {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return models.QualityMetrics{}
	}

	luminances := qa.sampleLuminance(img)
	mean := stat.Mean(luminances, nil)
	stdDev := math.Sqrt(stat.Variance(luminances, nil))

	brightness := clamp01(mean / 255.0)
	contrast := clamp01(stdDev / contrastStdDevCeiling)

	gray := ToGray(img)
	sharpness, noise := qa.highFrequencyMetrics(gray)

	// Mid-range brightness scores best; both extremes hurt legibility
	brightnessScore := 1.0 - 2.0*math.Abs(brightness-0.5)

	overall := clamp01(weightBrightness*brightnessScore +
		weightContrast*contrast +
		weightSharpness*sharpness +
		weightNoise*(1.0-noise))

	return models.QualityMetrics{
		Brightness:   brightness,
		Contrast:     contrast,
		Sharpness:    sharpness,
		NoiseLevel:   noise,
		OverallScore: overall,
	}
}

// sampleLuminance collects Rec.709 luminance values over a uniform pixel grid
func (qa *QualityAnalyzer) sampleLuminance(img image.Image) []float64 {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	step := 1
	if total := width * height; total > maxLuminanceSamples {
		step = int(math.Sqrt(float64(total) / float64(maxLuminanceSamples)))
		if step < 1 {
			step = 1
		}
	}

	values := make([]float64, 0, (width/step+1)*(height/step+1))
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			r, g, b, _ := img.At(x, y).RGBA()
			// 16-bit channels scaled back to the 8-bit range
			rf := float64(r) / 257.0
			gf := float64(g) / 257.0
			bf := float64(b) / 257.0
			values = append(values, 0.2126*rf+0.7152*gf+0.0722*bf)
		}
	}
	return values
}

// highFrequencyMetrics computes the sharpness and noise estimates in one pass.
// Sharpness is the normalized variance of the Laplacian response. Noise is the
// mean Laplacian magnitude over non-edge pixels: high-frequency energy that a
// Sobel gradient does not explain. The noise heuristic may misfire on
// legitimately high-detail documents, which is acceptable since it only gates
// the optional denoise stage.
func (qa *QualityAnalyzer) highFrequencyMetrics(gray *image.Gray) (sharpness, noise float64) {
	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width < 3 || height < 3 {
		return 0, 0
	}

	laplacians := make([]float64, 0, (width-2)*(height-2))
	var nonEdgeSum float64
	nonEdgeCount := 0

	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			center := float64(gray.GrayAt(x, y).Y)
			top := float64(gray.GrayAt(x, y-1).Y)
			bottom := float64(gray.GrayAt(x, y+1).Y)
			left := float64(gray.GrayAt(x-1, y).Y)
			right := float64(gray.GrayAt(x+1, y).Y)

			// Laplacian kernel: [0, 1, 0; 1, -4, 1; 0, 1, 0]
			lap := -4*center + top + bottom + left + right
			laplacians = append(laplacians, lap)

			gx := sobelX(gray, x, y)
			gy := sobelY(gray, x, y)
			magnitude := math.Sqrt(float64(gx*gx + gy*gy))
			if magnitude < noiseEdgeThreshold {
				nonEdgeSum += math.Abs(lap)
				nonEdgeCount++
			}
		}
	}

	variance := stat.Variance(laplacians, nil)
	sharpness = clamp01(variance / sharpnessVarianceCeiling)

	if nonEdgeCount > 0 {
		noise = clamp01((nonEdgeSum / float64(nonEdgeCount)) / noiseResponseCeiling)
	}
	return sharpness, noise
}

// ToGray converts an image to grayscale for kernel-based analysis
func ToGray(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	draw.Draw(gray, bounds, img, bounds.Min, draw.Src)
	return gray
}

// sobelX computes the horizontal Sobel gradient at (x, y)
func sobelX(gray *image.Gray, x, y int) int {
	return -1*int(gray.GrayAt(x-1, y-1).Y) + 1*int(gray.GrayAt(x+1, y-1).Y) +
		-2*int(gray.GrayAt(x-1, y).Y) + 2*int(gray.GrayAt(x+1, y).Y) +
		-1*int(gray.GrayAt(x-1, y+1).Y) + 1*int(gray.GrayAt(x+1, y+1).Y)
}

// sobelY computes the vertical Sobel gradient at (x, y)
func sobelY(gray *image.Gray, x, y int) int {
	return -1*int(gray.GrayAt(x-1, y-1).Y) - 2*int(gray.GrayAt(x, y-1).Y) - 1*int(gray.GrayAt(x+1, y-1).Y) +
		1*int(gray.GrayAt(x-1, y+1).Y) + 2*int(gray.GrayAt(x, y+1).Y) + 1*int(gray.GrayAt(x+1, y+1).Y)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
