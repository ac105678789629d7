package analyzer

import (
	"image"
	"math"

	"github.com/disintegration/imaging"

	"go-id-extractor/pkg/models"
)

const (
	// Identity documents are assumed landscape with this aspect ratio
	expectedDocumentAspect = 1.6

	// Edge analysis runs on a downsample bounded to this box
	edgeSampleMaxWidth  = 400
	edgeSampleMaxHeight = 300

	// Gradient magnitude above which a pixel counts toward edge density
	edgeMagnitudeThreshold = 80.0

	// Horizontal/vertical density ratio bounds for the edge estimator
	landscapeRatioFloor = 1.5
	portraitRatioCeil   = 0.7

	// The aspect estimator is secondary to edge analysis
	aspectEstimatorWeight = 0.7

	// Combined confidence required before a correction is applied
	correctionThreshold = 0.6
)

// estimate is a single detector's vote: an angle and how sure it is.
type estimate struct {
	angle      int
	confidence float64
}

// RotationDetector determines document orientation by combining an
// edge-density estimator with an aspect-ratio estimator.
type RotationDetector struct{}

// NewRotationDetector creates a new rotation detector
func NewRotationDetector() *RotationDetector {
	return &RotationDetector{}
}

// QuickCheck short-circuits the expensive edge analysis when the image is
// clearly portrait-oriented. The second return value reports whether the
// quick path applied.
func (rd *RotationDetector) QuickCheck(meta models.ImageMetadata) (models.RotationResult, bool) {
	if meta.AspectRatio > 0 && meta.AspectRatio < 1.0 {
		return models.RotationResult{
			Angle:         90,
			Confidence:    0.8,
			ShouldCorrect: true,
			Orientation:   models.OrientationPortrait,
		}, true
	}
	return models.RotationResult{}, false
}

// Detect combines the two estimators into a single rotation decision.
// Angles are weighted by estimator confidence and snapped to the nearest
// multiple of 90 degrees.
func (rd *RotationDetector) Detect(img image.Image) models.RotationResult {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return models.RotationResult{Orientation: models.OrientationLandscape}
	}

	edge := rd.estimateByEdgeDensity(img)
	aspect := rd.estimateByAspectRatio(width, height)

	totalConf := edge.confidence + aspect.confidence
	if totalConf == 0 {
		totalConf = 1
	}
	weighted := (float64(edge.angle)*edge.confidence + float64(aspect.angle)*aspect.confidence) / totalConf
	angle := snapTo90(weighted)

	// Confidence reflects how much estimator weight backs the snapped angle
	var supportSum, maxSupport float64
	for _, est := range []estimate{edge, aspect} {
		if est.angle == angle {
			supportSum += est.confidence
			if est.confidence > maxSupport {
				maxSupport = est.confidence
			}
		}
	}
	confidence := (supportSum / totalConf) * maxSupport

	orientation := models.OrientationLandscape
	if height > width {
		orientation = models.OrientationPortrait
	}

	return models.RotationResult{
		Angle:         angle,
		Confidence:    confidence,
		ShouldCorrect: confidence > correctionThreshold && angle != 0,
		Orientation:   orientation,
	}
}

// Correct rotates the full-resolution image by the detected angle. Canvas
// bounds are recomputed by the rotation so no content is clipped.
func (rd *RotationDetector) Correct(img image.Image, angle int) image.Image {
	switch angle {
	case 90:
		return imaging.Rotate90(img)
	case 180:
		return imaging.Rotate180(img)
	case 270:
		return imaging.Rotate270(img)
	default:
		return img
	}
}

// estimateByEdgeDensity applies Sobel kernels over a bounded downsample and
// compares horizontal against vertical edge density. Documents in their
// natural orientation show predominantly horizontal text lines.
func (rd *RotationDetector) estimateByEdgeDensity(img image.Image) estimate {
	sample := imaging.Fit(img, edgeSampleMaxWidth, edgeSampleMaxHeight, imaging.NearestNeighbor)
	gray := ToGray(sample)

	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width < 3 || height < 3 {
		return estimate{angle: 0, confidence: 0.3}
	}

	horizontalEdges, verticalEdges := 0, 0
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			gx := float64(sobelX(gray, x, y))
			gy := float64(sobelY(gray, x, y))
			if math.Abs(gy) > edgeMagnitudeThreshold {
				horizontalEdges++
			}
			if math.Abs(gx) > edgeMagnitudeThreshold {
				verticalEdges++
			}
		}
	}

	// Featureless images carry no orientation signal
	if horizontalEdges+verticalEdges == 0 {
		return estimate{angle: 0, confidence: 0.3}
	}
	if verticalEdges == 0 {
		verticalEdges = 1
	}
	ratio := float64(horizontalEdges) / float64(verticalEdges)

	switch {
	case ratio > landscapeRatioFloor:
		return estimate{angle: 0, confidence: math.Min(ratio/3.0, 1.0)}
	case ratio < portraitRatioCeil:
		return estimate{angle: 90, confidence: math.Min((1.0/ratio)/3.0, 1.0)}
	default:
		return estimate{angle: 0, confidence: 0.3}
	}
}

// estimateByAspectRatio compares the image aspect ratio and its 90°-rotated
// counterpart against the expected document shape, picking whichever
// orientation deviates less.
func (rd *RotationDetector) estimateByAspectRatio(width, height int) estimate {
	aspect := float64(width) / float64(height)
	rotated := 1.0 / aspect

	deviation := math.Abs(aspect-expectedDocumentAspect) / expectedDocumentAspect
	rotatedDeviation := math.Abs(rotated-expectedDocumentAspect) / expectedDocumentAspect

	angle := 0
	best := deviation
	if rotatedDeviation < deviation {
		angle = 90
		best = rotatedDeviation
	}

	confidence := (1.0 - best) * aspectEstimatorWeight
	if confidence < 0 {
		confidence = 0
	}
	return estimate{angle: angle, confidence: confidence}
}

func snapTo90(angle float64) int {
	snapped := int(math.Round(angle/90.0)) * 90
	return ((snapped % 360) + 360) % 360
}
