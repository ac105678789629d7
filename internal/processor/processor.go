package processor

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/png"
	"time"

	_ "golang.org/x/image/webp"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"go-id-extractor/internal/analyzer"
	apperrors "go-id-extractor/internal/errors"
	"go-id-extractor/internal/logger"
	"go-id-extractor/pkg/models"
	"go-id-extractor/pkg/validation"
)

// Quality gates for the conditional enhancement stages
const (
	enhancementQualityGate = 0.7
	denoiseNoiseGate       = 0.5

	// Efficiency score composition: time penalty decays linearly to zero
	// at this ceiling
	efficiencyTimeCeiling = 10 * time.Second
	efficiencyTimeWeight  = 0.3
	efficiencyQualWeight  = 0.7
)

// Processor sequences the full image pipeline: structural validation, decode,
// quality analysis, rotation correction, resize/optimize and the conditional
// enhancement stages. On any stage failure the whole run fails with a wrapped
// error naming the stage; partial results are never returned.
type Processor struct {
	validator *validation.FileValidator
	quality   *analyzer.QualityAnalyzer
	rotation  *analyzer.RotationDetector
}

// NewProcessor creates a processor accepting uploads up to maxUploadSize bytes
func NewProcessor(maxUploadSize int64) *Processor {
	return &Processor{
		validator: validation.NewFileValidator(maxUploadSize),
		quality:   analyzer.NewQualityAnalyzer(),
		rotation:  analyzer.NewRotationDetector(),
	}
}

// Validator exposes the structural file validator for pre-flight checks
func (p *Processor) Validator() *validation.FileValidator {
	return p.validator
}

// stageClock accumulates per-stage wall-clock timings
type stageClock struct {
	timings []models.StageTiming
}

func (c *stageClock) measure(stage string, fn func() error) error {
	start := time.Now()
	err := fn()
	c.timings = append(c.timings, models.StageTiming{Stage: stage, Duration: time.Since(start)})
	if err != nil {
		return apperrors.NewProcessingError(stage, fmt.Sprintf("stage %q failed", stage), err)
	}
	return nil
}

// Process runs the pipeline over a file blob and returns the terminal
// ProcessingResult. The context is checked between stages so a cancelled
// request stops doing pixel work promptly.
func (p *Processor) Process(ctx context.Context, data []byte, declaredMIME, filename string, opts ProcessingOptions) (*models.ProcessingResult, error) {
	if !opts.Validate() {
		return nil, apperrors.NewValidationError(apperrors.CodeProcessingFailed, "invalid processing options", nil)
	}

	start := time.Now()
	clock := &stageClock{}
	transformations := make([]string, 0, 5)

	// Stage: structural validation
	var checked validation.FileValidationResult
	if err := clock.measure("validate", func() error {
		checked = p.validator.Validate(data, declaredMIME, filename, int64(len(data)))
		return nil
	}); err != nil {
		return nil, err
	}
	if !checked.Valid {
		return nil, apperrors.NewValidationError(checked.Code, checked.Message, nil)
	}

	// Stage: decode
	var img image.Image
	var format string
	if err := clock.measure("decode", func() error {
		var decodeErr error
		img, format, decodeErr = image.Decode(bytes.NewReader(data))
		if decodeErr != nil {
			return fmt.Errorf("%w: %v", decodeError(declaredMIME), decodeErr)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	metaBefore := describeImage(img, format, int64(len(data)))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage: quality analysis
	var quality models.QualityMetrics
	if err := clock.measure("analyze", func() error {
		quality = p.quality.Analyze(img)
		return nil
	}); err != nil {
		return nil, err
	}

	// Stage: rotation detection and correction
	var rotation models.RotationResult
	if opts.AutoRotate {
		if err := clock.measure("rotate", func() error {
			var quick bool
			rotation, quick = p.rotation.QuickCheck(metaBefore)
			if !quick {
				rotation = p.rotation.Detect(img)
			}
			if rotation.ShouldCorrect {
				img = p.rotation.Correct(img, rotation.Angle)
				transformations = append(transformations, fmt.Sprintf("rotation:%ddeg", rotation.Angle))
			}
			return nil
		}); err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage: resize and optimize (always runs)
	if err := clock.measure("optimize", func() error {
		bounds := img.Bounds()
		width, height := FitDimensions(bounds.Dx(), bounds.Dy(), opts.TargetWidth, opts.TargetHeight, opts.PreserveAspectRatio)
		if width != bounds.Dx() || height != bounds.Dy() {
			img = Resample(img, width, height)
			transformations = append(transformations, "resize")
		}
		transformations = append(transformations, "optimize")
		return nil
	}); err != nil {
		return nil, err
	}

	// Stage: conditional enhancement on the final target resolution
	if opts.EnhanceQuality && quality.OverallScore < enhancementQualityGate {
		if err := clock.measure("enhance", func() error {
			img = StretchContrast(img, opts.ContrastFactor)
			img = SharpenConvolve(img, opts.SharpenCenter)
			if opts.Binarize {
				img = AdaptiveThreshold(img)
			}
			transformations = append(transformations, "quality-enhancement")
			return nil
		}); err != nil {
			return nil, err
		}
	}

	// Stage: conditional noise reduction
	if opts.ReduceNoise && quality.NoiseLevel > denoiseNoiseGate {
		if err := clock.measure("denoise", func() error {
			img = Denoise(img)
			transformations = append(transformations, "noise-reduction")
			return nil
		}); err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage: encode
	var encoded []byte
	if err := clock.measure("encode", func() error {
		var encodeErr error
		encoded, encodeErr = EncodeJPEG(img, opts.Quality, opts.MaxFileSize)
		return encodeErr
	}); err != nil {
		return nil, err
	}

	metaAfter := describeImage(img, "jpeg", int64(len(encoded)))
	elapsed := time.Since(start)

	result := &models.ProcessingResult{
		ID:              uuid.NewString(),
		ProcessedImage:  encoded,
		Format:          "jpeg",
		MetadataBefore:  metaBefore,
		MetadataAfter:   metaAfter,
		Transformations: transformations,
		Quality:         quality,
		Rotation:        rotation,
		Performance: models.PerformanceReport{
			Stages:          clock.timings,
			TotalDuration:   elapsed,
			EstimatedMemory: estimateMemory(metaBefore, metaAfter),
			EfficiencyScore: efficiencyScore(elapsed, quality.OverallScore),
		},
		Timestamp: start,
	}

	logger.WithFields(logrus.Fields{
		"id":              result.ID,
		"duration_ms":     elapsed.Milliseconds(),
		"transformations": transformations,
		"overall_quality": quality.OverallScore,
	}).Debug("image pipeline completed")

	return result, nil
}

func decodeError(declaredMIME string) error {
	if declaredMIME == "application/pdf" {
		return fmt.Errorf("pdf rasterization is not supported by the image pipeline")
	}
	return fmt.Errorf("image decode failed")
}

// efficiencyScore blends a linear time penalty with the quality score
func efficiencyScore(elapsed time.Duration, qualityScore float64) float64 {
	timePenalty := 1.0 - float64(elapsed)/float64(efficiencyTimeCeiling)
	if timePenalty < 0 {
		timePenalty = 0
	}
	return efficiencyTimeWeight*timePenalty + efficiencyQualWeight*qualityScore
}

func describeImage(img image.Image, format string, sizeBytes int64) models.ImageMetadata {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	aspect := 0.0
	if height > 0 {
		aspect = float64(width) / float64(height)
	}

	hasAlpha := false
	colorDepth := 24
	switch img.(type) {
	case *image.NRGBA, *image.RGBA, *image.NRGBA64, *image.RGBA64:
		hasAlpha = true
		colorDepth = 32
	case *image.Gray:
		colorDepth = 8
	}

	return models.ImageMetadata{
		Width:       width,
		Height:      height,
		SizeBytes:   sizeBytes,
		Format:      format,
		AspectRatio: aspect,
		ColorDepth:  colorDepth,
		HasAlpha:    hasAlpha,
	}
}

// estimateMemory approximates peak pixel-buffer usage: source and output
// rasters at four bytes per pixel.
func estimateMemory(before, after models.ImageMetadata) int64 {
	return int64(before.Width*before.Height+after.Width*after.Height) * 4
}
