package validation

import (
	"go-id-extractor/pkg/models"
)

// QualityThresholds defines configurable thresholds for capture quality checks.
// Score thresholds apply to the normalized [0,1] quality metrics.
type QualityThresholds struct {
	// Sharpness thresholds
	MinSharpness float64

	// Brightness thresholds
	MinBrightness float64
	MaxBrightness float64

	// Contrast threshold
	MinContrast float64

	// Noise threshold
	MaxNoiseLevel float64

	// Resolution thresholds
	MinWidth       int
	MinHeight      int
	MinTotalPixels int
}

// DefaultQualityThresholds returns thresholds tuned for photographed
// identity documents
func DefaultQualityThresholds() QualityThresholds {
	return QualityThresholds{
		MinSharpness:   0.25,
		MinBrightness:  0.30,
		MaxBrightness:  0.95,
		MinContrast:    0.20,
		MaxNoiseLevel:  0.70,
		MinWidth:       600,
		MinHeight:      380,
		MinTotalPixels: 250000,
	}
}

// QualityValidator checks measured capture quality against thresholds and
// produces user-facing guidance. Issues never reject a document; they feed
// the extraction warnings and the retry hint.
type QualityValidator struct {
	thresholds QualityThresholds
}

// NewQualityValidator creates a new quality validator with default thresholds
func NewQualityValidator() *QualityValidator {
	return &QualityValidator{
		thresholds: DefaultQualityThresholds(),
	}
}

// NewQualityValidatorWithThresholds creates a quality validator with custom thresholds
func NewQualityValidatorWithThresholds(thresholds QualityThresholds) *QualityValidator {
	return &QualityValidator{
		thresholds: thresholds,
	}
}

// QualityIssue represents one capture quality problem
type QualityIssue struct {
	Type        string  `json:"type"`
	Message     string  `json:"message"`
	Severity    string  `json:"severity"` // "error", "warning", "info"
	ActualValue float64 `json:"actual_value,omitempty"`
	Threshold   float64 `json:"threshold,omitempty"`
}

// Validate checks the measured metrics and image dimensions against the
// configured thresholds
func (qv *QualityValidator) Validate(metrics models.QualityMetrics, meta models.ImageMetadata) []QualityIssue {
	var issues []QualityIssue

	if metrics.Sharpness < qv.thresholds.MinSharpness {
		issues = append(issues, QualityIssue{
			Type:        "blurriness",
			Message:     "The document photo is blurry. Hold the camera steady and retake it.",
			Severity:    "error",
			ActualValue: metrics.Sharpness,
			Threshold:   qv.thresholds.MinSharpness,
		})
	}

	if metrics.Brightness < qv.thresholds.MinBrightness {
		issues = append(issues, QualityIssue{
			Type:        "too_dark",
			Message:     "The photo is too dark. Retake it in better light.",
			Severity:    "error",
			ActualValue: metrics.Brightness,
			Threshold:   qv.thresholds.MinBrightness,
		})
	} else if metrics.Brightness > qv.thresholds.MaxBrightness {
		issues = append(issues, QualityIssue{
			Type:        "too_bright",
			Message:     "The photo is overexposed. Avoid direct light or flash on the document.",
			Severity:    "error",
			ActualValue: metrics.Brightness,
			Threshold:   qv.thresholds.MaxBrightness,
		})
	}

	if metrics.Contrast < qv.thresholds.MinContrast {
		issues = append(issues, QualityIssue{
			Type:        "low_contrast",
			Message:     "The document text is faint. Place the document on a contrasting background.",
			Severity:    "warning",
			ActualValue: metrics.Contrast,
			Threshold:   qv.thresholds.MinContrast,
		})
	}

	if metrics.NoiseLevel > qv.thresholds.MaxNoiseLevel {
		issues = append(issues, QualityIssue{
			Type:        "noise",
			Message:     "The photo is grainy. Use more light instead of digital zoom.",
			Severity:    "warning",
			ActualValue: metrics.NoiseLevel,
			Threshold:   qv.thresholds.MaxNoiseLevel,
		})
	}

	totalPixels := meta.Width * meta.Height
	if totalPixels < qv.thresholds.MinTotalPixels ||
		meta.Width < qv.thresholds.MinWidth ||
		meta.Height < qv.thresholds.MinHeight {
		issues = append(issues, QualityIssue{
			Type:        "low_resolution",
			Message:     "The photo resolution is too low to read the document reliably. Retake it closer to the document.",
			Severity:    "error",
			ActualValue: float64(totalPixels),
			Threshold:   float64(qv.thresholds.MinTotalPixels),
		})
	}

	return issues
}

// Messages flattens issues into plain guidance strings
func (qv *QualityValidator) Messages(issues []QualityIssue) []string {
	var messages []string
	for _, issue := range issues {
		messages = append(messages, issue.Message)
	}
	return messages
}

// HasCriticalIssues reports whether any issue has error severity
func (qv *QualityValidator) HasCriticalIssues(issues []QualityIssue) bool {
	for _, issue := range issues {
		if issue.Severity == "error" {
			return true
		}
	}
	return false
}
