package validation

import (
	"testing"

	"go-id-extractor/pkg/models"
)

func goodCapture() (models.QualityMetrics, models.ImageMetadata) {
	metrics := models.QualityMetrics{
		Brightness:   0.55,
		Contrast:     0.6,
		Sharpness:    0.7,
		NoiseLevel:   0.2,
		OverallScore: 0.8,
	}
	meta := models.ImageMetadata{Width: 1024, Height: 640}
	return metrics, meta
}

func TestValidate_GoodCapture(t *testing.T) {
	qv := NewQualityValidator()
	metrics, meta := goodCapture()

	issues := qv.Validate(metrics, meta)
	if len(issues) != 0 {
		t.Errorf("Expected no issues for a good capture, got %+v", issues)
	}
	if qv.HasCriticalIssues(issues) {
		t.Error("Expected no critical issues")
	}
}

func TestValidate_BlurryCapture(t *testing.T) {
	qv := NewQualityValidator()
	metrics, meta := goodCapture()
	metrics.Sharpness = 0.1

	issues := qv.Validate(metrics, meta)
	if !hasIssueType(issues, "blurriness") {
		t.Errorf("Expected blurriness issue, got %+v", issues)
	}
	if !qv.HasCriticalIssues(issues) {
		t.Error("Expected blurriness to be critical")
	}
}

func TestValidate_BrightnessExtremes(t *testing.T) {
	qv := NewQualityValidator()

	metrics, meta := goodCapture()
	metrics.Brightness = 0.1
	if !hasIssueType(qv.Validate(metrics, meta), "too_dark") {
		t.Error("Expected too_dark issue for dim capture")
	}

	metrics.Brightness = 0.99
	if !hasIssueType(qv.Validate(metrics, meta), "too_bright") {
		t.Error("Expected too_bright issue for overexposed capture")
	}
}

func TestValidate_WarningsAreNotCritical(t *testing.T) {
	qv := NewQualityValidator()
	metrics, meta := goodCapture()
	metrics.Contrast = 0.1
	metrics.NoiseLevel = 0.9

	issues := qv.Validate(metrics, meta)
	if !hasIssueType(issues, "low_contrast") || !hasIssueType(issues, "noise") {
		t.Fatalf("Expected contrast and noise warnings, got %+v", issues)
	}
	if qv.HasCriticalIssues(issues) {
		t.Error("Expected contrast and noise issues to stay warnings")
	}
}

func TestValidate_LowResolution(t *testing.T) {
	qv := NewQualityValidator()
	metrics, _ := goodCapture()
	meta := models.ImageMetadata{Width: 320, Height: 200}

	issues := qv.Validate(metrics, meta)
	if !hasIssueType(issues, "low_resolution") {
		t.Errorf("Expected low_resolution issue, got %+v", issues)
	}
}

func TestValidate_CustomThresholds(t *testing.T) {
	thresholds := DefaultQualityThresholds()
	thresholds.MinSharpness = 0.9
	qv := NewQualityValidatorWithThresholds(thresholds)

	metrics, meta := goodCapture()
	issues := qv.Validate(metrics, meta)
	if !hasIssueType(issues, "blurriness") {
		t.Error("Expected stricter threshold to flag the capture")
	}
}

func TestMessages(t *testing.T) {
	qv := NewQualityValidator()
	metrics, meta := goodCapture()
	metrics.Sharpness = 0.05
	metrics.Brightness = 0.1

	messages := qv.Messages(qv.Validate(metrics, meta))
	if len(messages) != 2 {
		t.Errorf("Expected two guidance messages, got %v", messages)
	}
	for _, msg := range messages {
		if msg == "" {
			t.Error("Expected non-empty guidance message")
		}
	}
}

func hasIssueType(issues []QualityIssue, issueType string) bool {
	for _, issue := range issues {
		if issue.Type == issueType {
			return true
		}
	}
	return false
}
