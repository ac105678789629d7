package models

import "time"

// Orientation describes the effective layout of an image.
type Orientation string

const (
	OrientationLandscape Orientation = "landscape"
	OrientationPortrait  Orientation = "portrait"
)

// ImageMetadata captures the structural properties of a decoded image.
// It is derived once from the decoded buffer and never mutated afterward.
type ImageMetadata struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	SizeBytes   int64   `json:"size_bytes"`
	Format      string  `json:"format"`
	AspectRatio float64 `json:"aspect_ratio"`
	ColorDepth  int     `json:"color_depth"`
	HasAlpha    bool    `json:"has_alpha"`
}

// QualityMetrics holds the normalized quality measurements of an input image.
// All values are in [0,1]. Computed once per input; used only to gate optional
// enhancement stages, never to reject a file.
type QualityMetrics struct {
	Brightness   float64 `json:"brightness"`
	Contrast     float64 `json:"contrast"`
	Sharpness    float64 `json:"sharpness"`
	NoiseLevel   float64 `json:"noise_level"`
	OverallScore float64 `json:"overall_score"`
}

// RotationResult is the combined output of the rotation estimators.
type RotationResult struct {
	Angle         int         `json:"angle"` // 0, 90, 180 or 270 degrees
	Confidence    float64     `json:"confidence"`
	ShouldCorrect bool        `json:"should_correct"`
	Orientation   Orientation `json:"orientation"`
}

// StageTiming records the wall-clock duration of one pipeline stage.
type StageTiming struct {
	Stage    string        `json:"stage"`
	Duration time.Duration `json:"duration"`
}

// PerformanceReport breaks down where pipeline time was spent.
type PerformanceReport struct {
	Stages          []StageTiming `json:"stages"`
	TotalDuration   time.Duration `json:"total_duration"`
	EstimatedMemory int64         `json:"estimated_memory_bytes"`
	EfficiencyScore float64       `json:"efficiency_score"`
}

// ProcessingResult is the terminal artifact of the image pipeline.
// It is produced once per input file and is immutable afterward.
type ProcessingResult struct {
	ID              string            `json:"id"`
	ProcessedImage  []byte            `json:"-"`
	Format          string            `json:"format"`
	MetadataBefore  ImageMetadata     `json:"metadata_before"`
	MetadataAfter   ImageMetadata     `json:"metadata_after"`
	Transformations []string          `json:"transformations"`
	Quality         QualityMetrics    `json:"quality"`
	Rotation        RotationResult    `json:"rotation"`
	Performance     PerformanceReport `json:"performance"`
	Timestamp       time.Time         `json:"timestamp"`
}
