package models

import "time"

// FieldSet is the canonical set of identity-document fields. A nil pointer
// means the field was not detected. A value is stored non-nil only after it
// passed its structural validator; a new FieldSet replaces the old one on
// every extraction attempt.
type FieldSet struct {
	Nume           *string `json:"nume,omitempty"`
	CNP            *string `json:"cnp,omitempty"`
	DataNasterii   *string `json:"data_nasterii,omitempty"`
	LocNastere     *string `json:"loc_nastere,omitempty"`
	Domiciliu      *string `json:"domiciliu,omitempty"`
	Seria          *string `json:"seria,omitempty"`
	Numar          *string `json:"numar,omitempty"`
	DataEliberarii *string `json:"data_eliberarii,omitempty"`
	EliberatDe     *string `json:"eliberat_de,omitempty"`
	ValabilPanaLa  *string `json:"valabil_pana_la,omitempty"`
}

// ConfidenceLevel is a coarse bucket derived from a numeric confidence score.
type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)

// FieldConfidence scores a single extracted field (or the whole set).
type FieldConfidence struct {
	Score  float64         `json:"score"`
	Level  ConfidenceLevel `json:"level"`
	Reason string          `json:"reason"`
}

// ValidationReport is the output of cross-field consistency checking.
// Errors indicate semantic contradictions; warnings are advisory only.
type ValidationReport struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// ExtractionMetadata carries processing context alongside the extracted data.
type ExtractionMetadata struct {
	ElapsedTime  time.Duration `json:"elapsed_time"`
	Model        string        `json:"model"`
	ImageQuality float64       `json:"image_quality"`
	Attempts     int           `json:"attempts"`
	Warnings     []string      `json:"warnings,omitempty"`
}

// ExtractionResult is the terminal artifact of the extraction pipeline.
type ExtractionResult struct {
	ID              string                     `json:"id"`
	Fields          FieldSet                   `json:"fields"`
	FieldConfidence map[string]FieldConfidence `json:"field_confidence"`
	Overall         FieldConfidence            `json:"overall_confidence"`
	Validation      ValidationReport           `json:"validation"`
	Metadata        ExtractionMetadata         `json:"metadata"`
}
