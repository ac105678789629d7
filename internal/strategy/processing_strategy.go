package strategy

import (
	"go-id-extractor/internal/processor"
	"go-id-extractor/pkg/models"
)

// degradedQualityCeiling is the overall score below which a capture is
// treated as degraded and gets the heavier preprocessing profile.
const degradedQualityCeiling = 0.5

// ProcessingStrategy selects a preprocessing profile for a document
type ProcessingStrategy interface {
	Options(quality models.QualityMetrics) processor.ProcessingOptions
	GetStrategyName() string
}

// StandardDocumentStrategy always uses the default profile
type StandardDocumentStrategy struct{}

// NewStandardDocumentStrategy creates a strategy for well-lit captures
func NewStandardDocumentStrategy() ProcessingStrategy {
	return &StandardDocumentStrategy{}
}

// Options returns the default preprocessing profile
func (s *StandardDocumentStrategy) Options(models.QualityMetrics) processor.ProcessingOptions {
	return processor.DefaultOptions()
}

// GetStrategyName returns the strategy name
func (s *StandardDocumentStrategy) GetStrategyName() string {
	return "standard_document"
}

// DegradedDocumentStrategy always uses the aggressive profile
type DegradedDocumentStrategy struct{}

// NewDegradedDocumentStrategy creates a strategy for poor captures
func NewDegradedDocumentStrategy() ProcessingStrategy {
	return &DegradedDocumentStrategy{}
}

// Options returns the aggressive preprocessing profile
func (s *DegradedDocumentStrategy) Options(models.QualityMetrics) processor.ProcessingOptions {
	return processor.AggressiveOptions()
}

// GetStrategyName returns the strategy name
func (s *DegradedDocumentStrategy) GetStrategyName() string {
	return "degraded_document"
}

// AdaptiveStrategy switches profiles based on the measured capture quality
type AdaptiveStrategy struct{}

// NewAdaptiveStrategy creates a quality-driven strategy
func NewAdaptiveStrategy() ProcessingStrategy {
	return &AdaptiveStrategy{}
}

// Options returns the aggressive profile for degraded captures and the
// default profile otherwise
func (s *AdaptiveStrategy) Options(quality models.QualityMetrics) processor.ProcessingOptions {
	if quality.OverallScore > 0 && quality.OverallScore < degradedQualityCeiling {
		return processor.AggressiveOptions()
	}
	return processor.DefaultOptions()
}

// GetStrategyName returns the strategy name
func (s *AdaptiveStrategy) GetStrategyName() string {
	return "adaptive"
}

// ProfileContext manages the active processing strategy
type ProfileContext struct {
	strategy ProcessingStrategy
}

// NewProfileContext creates a new profile context
func NewProfileContext(strategy ProcessingStrategy) *ProfileContext {
	return &ProfileContext{
		strategy: strategy,
	}
}

// SetStrategy changes the processing strategy
func (c *ProfileContext) SetStrategy(strategy ProcessingStrategy) {
	c.strategy = strategy
}

// SelectOptions picks a profile using the current strategy
func (c *ProfileContext) SelectOptions(quality models.QualityMetrics) processor.ProcessingOptions {
	return c.strategy.Options(quality)
}

// GetCurrentStrategy returns the current strategy name
func (c *ProfileContext) GetCurrentStrategy() string {
	return c.strategy.GetStrategyName()
}
