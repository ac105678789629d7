package extractor

// QualityHint tells the model how much to trust the input image. The
// escalated "poor" hint makes the prompt ask for conservative, explicitly
// uncertain field reporting.
type QualityHint string

const (
	HintGood QualityHint = "good"
	HintFair QualityHint = "fair"
	HintPoor QualityHint = "poor"
)

// ExtractionOptions configures a single extraction request and the retry
// policy around it.
type ExtractionOptions struct {
	Temperature  float64     // sampling temperature, low for deterministic extraction
	MaxTokens    int         // response token budget
	CustomPrompt string      // full prompt override; empty uses the built-in prompt
	QualityHint  QualityHint // context hint embedded in the prompt
	MaxAttempts  int         // maximum additional attempts after the first
}

// DefaultExtractionOptions returns the documented defaults
func DefaultExtractionOptions() ExtractionOptions {
	return ExtractionOptions{
		Temperature: 0.1,
		MaxTokens:   2048,
		QualityHint: HintGood,
		MaxAttempts: 2,
	}
}

// Escalated returns a copy of the options with the quality hint degraded to
// "poor" for retry attempts.
func (opts ExtractionOptions) Escalated() ExtractionOptions {
	opts.QualityHint = HintPoor
	return opts
}
