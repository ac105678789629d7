package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-id-extractor/internal/fields"
)

func TestBuildPrompt_ContainsAllFieldKeys(t *testing.T) {
	prompt := BuildPrompt(DefaultExtractionOptions())

	for _, k := range fields.Kinds() {
		assert.Contains(t, prompt, `"`+k.Name()+`"`, "prompt should mention field %s", k.Name())
	}
	assert.Contains(t, prompt, "DD.MM.YYYY")
	assert.Contains(t, prompt, "diacritics")
}

func TestBuildPrompt_CustomPromptOverrides(t *testing.T) {
	opts := DefaultExtractionOptions()
	opts.CustomPrompt = "extract everything"

	assert.Equal(t, "extract everything", BuildPrompt(opts))
}

func TestBuildPrompt_QualityHints(t *testing.T) {
	good := DefaultExtractionOptions()
	good.QualityHint = HintGood
	base := BuildPrompt(good)
	assert.NotContains(t, base, "POOR")
	assert.NotContains(t, base, "mediocre")

	fair := DefaultExtractionOptions()
	fair.QualityHint = HintFair
	assert.Contains(t, BuildPrompt(fair), "easily confused")

	poor := DefaultExtractionOptions()
	poor.QualityHint = HintPoor
	withPoor := BuildPrompt(poor)
	assert.Contains(t, withPoor, "POOR")
	assert.Contains(t, withPoor, "prefer null")
}

func TestEscalated_DegradesQualityHint(t *testing.T) {
	opts := DefaultExtractionOptions()
	escalated := opts.Escalated()

	assert.Equal(t, HintPoor, escalated.QualityHint)
	assert.Equal(t, HintGood, opts.QualityHint)
	assert.Equal(t, opts.Temperature, escalated.Temperature)
}
