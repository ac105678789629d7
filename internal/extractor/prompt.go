package extractor

import (
	"fmt"
	"strings"

	"go-id-extractor/internal/fields"
)

// BuildPrompt returns the extraction instructions for an identity-document
// photo. The field list and format rules are generated from the canonical
// field enumeration so prompt and validator never drift apart.
func BuildPrompt(opts ExtractionOptions) string {
	if opts.CustomPrompt != "" {
		return opts.CustomPrompt
	}

	var sb strings.Builder
	sb.WriteString("You are a document data extraction assistant. Analyze the provided photo of a Romanian identity card and extract the fields below.\n\n")
	sb.WriteString("Return ONLY a valid JSON object with no markdown formatting, no code fences, no explanation. Use exactly these keys:\n\n")

	for _, k := range fields.Kinds() {
		fmt.Fprintf(&sb, "- %q: %s\n", k.Name(), k.Description())
	}

	sb.WriteString("\nRULES:\n")
	sb.WriteString("- All dates must be in DD.MM.YYYY format.\n")
	sb.WriteString("- Names and places must preserve Romanian diacritics (ă, â, î, ș, ț).\n")
	sb.WriteString("- If a field is not readable, use null. Never guess a value.\n")

	switch opts.QualityHint {
	case HintPoor:
		sb.WriteString("\nThe image quality is POOR. Be conservative: report a field only if you can read it with certainty, and prefer null over a doubtful transcription. Do not infer missing characters.\n")
	case HintFair:
		sb.WriteString("\nThe image quality is mediocre. Double-check characters that are easily confused (0/O, 1/I, 5/S) before reporting them.\n")
	}

	return sb.String()
}
