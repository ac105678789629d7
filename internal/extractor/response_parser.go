package extractor

import (
	"encoding/json"
	"regexp"
	"strings"

	apperrors "go-id-extractor/internal/errors"
	"go-id-extractor/internal/fields"
	"go-id-extractor/pkg/models"
)

const rawExcerptLimit = 500

var (
	jsonFencePattern = regexp.MustCompile("(?s)```json\\s*(.*?)```")
	anyFencePattern  = regexp.MustCompile("(?s)```\\s*(.*?)```")
)

// synonyms maps alternate key spellings the model may emit to the canonical
// field kind. The combined seria_si_numarul key is handled separately.
var synonyms = map[string]fields.Kind{
	"nume": fields.KindNume, "name": fields.KindNume, "nume_complet": fields.KindNume,
	"cnp": fields.KindCNP, "personal_numeric_code": fields.KindCNP,
	"data_nasterii": fields.KindDataNasterii, "birth_date": fields.KindDataNasterii,
	"loc_nastere": fields.KindLocNastere, "locul_nasterii": fields.KindLocNastere, "birth_place": fields.KindLocNastere,
	"domiciliu": fields.KindDomiciliu, "adresa": fields.KindDomiciliu, "address": fields.KindDomiciliu,
	"seria": fields.KindSeria, "seria_buletin": fields.KindSeria, "series": fields.KindSeria,
	"numar": fields.KindNumar, "numar_buletin": fields.KindNumar, "number": fields.KindNumar,
	"data_eliberarii": fields.KindDataEliberarii, "issue_date": fields.KindDataEliberarii,
	"eliberat_de": fields.KindEliberatDe, "emis_de": fields.KindEliberatDe, "issued_by": fields.KindEliberatDe,
	"valabil_pana_la": fields.KindValabilPanaLa, "valabilitate": fields.KindValabilPanaLa, "expiry_date": fields.KindValabilPanaLa,
}

var combinedSeriesPattern = regexp.MustCompile(`^([A-Za-z]{1,3})[\s.-]*(\d{6})$`)

// ExtractJSON pulls a JSON object out of the model's free-text response.
// Lookup order: a fenced "json" code block, then any fenced code block, then
// the first balanced top-level {...} span. A miss or malformed JSON yields an
// invalid-response error carrying a truncated copy of the raw text.
func ExtractJSON(raw string) ([]byte, error) {
	candidate := ""
	if m := jsonFencePattern.FindStringSubmatch(raw); m != nil {
		candidate = strings.TrimSpace(m[1])
	} else if m := anyFencePattern.FindStringSubmatch(raw); m != nil {
		candidate = strings.TrimSpace(m[1])
	} else {
		candidate = firstBalancedObject(raw)
	}

	if candidate == "" {
		return nil, apperrors.NewInvalidResponseError(
			"no JSON object found in model response", truncate(raw, rawExcerptLimit), nil)
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &probe); err != nil {
		return nil, apperrors.NewInvalidResponseError(
			"model response is not a valid JSON object", truncate(raw, rawExcerptLimit), err)
	}
	return []byte(candidate), nil
}

// ParseFieldSet converts a raw model response into a validated FieldSet.
// Every value passes through its field normalizer; anything unparseable is
// stored as absent rather than coerced to a guess.
func ParseFieldSet(raw string) (*models.FieldSet, error) {
	payload, err := ExtractJSON(raw)
	if err != nil {
		return nil, err
	}

	var decoded map[string]any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return nil, apperrors.NewInvalidResponseError(
			"model response is not a valid JSON object", truncate(raw, rawExcerptLimit), err)
	}

	set := &models.FieldSet{}
	for key, value := range decoded {
		text, ok := asString(value)
		if !ok {
			continue
		}

		lowered := strings.ToLower(strings.TrimSpace(key))
		if lowered == "seria_si_numarul" {
			applyCombinedSeries(set, text)
			continue
		}

		kind, known := synonyms[lowered]
		if !known {
			continue
		}
		if normalized, valid := fields.Normalize(kind, text); valid {
			fields.Set(set, kind, &normalized)
		}
	}
	return set, nil
}

// applyCombinedSeries splits a combined "XY 123456" value into the separate
// canonical seria and numar fields.
func applyCombinedSeries(set *models.FieldSet, combined string) {
	m := combinedSeriesPattern.FindStringSubmatch(strings.TrimSpace(combined))
	if m == nil {
		return
	}
	if series, ok := fields.Normalize(fields.KindSeria, m[1]); ok {
		set.Seria = &series
	}
	if number, ok := fields.Normalize(fields.KindNumar, m[2]); ok {
		set.Numar = &number
	}
}

// firstBalancedObject scans for the first top-level {...} span, tracking
// string literals so braces inside values do not end the span early.
func firstBalancedObject(raw string) string {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i, r := range raw {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch r {
		case '"':
			inString = true
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 && start >= 0 {
					return raw[start : i+1]
				}
			}
		}
	}
	return ""
}

func asString(value any) (string, bool) {
	text, ok := value.(string)
	if !ok {
		return "", false
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || strings.EqualFold(trimmed, "null") || trimmed == "-" {
		return "", false
	}
	return trimmed, true
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
