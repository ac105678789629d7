package fields

import (
	"go-id-extractor/pkg/models"
)

// Per-field confidence model: presence earns a base score, structural
// strength of the field kind earns a boost. Scores are computed from FieldSet
// content only, never from raw model text.
const (
	baseScore     = 0.7
	cnpBoost      = 0.95
	dateBoost     = 0.9
	longTextBoost = 0.8
	longTextRunes = 10

	presenceWeight  = 0.8
	nameAndCNPBonus = 0.1
)

// ScoreField computes the confidence for a single field value
func ScoreField(k Kind, value *string) models.FieldConfidence {
	if value == nil {
		return models.FieldConfidence{Score: 0, Level: models.ConfidenceLow, Reason: "not detected"}
	}

	score := baseScore
	reason := "value present"

	switch k {
	case KindCNP:
		if Validate(KindCNP, *value) {
			score = cnpBoost
			reason = "structurally valid personal numeric code"
		}
	case KindDataNasterii, KindDataEliberarii, KindValabilPanaLa:
		if Validate(k, *value) {
			score = dateBoost
			reason = "structurally valid date"
		}
	default:
		if len([]rune(*value)) > longTextRunes {
			score = longTextBoost
			reason = "substantial text value"
		}
	}

	return models.FieldConfidence{Score: score, Level: levelFor(score), Reason: reason}
}

// ScoreSet computes per-field confidence plus the overall confidence for the
// whole set. Overall confidence is driven by field presence, with a bonus
// when both the name and the personal numeric code were found.
func ScoreSet(set *models.FieldSet) (map[string]models.FieldConfidence, models.FieldConfidence) {
	perField := make(map[string]models.FieldConfidence, kindCount)
	for _, k := range Kinds() {
		perField[k.Name()] = ScoreField(k, Get(set, k))
	}

	present := PresentCount(set)
	if present == 0 {
		return perField, models.FieldConfidence{
			Score:  0,
			Level:  models.ConfidenceLow,
			Reason: "no fields detected",
		}
	}

	score := float64(present) / float64(kindCount) * presenceWeight
	reason := "partial extraction"
	if set.Nume != nil && set.CNP != nil {
		score += nameAndCNPBonus
		reason = "name and personal numeric code present"
	}
	if score > 1.0 {
		score = 1.0
	}

	return perField, models.FieldConfidence{Score: score, Level: levelFor(score), Reason: reason}
}

func levelFor(score float64) models.ConfidenceLevel {
	switch {
	case score >= 0.8:
		return models.ConfidenceHigh
	case score >= 0.5:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}
