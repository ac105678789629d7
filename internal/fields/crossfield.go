package fields

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arbovm/levenshtein"

	"go-id-extractor/pkg/models"
)

// Century encoded by the first CNP digit. Digits 7 and 8 mark foreign
// residents and do not fix a century.
var centuryByMarker = map[byte]int{
	'1': 1900, '2': 1900,
	'3': 1800, '4': 1800,
	'5': 2000, '6': 2000,
}

// countyBySeries maps document series to the issuing county. Series follow
// the current domicile at issuance, not the birthplace, so a mismatch with
// loc_nastere is only advisory. Representative set; Bucharest uses several
// R-prefixed series.
var countyBySeries = map[string]string{
	"AB": "ALBA", "AR": "ARAD", "AG": "ARGEȘ", "BC": "BACĂU",
	"BH": "BIHOR", "BN": "BISTRIȚA-NĂSĂUD", "BT": "BOTOȘANI", "BV": "BRAȘOV",
	"BR": "BRĂILA", "BZ": "BUZĂU", "CS": "CARAȘ-SEVERIN", "CL": "CĂLĂRAȘI",
	"CJ": "CLUJ", "CT": "CONSTANȚA", "CV": "COVASNA", "DB": "DÂMBOVIȚA",
	"DJ": "DOLJ", "GL": "GALAȚI", "GR": "GIURGIU", "GJ": "GORJ",
	"HR": "HARGHITA", "HD": "HUNEDOARA", "IL": "IALOMIȚA", "IS": "IAȘI",
	"IF": "ILFOV", "MM": "MARAMUREȘ", "MH": "MEHEDINȚI", "MS": "MUREȘ",
	"NT": "NEAMȚ", "OT": "OLT", "PH": "PRAHOVA", "SM": "SATU MARE",
	"SJ": "SĂLAJ", "SB": "SIBIU", "SV": "SUCEAVA", "TR": "TELEORMAN",
	"TM": "TIMIȘ", "TL": "TULCEA", "VS": "VASLUI", "VL": "VÂLCEA",
	"VN": "VRANCEA",
	"RD": "BUCUREȘTI", "RR": "BUCUREȘTI", "RT": "BUCUREȘTI", "RX": "BUCUREȘTI",
	"RK": "BUCUREȘTI",
}

const countyMatchTolerance = 2

// CrossValidate runs the semantic consistency checks across a FieldSet.
// Each check yields an error or a warning; none fails the result outright.
func CrossValidate(set *models.FieldSet) models.ValidationReport {
	report := models.ValidationReport{}

	checkCNPBirthDate(set, &report)
	checkDateOrdering(set, &report)
	checkSeriesCounty(set, &report)

	report.IsValid = len(report.Errors) == 0
	return report
}

// AssessmentScore condenses overall confidence and cross-field findings into
// a single score used by the retry policy to decide whether a result is good
// enough to accept.
func AssessmentScore(set *models.FieldSet) float64 {
	_, overall := ScoreSet(set)
	report := CrossValidate(set)

	score := overall.Score - 0.15*float64(len(report.Errors))
	if score < 0 {
		score = 0
	}
	return score
}

// checkCNPBirthDate verifies that the birth date embedded in the personal
// numeric code matches the separately extracted birth date field.
func checkCNPBirthDate(set *models.FieldSet, report *models.ValidationReport) {
	if set.CNP == nil || set.DataNasterii == nil {
		return
	}
	cnp := *set.CNP
	if !Validate(KindCNP, cnp) {
		return
	}

	century, known := centuryByMarker[cnp[0]]
	if !known {
		report.Warnings = append(report.Warnings,
			"birth century is not derivable from the personal numeric code (resident marker)")
		return
	}

	yy, _ := strconv.Atoi(cnp[1:3])
	derived := fmt.Sprintf("%s.%s.%04d", cnp[5:7], cnp[3:5], century+yy)
	if derived != *set.DataNasterii {
		report.Errors = append(report.Errors, fmt.Sprintf(
			"birth date %s does not match personal numeric code (encodes %s)",
			*set.DataNasterii, derived))
	}
}

// checkDateOrdering enforces birth < issue < expiry, strictly
func checkDateOrdering(set *models.FieldSet, report *models.ValidationReport) {
	if set.DataNasterii != nil && set.DataEliberarii != nil {
		if !dateBefore(*set.DataNasterii, *set.DataEliberarii) {
			report.Errors = append(report.Errors, "issue date must be after birth date")
		}
	}
	if set.DataEliberarii != nil && set.ValabilPanaLa != nil {
		if !dateBefore(*set.DataEliberarii, *set.ValabilPanaLa) {
			report.Errors = append(report.Errors, "expiry date must be after issue date")
		}
	}
}

// checkSeriesCounty warns when the series' issuing county has no fuzzy match
// in the extracted birth place.
func checkSeriesCounty(set *models.FieldSet, report *models.ValidationReport) {
	if set.Seria == nil || set.LocNastere == nil {
		return
	}
	county, known := countyBySeries[*set.Seria]
	if !known {
		return
	}

	if !fuzzyContains(*set.LocNastere, county) {
		report.Warnings = append(report.Warnings, fmt.Sprintf(
			"document series %s was issued in %s, which does not match birth place %s",
			*set.Seria, county, *set.LocNastere))
	}
}

// fuzzyContains reports whether the county name appears in the place string,
// allowing a small edit distance per token to absorb model transcription
// noise and diacritic drops.
func fuzzyContains(place, county string) bool {
	if strings.Contains(place, county) {
		return true
	}
	tokens := strings.FieldsFunc(place, func(r rune) bool {
		return r == ' ' || r == ',' || r == '.' || r == '-'
	})
	for _, token := range tokens {
		if levenshtein.Distance(token, county) <= countyMatchTolerance {
			return true
		}
	}
	return false
}

func dateBefore(earlier, later string) bool {
	d1, m1, y1, ok1 := ParseDate(earlier)
	d2, m2, y2, ok2 := ParseDate(later)
	if !ok1 || !ok2 {
		return false
	}
	if y1 != y2 {
		return y1 < y2
	}
	if m1 != m2 {
		return m1 < m2
	}
	return d1 < d2
}
