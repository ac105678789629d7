package fields

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	datePattern   = regexp.MustCompile(`^(\d{2})\.(\d{2})\.(\d{4})$`)
	seriesPattern = regexp.MustCompile(`^[A-Z]{1,3}$`)
	numberPattern = regexp.MustCompile(`^\d{6}$`)
	digitsPattern = regexp.MustCompile(`^\d{13}$`)
	spacesPattern = regexp.MustCompile(`\s+`)
)

// street markers that mark a plausible address when no digit is present
var addressMarkers = []string{
	"STR", "BD", "B-DUL", "CALEA", "ALEEA", "ȘOS", "SOS", "SPLAIUL",
	"SAT", "COM", "JUD", "MUN", "BL", "SC", "AP", "NR",
}

// Normalize canonicalizes a raw extracted value for the given field kind and
// reports whether the result is structurally valid. Invalid or unparseable
// input yields ok=false and the value must be treated as absent; values are
// never coerced to a guess. Normalization is idempotent for every kind.
func Normalize(k Kind, raw string) (string, bool) {
	switch k {
	case KindNume, KindLocNastere, KindEliberatDe:
		return normalizeText(raw)
	case KindCNP:
		return normalizeCNP(raw)
	case KindDataNasterii, KindDataEliberarii, KindValabilPanaLa:
		return normalizeDate(raw)
	case KindDomiciliu:
		return normalizeAddress(raw)
	case KindSeria:
		return normalizeSeries(raw)
	case KindNumar:
		return normalizeNumber(raw)
	default:
		return "", false
	}
}

// Validate reports whether an already-normalized value satisfies the field's
// structural rules.
func Validate(k Kind, value string) bool {
	normalized, ok := Normalize(k, value)
	return ok && normalized == value
}

// normalizeText uppercases, collapses whitespace and preserves the source
// alphabet's diacritics exactly.
func normalizeText(raw string) (string, bool) {
	collapsed := spacesPattern.ReplaceAllString(strings.TrimSpace(raw), " ")
	if collapsed == "" {
		return "", false
	}
	upper := strings.ToUpper(collapsed)
	hasLetter := false
	for _, r := range upper {
		if unicode.IsLetter(r) {
			hasLetter = true
			break
		}
	}
	if !hasLetter {
		return "", false
	}
	return upper, true
}

// normalizeCNP validates the 13-digit personal numeric code: first digit in
// {1..8} (century/sex marker), embedded month in [1,12] and day in [1,31].
func normalizeCNP(raw string) (string, bool) {
	cnp := strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
	if !digitsPattern.MatchString(cnp) {
		return "", false
	}
	first := cnp[0]
	if first < '1' || first > '8' {
		return "", false
	}
	month, _ := strconv.Atoi(cnp[3:5])
	day, _ := strconv.Atoi(cnp[5:7])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}
	return cnp, true
}

// normalizeDate accepts DD.MM.YYYY (tolerating - and / separators on input)
// and enforces per-month day counts including the Gregorian leap-year rule.
func normalizeDate(raw string) (string, bool) {
	date := strings.TrimSpace(raw)
	date = strings.ReplaceAll(date, "-", ".")
	date = strings.ReplaceAll(date, "/", ".")
	if _, _, _, ok := ParseDate(date); !ok {
		return "", false
	}
	return date, true
}

// ParseDate parses a DD.MM.YYYY string with full range validation
func ParseDate(date string) (day, month, year int, ok bool) {
	m := datePattern.FindStringSubmatch(date)
	if m == nil {
		return 0, 0, 0, false
	}
	day, _ = strconv.Atoi(m[1])
	month, _ = strconv.Atoi(m[2])
	year, _ = strconv.Atoi(m[3])

	if month < 1 || month > 12 || year < 1800 || year > 9999 {
		return 0, 0, 0, false
	}
	if day < 1 || day > daysInMonth(month, year) {
		return 0, 0, 0, false
	}
	return day, month, year, true
}

func daysInMonth(month, year int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if isLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 0
	}
}

func isLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// normalizeAddress requires at least one recognizable street marker or digit
func normalizeAddress(raw string) (string, bool) {
	upper, ok := normalizeText(raw)
	if !ok {
		return "", false
	}
	if strings.ContainsAny(upper, "0123456789") {
		return upper, true
	}
	for _, marker := range addressMarkers {
		if strings.Contains(upper, marker) {
			return upper, true
		}
	}
	return "", false
}

func normalizeSeries(raw string) (string, bool) {
	series := strings.ToUpper(strings.TrimSpace(raw))
	if !seriesPattern.MatchString(series) {
		return "", false
	}
	return series, true
}

func normalizeNumber(raw string) (string, bool) {
	number := strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
	if !numberPattern.MatchString(number) {
		return "", false
	}
	return number, true
}
