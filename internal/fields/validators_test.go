package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_Name(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"simple name", "POPESCU ION", "POPESCU ION", true},
		{"lowercase input", "popescu ion", "POPESCU ION", true},
		{"diacritics preserved", "ȘTEFĂNESCU MĂDĂLINA", "ȘTEFĂNESCU MĂDĂLINA", true},
		{"whitespace collapsed", "  POPESCU   ION  ", "POPESCU ION", true},
		{"empty", "", "", false},
		{"only punctuation", "---", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(KindNume, tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_CNP(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"valid male 1900s", "1850315123456", true},
		{"valid female 2000s", "6040229123456", true},
		{"valid resident marker", "7850315123456", true},
		{"spaces stripped", "1 850315 123456", true},
		{"first digit zero", "0850315123456", false},
		{"first digit nine", "9850315123456", false},
		{"too short", "185031512345", false},
		{"too long", "18503151234567", false},
		{"letters", "185O315123456", false},
		{"month thirteen", "1851315123456", false},
		{"day zero", "1850300123456", false},
		{"day thirty-two", "1850332123456", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Normalize(KindCNP, tt.input)
			assert.Equal(t, tt.ok, ok, "input %q", tt.input)
		})
	}
}

func TestNormalize_Date(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"canonical", "15.03.1985", "15.03.1985", true},
		{"dash separators", "15-03-1985", "15.03.1985", true},
		{"slash separators", "15/03/1985", "15.03.1985", true},
		{"leap day 2000", "29.02.2000", "29.02.2000", true},
		{"leap day 2400", "29.02.2400", "29.02.2400", true},
		{"not a leap year", "29.02.2001", "", false},
		{"century non-leap", "29.02.1900", "", false},
		{"thirty-first of april", "31.04.2020", "", false},
		{"month zero", "15.00.1985", "", false},
		{"year out of range", "15.03.1750", "", false},
		{"single digit day", "5.03.1985", "", false},
		{"garbage", "tomorrow", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(KindDataNasterii, tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_Address(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"with number", "STR. LIBERTĂȚII NR. 5", true},
		{"marker only", "SAT VALEA MARE COM. BRADU", true},
		{"digits without marker", "LIBERTATII 5", true},
		{"no marker no digit", "UNDEVA DEPARTE", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Normalize(KindDomiciliu, tt.input)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestNormalize_SeriesAndNumber(t *testing.T) {
	got, ok := Normalize(KindSeria, " ab ")
	require.True(t, ok)
	assert.Equal(t, "AB", got)

	_, ok = Normalize(KindSeria, "ABCD")
	assert.False(t, ok)

	_, ok = Normalize(KindSeria, "A1")
	assert.False(t, ok)

	got, ok = Normalize(KindNumar, "123 456")
	require.True(t, ok)
	assert.Equal(t, "123456", got)

	_, ok = Normalize(KindNumar, "12345")
	assert.False(t, ok)

	_, ok = Normalize(KindNumar, "1234567")
	assert.False(t, ok)
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := map[Kind]string{
		KindNume:         "ștefănescu ion",
		KindCNP:          "1 850315 123456",
		KindDataNasterii: "15-03-1985",
		KindDomiciliu:    "str. libertății nr. 5",
		KindSeria:        " ab ",
		KindNumar:        "123 456",
	}

	for k, raw := range inputs {
		first, ok := Normalize(k, raw)
		require.True(t, ok, "kind %s input %q", k.Name(), raw)

		second, ok := Normalize(k, first)
		require.True(t, ok, "kind %s renormalize %q", k.Name(), first)
		assert.Equal(t, first, second, "kind %s not idempotent", k.Name())
	}
}

func TestValidate(t *testing.T) {
	assert.True(t, Validate(KindCNP, "1850315123456"))
	assert.False(t, Validate(KindCNP, "9850315123456"))

	assert.True(t, Validate(KindDataNasterii, "15.03.1985"))
	// Uncanonical separators are normalizable but not already canonical
	assert.False(t, Validate(KindDataNasterii, "15-03-1985"))

	assert.True(t, Validate(KindNume, "POPESCU ION"))
	assert.False(t, Validate(KindNume, "popescu ion"))
}

func TestParseDate(t *testing.T) {
	day, month, year, ok := ParseDate("29.02.2000")
	require.True(t, ok)
	assert.Equal(t, 29, day)
	assert.Equal(t, 2, month)
	assert.Equal(t, 2000, year)

	day, month, year, ok = ParseDate("29.02.2400")
	require.True(t, ok)
	assert.Equal(t, 29, day)
	assert.Equal(t, 2, month)
	assert.Equal(t, 2400, year)

	_, _, _, ok = ParseDate("31.11.2020")
	assert.False(t, ok)

	_, _, _, ok = ParseDate("29.02.2200")
	assert.False(t, ok)
}
