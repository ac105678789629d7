package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-id-extractor/pkg/models"
)

func TestCrossValidate_ConsistentSet(t *testing.T) {
	report := CrossValidate(fullFieldSet())

	assert.True(t, report.IsValid)
	assert.Empty(t, report.Errors)
	assert.Empty(t, report.Warnings)
}

func TestCrossValidate_CNPBirthDateMismatch(t *testing.T) {
	set := fullFieldSet()
	set.DataNasterii = strPtr("16.03.1985")

	report := CrossValidate(set)

	require.Len(t, report.Errors, 1)
	assert.False(t, report.IsValid)
	assert.Contains(t, report.Errors[0], "does not match personal numeric code")
	assert.Contains(t, report.Errors[0], "15.03.1985")
}

func TestCrossValidate_ResidentMarkerWarnsOnly(t *testing.T) {
	set := fullFieldSet()
	set.CNP = strPtr("7850315123456")

	report := CrossValidate(set)

	assert.True(t, report.IsValid)
	require.NotEmpty(t, report.Warnings)
	assert.Contains(t, report.Warnings[0], "resident marker")
}

func TestCrossValidate_DateOrdering(t *testing.T) {
	set := fullFieldSet()
	set.DataEliberarii = strPtr("15.03.1985") // same day as birth, not after

	report := CrossValidate(set)
	assert.Contains(t, report.Errors, "issue date must be after birth date")

	set = fullFieldSet()
	set.ValabilPanaLa = strPtr("20.06.2015") // same day as issue

	report = CrossValidate(set)
	assert.Contains(t, report.Errors, "expiry date must be after issue date")
}

func TestCrossValidate_SeriesCountyMismatch(t *testing.T) {
	set := fullFieldSet()
	set.LocNastere = strPtr("MUN. TIMIȘOARA JUD. TIMIȘ")

	report := CrossValidate(set)

	// Advisory only: series follows domicile, not birthplace
	assert.True(t, report.IsValid)
	require.NotEmpty(t, report.Warnings)
	assert.Contains(t, report.Warnings[0], "CLUJ")
}

func TestCrossValidate_SeriesCountyFuzzyMatch(t *testing.T) {
	set := fullFieldSet()
	// Diacritics dropped by transcription; edit distance stays within bounds
	set.Seria = strPtr("BV")
	set.LocNastere = strPtr("MUN. BRASOV JUD. BRASOV")

	report := CrossValidate(set)
	assert.Empty(t, report.Warnings)
}

func TestCrossValidate_UnknownSeriesIgnored(t *testing.T) {
	set := fullFieldSet()
	set.Seria = strPtr("ZZ")

	report := CrossValidate(set)
	assert.Empty(t, report.Warnings)
}

func TestCrossValidate_MissingFieldsSkipChecks(t *testing.T) {
	report := CrossValidate(&models.FieldSet{})

	assert.True(t, report.IsValid)
	assert.Empty(t, report.Errors)
	assert.Empty(t, report.Warnings)
}

func TestAssessmentScore(t *testing.T) {
	full := AssessmentScore(fullFieldSet())
	assert.InDelta(t, 0.9, full, 1e-9)

	// One cross-field error costs 0.15
	mismatched := fullFieldSet()
	mismatched.DataNasterii = strPtr("16.03.1985")
	assert.InDelta(t, 0.75, AssessmentScore(mismatched), 1e-9)

	// Never negative
	assert.Equal(t, 0.0, AssessmentScore(&models.FieldSet{}))
}

func TestDateBefore(t *testing.T) {
	assert.True(t, dateBefore("15.03.1985", "20.06.2015"))
	assert.True(t, dateBefore("15.03.1985", "16.03.1985"))
	assert.True(t, dateBefore("15.03.1985", "15.04.1985"))
	assert.False(t, dateBefore("15.03.1985", "15.03.1985"))
	assert.False(t, dateBefore("20.06.2015", "15.03.1985"))
	assert.False(t, dateBefore("garbage", "15.03.1985"))
}
