package extractor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "go-id-extractor/internal/errors"
	"go-id-extractor/pkg/models"
)

func strPtr(s string) *string { return &s }

// strongFieldSet scores above the acceptance threshold
func strongFieldSet() *models.FieldSet {
	return &models.FieldSet{
		Nume:           strPtr("POPESCU ION"),
		CNP:            strPtr("1850315123456"),
		DataNasterii:   strPtr("15.03.1985"),
		LocNastere:     strPtr("MUN. CLUJ-NAPOCA JUD. CLUJ"),
		Domiciliu:      strPtr("STR. LIBERTĂȚII NR. 5"),
		Seria:          strPtr("CJ"),
		Numar:          strPtr("123456"),
		DataEliberarii: strPtr("20.06.2015"),
		EliberatDe:     strPtr("SPCLEP CLUJ"),
		ValabilPanaLa:  strPtr("15.03.2025"),
	}
}

// weakFieldSet scores below the acceptance threshold
func weakFieldSet() *models.FieldSet {
	return &models.FieldSet{Seria: strPtr("CJ")}
}

func TestEscalator_AcceptsFirstGoodResult(t *testing.T) {
	escalator := NewEscalator(DefaultExtractionOptions())

	set, outcome, err := escalator.Run(context.Background(), func(_ context.Context, _ ExtractionOptions) (*models.FieldSet, error) {
		return strongFieldSet(), nil
	})

	require.NoError(t, err)
	assert.Equal(t, OutcomeAccepted, outcome)
	assert.NotNil(t, set)
	assert.Equal(t, 1, escalator.Attempts())
}

func TestEscalator_EscalatesOnWeakResult(t *testing.T) {
	escalator := NewEscalator(DefaultExtractionOptions())

	var hints []QualityHint
	set, outcome, err := escalator.Run(context.Background(), func(_ context.Context, opts ExtractionOptions) (*models.FieldSet, error) {
		hints = append(hints, opts.QualityHint)
		if len(hints) == 1 {
			return weakFieldSet(), nil
		}
		return strongFieldSet(), nil
	})

	require.NoError(t, err)
	assert.Equal(t, OutcomeAccepted, outcome)
	assert.Equal(t, 2, escalator.Attempts())
	require.Len(t, hints, 2)
	assert.Equal(t, HintGood, hints[0])
	assert.Equal(t, HintPoor, hints[1], "escalated attempt must assume poor input")

	// The accepted result is the strong one
	assert.NotNil(t, set.CNP)
}

func TestEscalator_ExhaustedReturnsBest(t *testing.T) {
	opts := DefaultExtractionOptions()
	opts.MaxAttempts = 2
	escalator := NewEscalator(opts)

	better := &models.FieldSet{Nume: strPtr("POPESCU ION"), CNP: strPtr("1850315123456")}
	calls := 0
	set, outcome, err := escalator.Run(context.Background(), func(_ context.Context, _ ExtractionOptions) (*models.FieldSet, error) {
		calls++
		if calls == 2 {
			return better, nil
		}
		return weakFieldSet(), nil
	})

	require.NoError(t, err)
	assert.Equal(t, OutcomeExhausted, outcome)
	assert.Equal(t, 3, escalator.Attempts())
	require.NotNil(t, set)
	assert.NotNil(t, set.CNP, "best-scoring attempt must be kept")
}

func TestEscalator_AllAttemptsFail(t *testing.T) {
	opts := DefaultExtractionOptions()
	opts.MaxAttempts = 1
	escalator := NewEscalator(opts)

	boom := apperrors.NewNetworkError("model unreachable", nil)
	set, outcome, err := escalator.Run(context.Background(), func(_ context.Context, _ ExtractionOptions) (*models.FieldSet, error) {
		return nil, boom
	})

	assert.Nil(t, set)
	assert.Equal(t, OutcomeFailed, outcome)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, escalator.Attempts())
}

func TestEscalator_ErrorThenSuccess(t *testing.T) {
	escalator := NewEscalator(DefaultExtractionOptions())

	calls := 0
	set, outcome, err := escalator.Run(context.Background(), func(_ context.Context, _ ExtractionOptions) (*models.FieldSet, error) {
		calls++
		if calls == 1 {
			return nil, apperrors.NewNetworkError("transient failure", nil)
		}
		return strongFieldSet(), nil
	})

	require.NoError(t, err)
	assert.Equal(t, OutcomeAccepted, outcome)
	assert.NotNil(t, set)
}

func TestEscalator_CancellationStopsImmediately(t *testing.T) {
	opts := DefaultExtractionOptions()
	opts.MaxAttempts = 5
	escalator := NewEscalator(opts)

	calls := 0
	set, outcome, err := escalator.Run(context.Background(), func(_ context.Context, _ ExtractionOptions) (*models.FieldSet, error) {
		calls++
		return nil, apperrors.ErrCancelled
	})

	assert.Nil(t, set)
	assert.Equal(t, OutcomeCancelled, outcome)
	assert.ErrorIs(t, err, apperrors.ErrCancelled)
	assert.Equal(t, 1, calls, "no retry after cancellation")
}

func TestEscalator_ContextCanceledTreatedAsCancellation(t *testing.T) {
	escalator := NewEscalator(DefaultExtractionOptions())

	_, outcome, err := escalator.Run(context.Background(), func(_ context.Context, _ ExtractionOptions) (*models.FieldSet, error) {
		return nil, context.Canceled
	})

	assert.Equal(t, OutcomeCancelled, outcome)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestEscalator_ZeroRetriesSingleAttempt(t *testing.T) {
	opts := DefaultExtractionOptions()
	opts.MaxAttempts = 0
	escalator := NewEscalator(opts)

	_, outcome, _ := escalator.Run(context.Background(), func(_ context.Context, _ ExtractionOptions) (*models.FieldSet, error) {
		return weakFieldSet(), nil
	})

	assert.Equal(t, OutcomeExhausted, outcome)
	assert.Equal(t, 1, escalator.Attempts())
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "accepted", OutcomeAccepted.String())
	assert.Equal(t, "exhausted", OutcomeExhausted.String())
	assert.Equal(t, "cancelled", OutcomeCancelled.String())
	assert.Equal(t, "failed", OutcomeFailed.String())
}
