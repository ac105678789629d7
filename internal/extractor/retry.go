package extractor

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	apperrors "go-id-extractor/internal/errors"
	"go-id-extractor/internal/fields"
	"go-id-extractor/internal/logger"
	"go-id-extractor/pkg/models"
)

// A result below this assessment score triggers an escalated retry
const acceptThreshold = 0.7

// Outcome is the terminal state of the retry state machine. Cancellation is a
// distinct variant, not an error classification.
type Outcome int

const (
	OutcomeAccepted Outcome = iota
	OutcomeExhausted
	OutcomeCancelled
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeExhausted:
		return "exhausted"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "failed"
	}
}

// retryState enumerates the machine's control states
type retryState int

const (
	stateAttempt retryState = iota
	stateEvaluate
	stateAccept
	stateEscalate
	stateGiveUp
)

// AttemptFunc performs one extraction attempt with the given options
type AttemptFunc func(ctx context.Context, opts ExtractionOptions) (*models.FieldSet, error)

// Escalator drives the Attempt → Evaluate → {Accept | Escalate&Retry |
// GiveUp} state machine. Attempts are strictly sequential; the only state
// carried between them is the attempt counter and the best-scoring result
// seen so far.
type Escalator struct {
	opts        ExtractionOptions
	maxAttempts int

	attempt   int
	best      *models.FieldSet
	bestScore float64
	lastErr   error
}

// NewEscalator creates a retry driver. maxAttempts counts additional attempts
// after the first; a value of 0 means a single attempt.
func NewEscalator(opts ExtractionOptions) *Escalator {
	maxAttempts := opts.MaxAttempts
	if maxAttempts < 0 {
		maxAttempts = 0
	}
	return &Escalator{opts: opts, maxAttempts: maxAttempts}
}

// Attempts returns how many attempts were actually made
func (e *Escalator) Attempts() int {
	return e.attempt
}

// Run executes the state machine until a terminal state is reached. On
// OutcomeAccepted and OutcomeExhausted the best field set seen is returned;
// on OutcomeCancelled and OutcomeFailed no result is produced.
func (e *Escalator) Run(ctx context.Context, attempt AttemptFunc) (*models.FieldSet, Outcome, error) {
	state := stateAttempt
	var current *models.FieldSet
	var currentScore float64

	for {
		switch state {
		case stateAttempt:
			e.attempt++
			result, err := attempt(ctx, e.opts)
			if err != nil {
				if errors.Is(err, apperrors.ErrCancelled) || errors.Is(err, context.Canceled) {
					return nil, OutcomeCancelled, err
				}
				e.lastErr = err
				logger.WithError(err).WithFields(logrus.Fields{
					"attempt": e.attempt,
				}).Warn("extraction attempt failed")
				state = stateEscalate
				continue
			}
			current = result
			state = stateEvaluate

		case stateEvaluate:
			currentScore = fields.AssessmentScore(current)
			if e.best == nil || currentScore > e.bestScore {
				e.best = current
				e.bestScore = currentScore
			}
			logger.WithFields(logrus.Fields{
				"attempt": e.attempt,
				"score":   currentScore,
			}).Debug("extraction attempt evaluated")

			if currentScore >= acceptThreshold {
				state = stateAccept
			} else {
				state = stateEscalate
			}

		case stateAccept:
			return e.best, OutcomeAccepted, nil

		case stateEscalate:
			if e.attempt > e.maxAttempts {
				state = stateGiveUp
				continue
			}
			// Subsequent attempts assume poor input quality so the model
			// reports uncertain fields conservatively
			e.opts = e.opts.Escalated()
			state = stateAttempt

		case stateGiveUp:
			if e.best != nil {
				return e.best, OutcomeExhausted, nil
			}
			if e.lastErr != nil {
				return nil, OutcomeFailed, e.lastErr
			}
			return nil, OutcomeFailed, apperrors.NewNetworkError("extraction produced no result", nil)
		}
	}
}
