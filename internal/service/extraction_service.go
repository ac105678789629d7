package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"go-id-extractor/internal/extractor"
	"go-id-extractor/internal/fields"
	"go-id-extractor/internal/logger"
	"go-id-extractor/internal/observer"
	"go-id-extractor/internal/processor"
	"go-id-extractor/internal/repository"
	"go-id-extractor/internal/strategy"
	"go-id-extractor/pkg/models"
	"go-id-extractor/pkg/validation"
)

// ExtractionService defines the document-processing surface used by transport
type ExtractionService interface {
	// ProcessDocument runs the image pipeline only
	ProcessDocument(ctx context.Context, data []byte, declaredMIME, filename string, opts processor.ProcessingOptions) (*models.ProcessingResult, error)

	// ExtractDocument runs the full pipeline plus model extraction
	ExtractDocument(ctx context.Context, data []byte, declaredMIME, filename string, opts extractor.ExtractionOptions) (*models.ExtractionResult, error)

	// ExtractFromURL fetches the document blob first, then extracts
	ExtractFromURL(ctx context.Context, documentURL string, opts extractor.ExtractionOptions) (*models.ExtractionResult, error)

	// Health probes the external model service
	Health(ctx context.Context) (extractor.ServiceStatus, string)
}

type extractionService struct {
	processor *processor.Processor
	client    *extractor.Client
	documents repository.DocumentRepository
	results   repository.ResultRepository
	profiles  *strategy.ProfileContext
	gate      *validation.QualityValidator
	events    observer.Subject
}

// NewExtractionService wires the pipeline, the model client, the document
// and result repositories, the preprocessing strategy, the capture quality
// gate and the event publisher.
func NewExtractionService(
	proc *processor.Processor,
	client *extractor.Client,
	documents repository.DocumentRepository,
	results repository.ResultRepository,
	profiles *strategy.ProfileContext,
	gate *validation.QualityValidator,
	events observer.Subject,
) ExtractionService {
	return &extractionService{
		processor: proc,
		client:    client,
		documents: documents,
		results:   results,
		profiles:  profiles,
		gate:      gate,
		events:    events,
	}
}

func (s *extractionService) ProcessDocument(ctx context.Context, data []byte, declaredMIME, filename string, opts processor.ProcessingOptions) (*models.ProcessingResult, error) {
	return s.processor.Process(ctx, data, declaredMIME, filename, opts)
}

func (s *extractionService) ExtractDocument(ctx context.Context, data []byte, declaredMIME, filename string, opts extractor.ExtractionOptions) (*models.ExtractionResult, error) {
	key := s.results.ResultKey(data)
	if cached, err := s.results.GetResult(ctx, key); err == nil {
		logger.WithField("cache_key", key[:12]).Debug("extraction cache hit")
		return cached, nil
	}

	start := time.Now()
	s.publish(ctx, observer.PipelineEvent{
		EventType: observer.ExtractionStarted,
		Timestamp: start,
		Source:    filename,
		Success:   true,
	})

	processed, err := s.processImage(ctx, data, declaredMIME, filename)
	if err != nil {
		s.publishFailure(ctx, filename, start, err)
		return nil, err
	}

	issues := s.gate.Validate(processed.Quality, processed.MetadataBefore)
	warnings := s.gate.Messages(issues)

	// Seed the quality hint from the measured capture quality so the first
	// attempt already matches the input
	if opts.QualityHint == extractor.HintGood && s.gate.HasCriticalIssues(issues) {
		opts.QualityHint = extractor.HintFair
	}

	escalator := extractor.NewEscalator(opts)
	set, outcome, err := escalator.Run(ctx, func(ctx context.Context, attemptOpts extractor.ExtractionOptions) (*models.FieldSet, error) {
		raw, err := s.client.Extract(ctx, processed.ProcessedImage, attemptOpts)
		if err != nil {
			return nil, err
		}
		return extractor.ParseFieldSet(raw)
	})

	switch outcome {
	case extractor.OutcomeCancelled, extractor.OutcomeFailed:
		s.publishFailure(ctx, filename, start, err)
		return nil, err
	}

	if escalator.Attempts() > 1 {
		s.publish(ctx, observer.PipelineEvent{
			EventType:  observer.ExtractionEscalated,
			Timestamp:  time.Now(),
			Source:     filename,
			DocumentID: processed.ID,
			Success:    true,
			Metadata:   map[string]interface{}{"attempts": escalator.Attempts()},
		})
	}

	perField, overall := fields.ScoreSet(set)
	report := fields.CrossValidate(set)

	warnings = append(warnings, report.Warnings...)
	if outcome == extractor.OutcomeExhausted {
		warnings = append(warnings, "retry budget exhausted; returning best attempt")
	}

	result := &models.ExtractionResult{
		ID:              uuid.NewString(),
		Fields:          *set,
		FieldConfidence: perField,
		Overall:         overall,
		Validation:      report,
		Metadata: models.ExtractionMetadata{
			ElapsedTime:  time.Since(start),
			Model:        s.client.Model(),
			ImageQuality: processed.Quality.OverallScore,
			Attempts:     escalator.Attempts(),
			Warnings:     warnings,
		},
	}

	if err := s.results.SaveResult(ctx, key, result); err != nil {
		logger.WithError(err).Warn("failed to cache extraction result")
	}

	s.publish(ctx, observer.PipelineEvent{
		EventType:  observer.ExtractionCompleted,
		Timestamp:  time.Now(),
		DocumentID: result.ID,
		Source:     filename,
		Duration:   result.Metadata.ElapsedTime,
		Success:    true,
		Metadata:   map[string]interface{}{"confidence": overall.Score},
	})

	logger.WithFields(logrus.Fields{
		"id":          result.ID,
		"outcome":     outcome.String(),
		"attempts":    escalator.Attempts(),
		"confidence":  overall.Score,
		"duration_ms": result.Metadata.ElapsedTime.Milliseconds(),
	}).Info("document extraction completed")

	return result, nil
}

// processImage runs the pipeline with the strategy-selected profile. When the
// measured quality turns out degraded and the strategy prescribes a heavier
// profile, the original bytes are reprocessed once with that profile.
func (s *extractionService) processImage(ctx context.Context, data []byte, declaredMIME, filename string) (*models.ProcessingResult, error) {
	initial := s.profiles.SelectOptions(models.QualityMetrics{})
	processed, err := s.processor.Process(ctx, data, declaredMIME, filename, initial)
	if err != nil {
		return nil, err
	}

	selected := s.profiles.SelectOptions(processed.Quality)
	if selected == initial {
		return processed, nil
	}

	logger.WithFields(logrus.Fields{
		"strategy": s.profiles.GetCurrentStrategy(),
		"quality":  processed.Quality.OverallScore,
	}).Info("reprocessing degraded capture with heavier profile")

	reprocessed, err := s.processor.Process(ctx, data, declaredMIME, filename, selected)
	if err != nil {
		// Keep the first pass if the heavier profile fails
		return processed, nil
	}
	return reprocessed, nil
}

func (s *extractionService) ExtractFromURL(ctx context.Context, documentURL string, opts extractor.ExtractionOptions) (*models.ExtractionResult, error) {
	fetchStart := time.Now()
	data, contentType, err := s.documents.FetchDocument(ctx, documentURL)
	if err != nil {
		s.publish(ctx, observer.PipelineEvent{
			EventType: observer.DocumentFetchFailed,
			Timestamp: time.Now(),
			Source:    documentURL,
			Duration:  time.Since(fetchStart),
			ErrorMsg:  err.Error(),
		})
		return nil, err
	}
	s.publish(ctx, observer.PipelineEvent{
		EventType: observer.DocumentFetched,
		Timestamp: time.Now(),
		Source:    documentURL,
		Duration:  time.Since(fetchStart),
		Success:   true,
		Metadata:  map[string]interface{}{"size_bytes": len(data)},
	})
	return s.ExtractDocument(ctx, data, contentType, documentURL, opts)
}

func (s *extractionService) Health(ctx context.Context) (extractor.ServiceStatus, string) {
	return s.client.Health(ctx)
}

func (s *extractionService) publish(ctx context.Context, event observer.PipelineEvent) {
	if s.events != nil {
		s.events.NotifyObservers(ctx, event)
	}
}

func (s *extractionService) publishFailure(ctx context.Context, source string, start time.Time, err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	s.publish(ctx, observer.PipelineEvent{
		EventType: observer.ExtractionFailed,
		Timestamp: time.Now(),
		Source:    source,
		Duration:  time.Since(start),
		ErrorMsg:  msg,
	})
}
