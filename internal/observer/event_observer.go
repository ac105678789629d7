package observer

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// PipelineEvent represents one document pipeline event
type PipelineEvent struct {
	EventType  EventType              `json:"event_type"`
	Timestamp  time.Time              `json:"timestamp"`
	DocumentID string                 `json:"document_id,omitempty"`
	Source     string                 `json:"source,omitempty"`
	Duration   time.Duration          `json:"duration"`
	Success    bool                   `json:"success"`
	ErrorMsg   string                 `json:"error_message,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// EventType represents the type of pipeline event
type EventType string

const (
	// ExtractionStarted when a document extraction begins
	ExtractionStarted EventType = "extraction_started"
	// ExtractionCompleted when extraction finishes successfully
	ExtractionCompleted EventType = "extraction_completed"
	// ExtractionFailed when extraction fails
	ExtractionFailed EventType = "extraction_failed"
	// ExtractionEscalated when a retry ran with the conservative prompt
	ExtractionEscalated EventType = "extraction_escalated"
	// DocumentFetched when a remote document is successfully fetched
	DocumentFetched EventType = "document_fetched"
	// DocumentFetchFailed when a remote document fetch fails
	DocumentFetchFailed EventType = "document_fetch_failed"
)

// Observer defines the interface for event observers
type Observer interface {
	OnEvent(ctx context.Context, event PipelineEvent)
	GetObserverName() string
}

// Subject defines the interface for event publishers
type Subject interface {
	Subscribe(observer Observer)
	Unsubscribe(observer Observer)
	NotifyObservers(ctx context.Context, event PipelineEvent)
}

// LoggingObserver logs pipeline events
type LoggingObserver struct {
	logger *logrus.Logger
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(logger *logrus.Logger) Observer {
	return &LoggingObserver{
		logger: logger,
	}
}

// OnEvent handles pipeline events by logging them
func (o *LoggingObserver) OnEvent(ctx context.Context, event PipelineEvent) {
	fields := logrus.Fields{
		"event_type":  event.EventType,
		"document_id": event.DocumentID,
		"duration":    event.Duration,
		"success":     event.Success,
	}

	if event.Source != "" {
		fields["source"] = event.Source
	}
	if event.ErrorMsg != "" {
		fields["error"] = event.ErrorMsg
	}
	for k, v := range event.Metadata {
		fields[k] = v
	}

	switch event.EventType {
	case ExtractionStarted:
		o.logger.WithFields(fields).Info("Document extraction started")
	case ExtractionCompleted:
		o.logger.WithFields(fields).Info("Document extraction completed")
	case ExtractionFailed:
		o.logger.WithFields(fields).Error("Document extraction failed")
	case ExtractionEscalated:
		o.logger.WithFields(fields).Warn("Extraction escalated to conservative retry")
	case DocumentFetched:
		o.logger.WithFields(fields).Debug("Document fetched successfully")
	case DocumentFetchFailed:
		o.logger.WithFields(fields).Error("Document fetch failed")
	default:
		o.logger.WithFields(fields).Info("Pipeline event occurred")
	}
}

// GetObserverName returns the observer name
func (o *LoggingObserver) GetObserverName() string {
	return "logging_observer"
}

// MetricsObserver collects metrics from pipeline events
type MetricsObserver struct {
	mu               sync.RWMutex
	totalExtractions int64
	completed        int64
	failed           int64
	escalated        int64
	fetchFailures    int64
	totalElapsed     time.Duration
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() Observer {
	return &MetricsObserver{}
}

// OnEvent handles pipeline events by collecting metrics
func (o *MetricsObserver) OnEvent(ctx context.Context, event PipelineEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch event.EventType {
	case ExtractionStarted:
		o.totalExtractions++
	case ExtractionCompleted:
		o.completed++
		o.totalElapsed += event.Duration
	case ExtractionFailed:
		o.failed++
	case ExtractionEscalated:
		o.escalated++
	case DocumentFetchFailed:
		o.fetchFailures++
	}
}

// GetObserverName returns the observer name
func (o *MetricsObserver) GetObserverName() string {
	return "metrics_observer"
}

// GetMetrics returns current metrics
func (o *MetricsObserver) GetMetrics() map[string]interface{} {
	o.mu.RLock()
	defer o.mu.RUnlock()

	avgElapsed := time.Duration(0)
	if o.completed > 0 {
		avgElapsed = o.totalElapsed / time.Duration(o.completed)
	}

	return map[string]interface{}{
		"total_extractions":     o.totalExtractions,
		"completed_extractions": o.completed,
		"failed_extractions":    o.failed,
		"escalated_extractions": o.escalated,
		"fetch_failures":        o.fetchFailures,
		"avg_elapsed":           avgElapsed,
	}
}

// EventPublisher implements the Subject interface
type EventPublisher struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher() Subject {
	return &EventPublisher{
		observers: make([]Observer, 0),
	}
}

// Subscribe adds an observer
func (p *EventPublisher) Subscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, observer)
}

// Unsubscribe removes an observer
func (p *EventPublisher) Unsubscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, obs := range p.observers {
		if obs.GetObserverName() == observer.GetObserverName() {
			p.observers = append(p.observers[:i], p.observers[i+1:]...)
			break
		}
	}
}

// NotifyObservers notifies all observers of an event
func (p *EventPublisher) NotifyObservers(ctx context.Context, event PipelineEvent) {
	p.mu.RLock()
	observers := make([]Observer, len(p.observers))
	copy(observers, p.observers)
	p.mu.RUnlock()

	// Notify observers concurrently
	for _, observer := range observers {
		go func(obs Observer) {
			defer func() {
				if r := recover(); r != nil {
					logrus.WithField("observer", obs.GetObserverName()).
						WithField("panic", r).
						Error("Observer panicked while handling event")
				}
			}()
			obs.OnEvent(ctx, event)
		}(observer)
	}
}
