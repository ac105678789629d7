package container

import (
	"net/http"

	"go-id-extractor/internal/cache"
	"go-id-extractor/internal/config"
	"go-id-extractor/internal/extractor"
	"go-id-extractor/internal/factory"
	"go-id-extractor/internal/logger"
	"go-id-extractor/internal/observer"
	"go-id-extractor/internal/processor"
	"go-id-extractor/internal/repository"
	"go-id-extractor/internal/service"
	"go-id-extractor/internal/strategy"
	"go-id-extractor/internal/transport"
	"go-id-extractor/pkg/validation"
)

// Container wires the application dependencies together
type Container struct {
	Config  *config.Config
	Service service.ExtractionService
	Metrics observer.Observer
	Handler http.Handler
}

// New constructs the full dependency graph from configuration
func New(cfg *config.Config) (*Container, error) {
	factories := factory.NewComponentFactory()

	proc := processor.NewProcessor(cfg.MaxUploadSize)
	client := extractor.NewClient(cfg.VLM)

	fetcherType := factory.HTTPFetcher
	if cfg.AzureEnabled() {
		logger.WithField("account", cfg.AzureAccount).Info("using Azure blob document fetcher")
		fetcherType = factory.AzureFetcher
	}
	fetcher, err := factories.FetcherFactory.CreateFetcher(fetcherType, cfg)
	if err != nil {
		return nil, err
	}
	documents := repository.NewDocumentRepository(fetcher)

	resultCache, err := cache.New(cfg.CacheCapacity)
	if err != nil {
		return nil, err
	}
	results := repository.NewResultRepository(resultCache)

	profileStrategy, err := factories.StrategyFactory.CreateStrategy(factory.AdaptiveStrategy)
	if err != nil {
		return nil, err
	}
	profiles := strategy.NewProfileContext(profileStrategy)

	metrics := observer.NewMetricsObserver()
	events := observer.NewEventPublisher()
	events.Subscribe(observer.NewLoggingObserver(logger.Logger))
	events.Subscribe(metrics)

	svc := service.NewExtractionService(
		proc,
		client,
		documents,
		results,
		profiles,
		validation.NewQualityValidator(),
		events,
	)
	handler := transport.NewHandler(svc, cfg)

	return &Container{
		Config:  cfg,
		Service: svc,
		Metrics: metrics,
		Handler: handler,
	}, nil
}
