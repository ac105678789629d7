package factory

import (
	"fmt"

	"go-id-extractor/internal/config"
	"go-id-extractor/internal/storage"
	"go-id-extractor/internal/strategy"
)

// FetcherType represents the available document fetch backends
type FetcherType string

const (
	// HTTPFetcher for plain HTTP and HTTPS document URLs
	HTTPFetcher FetcherType = "http"
	// AzureFetcher for Azure blob storage URLs
	AzureFetcher FetcherType = "azure"
)

// StrategyType represents the available preprocessing strategies
type StrategyType string

const (
	// StandardStrategy always uses the default preprocessing profile
	StandardStrategy StrategyType = "standard"
	// DegradedStrategy always uses the aggressive preprocessing profile
	DegradedStrategy StrategyType = "degraded"
	// AdaptiveStrategy picks a profile from measured capture quality
	AdaptiveStrategy StrategyType = "adaptive"
)

// FetcherFactory creates document fetchers
type FetcherFactory interface {
	CreateFetcher(fetcherType FetcherType, cfg *config.Config) (storage.DocumentFetcher, error)
}

// StrategyFactory creates preprocessing strategies
type StrategyFactory interface {
	CreateStrategy(strategyType StrategyType) (strategy.ProcessingStrategy, error)
}

type fetcherFactory struct{}

// NewFetcherFactory creates a new fetcher factory
func NewFetcherFactory() FetcherFactory {
	return &fetcherFactory{}
}

// CreateFetcher creates a fetcher for the specified backend
func (f *fetcherFactory) CreateFetcher(fetcherType FetcherType, cfg *config.Config) (storage.DocumentFetcher, error) {
	switch fetcherType {
	case HTTPFetcher:
		return storage.NewHTTPDocumentFetcher(cfg.MaxUploadSize), nil
	case AzureFetcher:
		if !cfg.AzureEnabled() {
			return nil, fmt.Errorf("azure fetcher requires account credentials")
		}
		return storage.NewAzureDocumentFetcher(cfg.AzureAccount, cfg.AzureAccountKey, cfg.MaxUploadSize)
	default:
		return nil, fmt.Errorf("unsupported fetcher type: %s", fetcherType)
	}
}

type strategyFactory struct{}

// NewStrategyFactory creates a new strategy factory
func NewStrategyFactory() StrategyFactory {
	return &strategyFactory{}
}

// CreateStrategy creates a preprocessing strategy of the specified type
func (f *strategyFactory) CreateStrategy(strategyType StrategyType) (strategy.ProcessingStrategy, error) {
	switch strategyType {
	case StandardStrategy:
		return strategy.NewStandardDocumentStrategy(), nil
	case DegradedStrategy:
		return strategy.NewDegradedDocumentStrategy(), nil
	case AdaptiveStrategy:
		return strategy.NewAdaptiveStrategy(), nil
	default:
		return nil, fmt.Errorf("unsupported strategy type: %s", strategyType)
	}
}

// ComponentFactory combines all factories
type ComponentFactory struct {
	FetcherFactory  FetcherFactory
	StrategyFactory StrategyFactory
}

// NewComponentFactory creates a new component factory
func NewComponentFactory() *ComponentFactory {
	return &ComponentFactory{
		FetcherFactory:  NewFetcherFactory(),
		StrategyFactory: NewStrategyFactory(),
	}
}
