package repository

import (
	"context"
	"fmt"

	"go-id-extractor/internal/storage"
	"go-id-extractor/pkg/validation"
)

// remoteDocumentRepository implements DocumentRepository over a fetcher
type remoteDocumentRepository struct {
	fetcher   storage.DocumentFetcher
	validator *validation.URLValidator
}

// NewDocumentRepository creates a repository backed by the given fetcher
func NewDocumentRepository(fetcher storage.DocumentFetcher) DocumentRepository {
	return &remoteDocumentRepository{
		fetcher:   fetcher,
		validator: validation.NewURLValidator(),
	}
}

// FetchDocument validates the URL first, then retrieves the raw bytes
func (r *remoteDocumentRepository) FetchDocument(ctx context.Context, documentURL string) ([]byte, string, error) {
	if err := r.ValidateDocumentURL(documentURL); err != nil {
		return nil, "", err
	}
	data, contentType, err := r.fetcher.Fetch(ctx, documentURL)
	if err != nil {
		return nil, "", err
	}
	return data, contentType, nil
}

// ValidateDocumentURL validates if the provided URL is acceptable
func (r *remoteDocumentRepository) ValidateDocumentURL(documentURL string) error {
	if err := r.validator.ValidateDocumentURL(documentURL); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocumentURL, err)
	}
	return nil
}
