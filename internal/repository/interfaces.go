package repository

import (
	"context"

	"go-id-extractor/pkg/models"
)

// DocumentRepository defines the interface for remote document access
type DocumentRepository interface {
	// FetchDocument retrieves the raw document bytes and content type from a URL
	FetchDocument(ctx context.Context, documentURL string) ([]byte, string, error)

	// ValidateDocumentURL validates if the provided URL is acceptable
	ValidateDocumentURL(documentURL string) error
}

// ResultRepository defines the interface for extraction result persistence.
// Keys are derived from document content so identical uploads share a result.
type ResultRepository interface {
	// SaveResult stores an extraction result under a content key
	SaveResult(ctx context.Context, key string, result *models.ExtractionResult) error

	// GetResult retrieves a stored extraction result, or ErrResultNotFound
	GetResult(ctx context.Context, key string) (*models.ExtractionResult, error)

	// ResultKey derives the content key for a raw document
	ResultKey(data []byte) string
}
