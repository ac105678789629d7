package repository

import (
	"context"

	"go-id-extractor/internal/cache"
	"go-id-extractor/pkg/models"
)

// cachedResultRepository implements ResultRepository over the bounded LRU cache
type cachedResultRepository struct {
	results *cache.ResultCache
}

// NewResultRepository creates a repository backed by the given cache
func NewResultRepository(results *cache.ResultCache) ResultRepository {
	return &cachedResultRepository{results: results}
}

func (r *cachedResultRepository) SaveResult(_ context.Context, key string, result *models.ExtractionResult) error {
	if r.results == nil {
		return ErrRepositoryUnavailable
	}
	r.results.Put(key, result)
	return nil
}

func (r *cachedResultRepository) GetResult(_ context.Context, key string) (*models.ExtractionResult, error) {
	if r.results == nil {
		return nil, ErrRepositoryUnavailable
	}
	if result, hit := r.results.Get(key); hit {
		return result, nil
	}
	return nil, ErrResultNotFound
}

func (r *cachedResultRepository) ResultKey(data []byte) string {
	return cache.Key(data)
}
