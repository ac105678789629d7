package cache

import (
	"crypto/sha256"
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru/v2"

	"go-id-extractor/pkg/models"
)

// ResultCache memoizes extraction results keyed by file content hash. It is
// an explicit object with a fixed maximum entry count and LRU eviction on
// overflow; it is owned by the service that creates it, never ambient state.
type ResultCache struct {
	entries *lru.Cache[string, *models.ExtractionResult]
}

// New creates a cache holding at most capacity entries
func New(capacity int) (*ResultCache, error) {
	entries, err := lru.New[string, *models.ExtractionResult](capacity)
	if err != nil {
		return nil, err
	}
	return &ResultCache{entries: entries}, nil
}

// Key derives the cache key for a file blob
func Key(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Get returns the memoized result for a key, if any
func (c *ResultCache) Get(key string) (*models.ExtractionResult, bool) {
	return c.entries.Get(key)
}

// Put stores a result, evicting the least recently used entry on overflow
func (c *ResultCache) Put(key string, result *models.ExtractionResult) {
	c.entries.Add(key, result)
}

// Len returns the current number of entries
func (c *ResultCache) Len() int {
	return c.entries.Len()
}
