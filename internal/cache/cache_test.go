package cache

import (
	"fmt"
	"testing"

	"go-id-extractor/pkg/models"
)

func TestKey_Deterministic(t *testing.T) {
	data := []byte("document bytes")

	first := Key(data)
	second := Key(data)

	if first != second {
		t.Errorf("Expected identical keys for identical data, got %s and %s", first, second)
	}
	if len(first) != 64 {
		t.Errorf("Expected 64 hex characters, got %d", len(first))
	}
}

func TestKey_DiffersByContent(t *testing.T) {
	if Key([]byte("a")) == Key([]byte("b")) {
		t.Error("Expected different keys for different data")
	}
}

func TestResultCache_GetPut(t *testing.T) {
	c, err := New(4)
	if err != nil {
		t.Fatalf("Expected no error creating cache, got %v", err)
	}

	key := Key([]byte("doc"))
	if _, ok := c.Get(key); ok {
		t.Error("Expected miss on empty cache")
	}

	result := &models.ExtractionResult{ID: "result-1"}
	c.Put(key, result)

	got, ok := c.Get(key)
	if !ok {
		t.Fatal("Expected hit after Put")
	}
	if got.ID != "result-1" {
		t.Errorf("Expected ID result-1, got %s", got.ID)
	}
}

func TestResultCache_EvictsOldest(t *testing.T) {
	c, err := New(2)
	if err != nil {
		t.Fatalf("Expected no error creating cache, got %v", err)
	}

	for i := 0; i < 3; i++ {
		key := Key([]byte(fmt.Sprintf("doc-%d", i)))
		c.Put(key, &models.ExtractionResult{ID: fmt.Sprintf("result-%d", i)})
	}

	if c.Len() != 2 {
		t.Errorf("Expected 2 entries after overflow, got %d", c.Len())
	}
	if _, ok := c.Get(Key([]byte("doc-0"))); ok {
		t.Error("Expected oldest entry to be evicted")
	}
	if _, ok := c.Get(Key([]byte("doc-2"))); !ok {
		t.Error("Expected newest entry to survive eviction")
	}
}

func TestNew_InvalidCapacity(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Error("Expected error for zero capacity")
	}
}
