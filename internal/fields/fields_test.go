package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-id-extractor/pkg/models"
)

func TestKinds(t *testing.T) {
	kinds := Kinds()
	require.Len(t, kinds, 10)

	seen := make(map[string]bool)
	for _, k := range kinds {
		name := k.Name()
		assert.NotEqual(t, "unknown", name)
		assert.NotEmpty(t, k.Description())
		assert.False(t, seen[name], "duplicate name %s", name)
		seen[name] = true
	}
}

func TestGetSetRoundTrip(t *testing.T) {
	set := &models.FieldSet{}

	for _, k := range Kinds() {
		assert.Nil(t, Get(set, k), "kind %s should start empty", k.Name())

		value := k.Name() + "-value"
		Set(set, k, &value)
		got := Get(set, k)
		require.NotNil(t, got, "kind %s", k.Name())
		assert.Equal(t, value, *got)
	}

	assert.Equal(t, 10, PresentCount(set))
}

func TestPresentCount(t *testing.T) {
	assert.Equal(t, 0, PresentCount(&models.FieldSet{}))

	set := &models.FieldSet{Nume: strPtr("POPESCU ION")}
	assert.Equal(t, 1, PresentCount(set))

	assert.Equal(t, 10, PresentCount(fullFieldSet()))
}
